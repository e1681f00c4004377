// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the election API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints. The image
store and leaderboard cache are optional; pass nil when unconfigured:

	mux := router.NewRouter(db, cfg, store, lb)

# Endpoints

Health and observability:

	GET /health
	GET /metrics

Voting (public):

	POST /vote/check - Pre-flight duplicate check
	POST /vote       - Submit ballot

Listings (public):

	GET /positions  - Candidates, grouped by slot
	GET /leadership - Current leadership
	GET /results    - Live leaderboard

Administration (requires X-Admin-Key):

	POST   /admin/positions       - Add candidate
	PUT    /admin/positions/{id}  - Update candidate
	DELETE /admin/positions/{id}  - Remove candidate
	POST   /admin/leadership      - Add leader
	PUT    /admin/leadership/{id} - Update leader
	DELETE /admin/leadership/{id} - Remove leader
	POST   /admin/uploads         - Upload candidate image
	GET    /admin/attempts        - Attempt audit trail

# Handler Initialization

The router creates handler instances with dependency injection:

	votingHandler := handlers.NewVotingHandler(voting.NewService(db), cfg)
	positionHandler := handlers.NewPositionHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, lb)
	adminHandler := handlers.NewAdminHandler(db, store, cfg)
*/
package router
