// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the election API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - VotingHandler: identity pre-flight check and ballot submission
  - PositionHandler: candidate and leadership listings plus admin CRUD
  - ResultsHandler: live leaderboard aggregation
  - AdminHandler: image uploads and the attempt audit trail

	votingHandler := handlers.NewVotingHandler(svc, cfg)

# Voting Flow

The landing page drives two endpoints:

	POST /vote/check → CheckVote (pre-flight duplicate detection)
	POST /vote       → SubmitVote (validate, gate, record)

CheckVote fails open on store errors; SubmitVote re-checks and enforces.
Duplicate submissions return 409 with the original voter's details.

# Public Listings

	GET /positions  → ListPositions (grouped into the four slots)
	GET /leadership → ListLeadership
	GET /results    → GetResults (cached when redis is configured)

# Admin Operations

All /admin routes require the X-Admin-Key header:

	POST   /admin/positions       → CreatePosition
	PUT    /admin/positions/{id}  → UpdatePosition
	DELETE /admin/positions/{id}  → DeletePosition
	POST   /admin/leadership      → CreateLeader
	PUT    /admin/leadership/{id} → UpdateLeader
	DELETE /admin/leadership/{id} → DeleteLeader
	POST   /admin/uploads         → UploadImage (multipart, "image" field)
	GET    /admin/attempts        → ListAttempts (?limit=, ?status=)
*/
package handlers
