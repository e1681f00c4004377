// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/assal-community/vote-server/cache"
	"github.com/assal-community/vote-server/cliparse"
	"github.com/assal-community/vote-server/handlers"
	"github.com/assal-community/vote-server/metrics"
	"github.com/assal-community/vote-server/middleware"
	"github.com/assal-community/vote-server/storage"
	"github.com/assal-community/vote-server/voting"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, store storage.ImageStore, lb *cache.Leaderboard) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(voting.NewService(db), cfg)
	positionHandler := handlers.NewPositionHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, lb)
	adminHandler := handlers.NewAdminHandler(db, store, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", metrics.Handler())

	// Voting flow (public)
	mux.HandleFunc("POST /vote/check", middleware.WithLogging(votingHandler.CheckVote))
	mux.HandleFunc("POST /vote", middleware.WithLogging(votingHandler.SubmitVote))

	// Public listings
	mux.HandleFunc("GET /positions", middleware.WithLogging(positionHandler.ListPositions))
	mux.HandleFunc("GET /leadership", middleware.WithLogging(positionHandler.ListLeadership))
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))

	// Admin operations (X-Admin-Key)
	mux.HandleFunc("POST /admin/positions", middleware.WithLogging(positionHandler.CreatePosition))
	mux.HandleFunc("PUT /admin/positions/{id}", middleware.WithLogging(positionHandler.UpdatePosition))
	mux.HandleFunc("DELETE /admin/positions/{id}", middleware.WithLogging(positionHandler.DeletePosition))
	mux.HandleFunc("POST /admin/leadership", middleware.WithLogging(positionHandler.CreateLeader))
	mux.HandleFunc("PUT /admin/leadership/{id}", middleware.WithLogging(positionHandler.UpdateLeader))
	mux.HandleFunc("DELETE /admin/leadership/{id}", middleware.WithLogging(positionHandler.DeleteLeader))
	mux.HandleFunc("POST /admin/uploads", middleware.WithLogging(adminHandler.UploadImage))
	mux.HandleFunc("GET /admin/attempts", middleware.WithLogging(adminHandler.ListAttempts))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("vote-server API v1"))
	})

	return mux
}
