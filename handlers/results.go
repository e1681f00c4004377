// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/assal-community/vote-server/cache"
	"github.com/assal-community/vote-server/middleware"
	"github.com/assal-community/vote-server/models"
)

type ResultsHandler struct {
	db    *sql.DB
	cache *cache.Leaderboard // nil when redis is not configured
}

func NewResultsHandler(db *sql.DB, c *cache.Leaderboard) *ResultsHandler {
	return &ResultsHandler{db: db, cache: c}
}

// GetResults handles GET /results
//
// One ranking row counts as one vote for its candidate within its slot.
// Counts come straight from rankings joined against the live candidate list,
// so deleting a candidate drops them from the board without rewriting votes.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if resp, ok := h.cache.Get(r.Context()); ok {
			middleware.JSONResponse(w, http.StatusOK, resp)
			return
		}
	}

	resp, err := h.computeLeaderboard(r)
	if err != nil {
		slog.Error("failed to compute leaderboard", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if h.cache != nil {
		h.cache.Set(r.Context(), resp)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

func (h *ResultsHandler) computeLeaderboard(r *http.Request) (*models.LeaderboardResponse, error) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT rk.position_slot, rk.candidate_id, p.name, p.image_url, COUNT(*) AS votes
		FROM rankings rk
		JOIN voting_positions p ON p.id = rk.candidate_id
		GROUP BY rk.position_slot, rk.candidate_id, p.name, p.image_url
		ORDER BY rk.position_slot, votes DESC, p.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bySlot := make(map[string][]models.CandidateTally)
	for rows.Next() {
		var (
			slot  string
			tally models.CandidateTally
		)
		if err := rows.Scan(&slot, &tally.CandidateID, &tally.Name, &tally.ImageURL, &tally.Votes); err != nil {
			return nil, err
		}
		bySlot[slot] = append(bySlot[slot], tally)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Every slot appears in the response even before any votes land, so the
	// board renders a stable four-column layout.
	results := make([]models.SlotResult, 0, len(models.Slots))
	for _, slot := range models.Slots {
		candidates := bySlot[slot]
		if candidates == nil {
			candidates = []models.CandidateTally{}
		}

		total := 0
		topVotes := 0
		for _, c := range candidates {
			total += c.Votes
			if c.Votes > topVotes {
				topVotes = c.Votes
			}
		}
		for i := range candidates {
			if total > 0 {
				candidates[i].Percent = float64(candidates[i].Votes) / float64(total) * 100
			}
			candidates[i].Leading = topVotes > 0 && candidates[i].Votes == topVotes
		}

		results = append(results, models.SlotResult{
			PositionSlot: slot,
			TotalVotes:   total,
			Candidates:   candidates,
		})
	}

	return &models.LeaderboardResponse{
		Results:    results,
		ComputedAt: time.Now().UTC(),
	}, nil
}
