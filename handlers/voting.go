// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/assal-community/vote-server/auth"
	"github.com/assal-community/vote-server/cliparse"
	"github.com/assal-community/vote-server/metrics"
	"github.com/assal-community/vote-server/middleware"
	"github.com/assal-community/vote-server/models"
	"github.com/assal-community/vote-server/voting"
)

type VotingHandler struct {
	svc *voting.Service
	cfg cliparse.Config
}

func NewVotingHandler(svc *voting.Service, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{svc: svc, cfg: cfg}
}

// CheckVote handles POST /vote/check
//
// Pre-flight identity check the form runs before showing the ballot. Fails
// open: a store error answers "not voted" so an outage never locks voters
// out; the submit path re-checks and is the enforcing side.
func (h *VotingHandler) CheckVote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteCheckRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Email == "" || req.PhoneNumber == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and phone_number are required")
		return
	}

	check, err := h.svc.CheckIfAlreadyVoted(r.Context(), req.Email, req.PhoneNumber)
	if err != nil {
		metrics.IdentityCheckFailures.WithLabelValues("preflight").Inc()
		slog.Warn("identity check failed, allowing voter through", "email", req.Email, "error", err)
		middleware.JSONResponse(w, http.StatusOK, models.VoteCheckResponse{HasVoted: false})
		return
	}

	if check.HasVoted {
		reason := fmt.Sprintf("User attempted to vote again. Original vote by %s (%s) on %s",
			check.Voter.FullName, check.Voter.Email, check.VoteDate.Format("Jan 2, 2006 3:04 PM"))
		ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

		h.svc.LogAttempt(r.Context(), models.VoteAttempt{
			FullName:        check.Voter.FullName,
			Email:           req.Email,
			PhoneNumber:     req.PhoneNumber,
			AttemptStatus:   models.AttemptRejectedAlreadyVoted,
			RejectionReason: &reason,
			ExistingVoterID: &check.Voter.ID,
			IPHash:          nullable(ipHash),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteCheckResponse{
		HasVoted: check.HasVoted,
		Voter:    check.Voter,
		VoteDate: check.VoteDate,
		Message:  check.Message,
	})
}

// SubmitVote handles POST /vote
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// The simplified one-choice-per-role form omits rank_order and rating;
	// fill the defaults so both form variants land in one code path.
	for i := range req.Selections {
		if req.Selections[i].RankOrder == 0 {
			if req.Selections[i].Rating == 0 {
				req.Selections[i].Rating = models.MaxRating
			}
			req.Selections[i].RankOrder = 1
		}
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	voterID, err := h.svc.Submit(r.Context(), voting.VoterInfo{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}, req.Selections, ipHash)

	if err != nil {
		var valErr *voting.ValidationError
		if errors.As(err, &valErr) {
			middleware.ErrorResponse(w, http.StatusBadRequest, valErr.Reason)
			return
		}

		var dupErr *voting.DuplicateVoteError
		if errors.As(err, &dupErr) {
			middleware.JSONResponse(w, http.StatusConflict, models.DuplicateVoteResponse{
				Error:       "Conflict",
				Message:     "This email or phone number has already been used to vote.",
				FullName:    dupErr.Voter.FullName,
				Email:       dupErr.Voter.Email,
				PhoneNumber: dupErr.Voter.PhoneNumber,
				VoteDate:    dupErr.VotedAt,
			})
			return
		}

		slog.Error("failed to submit vote", "email", req.Email, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		VoterID: voterID,
		Message: "Vote submitted successfully",
	})
}
