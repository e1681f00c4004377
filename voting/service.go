// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/assal-community/vote-server/metrics"
	"github.com/assal-community/vote-server/models"
)

// Service implements the duplicate-vote check and the ballot submission
// sequence against the record store.
type Service struct {
	db *sql.DB
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// CheckResult is the outcome of an identity check.
type CheckResult struct {
	HasVoted bool
	Voter    *models.Voter
	VoteDate *time.Time
	Message  string
}

// VoterInfo is the identity submitted with a ballot.
type VoterInfo struct {
	FullName    string
	Email       string
	PhoneNumber string
}

// DuplicateVoteError reports a rejected submission. It carries the original
// voter's details so the caller can disclose them for self-diagnosis.
type DuplicateVoteError struct {
	Voter   models.Voter
	VotedAt time.Time
}

func (e *DuplicateVoteError) Error() string {
	return fmt.Sprintf("identity has already voted: %s on %s", e.Voter.Email, e.VotedAt.Format(time.RFC3339))
}

// ValidationError reports a ballot rejected before any remote call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// CheckIfAlreadyVoted determines whether the submitted identity has already
// cast a ballot. Ordered, first match wins:
//
//  1. voting_history by email OR phone - authoritative, survives deletion of
//     the voters row
//  2. voters joined with rankings by the same OR-predicate
//  3. otherwise the identity has not voted
//
// A shared phone number across two different emails (or vice versa) blocks
// the second submitter. That cross-matching is deliberate anti-fraud
// tightening, not an over-broad filter.
func (s *Service) CheckIfAlreadyVoted(ctx context.Context, email, phoneNumber string) (CheckResult, error) {
	var (
		voter   models.Voter
		votedAt time.Time
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT original_voter_id, full_name, email, phone_number, voted_at
		FROM voting_history
		WHERE email = $1 OR phone_number = $2
		ORDER BY voted_at ASC
		LIMIT 1
	`, email, phoneNumber).Scan(&voter.ID, &voter.FullName, &voter.Email, &voter.PhoneNumber, &votedAt)

	if err == nil {
		return CheckResult{
			HasVoted: true,
			Voter:    &voter,
			VoteDate: &votedAt,
			Message:  "This email or phone number has already been used to vote.",
		}, nil
	}
	if err != sql.ErrNoRows {
		return CheckResult{}, fmt.Errorf("failed to query voting history: %w", err)
	}

	// No history match - fall back to the live voter table. A voter row only
	// counts as "voted" once at least one ranking exists for it.
	err = s.db.QueryRowContext(ctx, `
		SELECT v.id, v.full_name, v.email, v.phone_number, v.created_at, r.created_at
		FROM voters v
		JOIN rankings r ON r.voter_id = v.id
		WHERE v.email = $1 OR v.phone_number = $2
		ORDER BY r.created_at ASC
		LIMIT 1
	`, email, phoneNumber).Scan(&voter.ID, &voter.FullName, &voter.Email, &voter.PhoneNumber, &voter.CreatedAt, &votedAt)

	if err == sql.ErrNoRows {
		return CheckResult{HasVoted: false}, nil
	}
	if err != nil {
		return CheckResult{}, fmt.Errorf("failed to query voters: %w", err)
	}

	return CheckResult{
		HasVoted: true,
		Voter:    &voter,
		VoteDate: &votedAt,
		Message:  "This email or phone number has already been used to vote.",
	}, nil
}

// Submit runs the full ballot submission sequence and returns the voter id
// on success. Rejections are returned as *DuplicateVoteError, bad input as
// *ValidationError; anything else is a store failure the caller should
// surface as retryable.
func (s *Service) Submit(ctx context.Context, info VoterInfo, selections []models.Selection, ipHash string) (string, error) {
	if err := validate(info, selections); err != nil {
		return "", err
	}

	// Re-check immediately before writing, even though the form already
	// checked at the step transition. Closes most of the window between the
	// earlier check and final submit; the voting_history insert below closes
	// the rest.
	check, err := s.CheckIfAlreadyVoted(ctx, info.Email, info.PhoneNumber)
	if err != nil {
		metrics.IdentityCheckFailures.WithLabelValues("submit").Inc()
		return "", err
	}
	if check.HasVoted {
		return "", s.rejectDuplicate(ctx, info, *check.Voter, *check.VoteDate, ipHash)
	}

	voterID, err := s.createOrReuseVoter(ctx, info)
	if err != nil {
		return "", err
	}

	// History gate and rankings commit together: a failed rankings write
	// must roll the gate row back, or the identity would be blocked forever
	// with no ballot on record.
	now := time.Now().UTC()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The history row is the atomic gate: UNIQUE(email) and
	// UNIQUE(phone_number) turn a lost check-then-act race into a constraint
	// violation here, before any rankings are written.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO voting_history (id, original_voter_id, full_name, email, phone_number, voted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), voterID, info.FullName, info.Email, info.PhoneNumber, now)
	if err != nil {
		// Release the connection before re-querying; sqlite runs the test
		// pool at a single connection.
		tx.Rollback()
		if !isUniqueViolation(err) {
			return "", fmt.Errorf("failed to record voting history: %w", err)
		}
		recheck, cerr := s.CheckIfAlreadyVoted(ctx, info.Email, info.PhoneNumber)
		if cerr != nil || !recheck.HasVoted {
			// Gate fired but the winning row is not readable; reject without
			// details rather than accept a second ballot.
			return "", &DuplicateVoteError{Voter: models.Voter{Email: info.Email, PhoneNumber: info.PhoneNumber}, VotedAt: now}
		}
		return "", s.rejectDuplicate(ctx, info, *recheck.Voter, *recheck.VoteDate, ipHash)
	}

	if err := replaceRankings(ctx, tx, voterID, selections, now); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit ballot: %w", err)
	}

	s.LogAttempt(ctx, models.VoteAttempt{
		FullName:        info.FullName,
		Email:           info.Email,
		PhoneNumber:     info.PhoneNumber,
		AttemptStatus:   models.AttemptSuccess,
		ExistingVoterID: &voterID,
		IPHash:          optional(ipHash),
	})

	slog.Info("ballot accepted", "voter_id", voterID)
	return voterID, nil
}

func validate(info VoterInfo, selections []models.Selection) error {
	if info.FullName == "" || info.Email == "" || info.PhoneNumber == "" {
		return &ValidationError{Reason: "full name, email, and phone number are required"}
	}
	if len(selections) == 0 {
		return &ValidationError{Reason: "at least one selection is required"}
	}
	for _, sel := range selections {
		if sel.CandidateID == "" {
			return &ValidationError{Reason: "candidate_id is required for every selection"}
		}
		if !models.ValidSlot(sel.PositionSlot) {
			return &ValidationError{Reason: "unknown position_slot: " + sel.PositionSlot}
		}
		if sel.RankOrder < 1 {
			return &ValidationError{Reason: "rank_order must be at least 1"}
		}
		if sel.Rating < models.MinRating || sel.Rating > models.MaxRating {
			return &ValidationError{Reason: fmt.Sprintf("rating for %s must be between 0 and 10", sel.CandidateID)}
		}
	}
	return nil
}

// createOrReuseVoter inserts the voter row, converging onto the existing row
// when the email is already taken. Two near-simultaneous submissions under
// the same email end up with one voter id and neither caller sees an error.
func (s *Service) createOrReuseVoter(ctx context.Context, info VoterInfo) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO voters (id, full_name, email, phone_number, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, info.FullName, info.Email, info.PhoneNumber, time.Now().UTC())
	if err == nil {
		return id, nil
	}
	if !isUniqueViolation(err) {
		return "", fmt.Errorf("failed to create voter: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT id FROM voters WHERE email = $1
	`, info.Email).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to fetch existing voter after conflict: %w", err)
	}
	return id, nil
}

// replaceRankings deletes any prior set for the voter and inserts the new
// one on the caller's transaction. Replace-not-merge guards against leftover
// rows from an earlier failed attempt.
func replaceRankings(ctx context.Context, tx *sql.Tx, voterID string, selections []models.Selection, now time.Time) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM rankings WHERE voter_id = $1`, voterID); err != nil {
		return fmt.Errorf("failed to clear prior rankings: %w", err)
	}

	for _, sel := range selections {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO rankings (id, voter_id, candidate_id, position_slot, rank_order, rating, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.NewString(), voterID, sel.CandidateID, sel.PositionSlot, sel.RankOrder, sel.Rating, now)
		if err != nil {
			return fmt.Errorf("failed to insert ranking: %w", err)
		}
	}

	return nil
}

// rejectDuplicate logs the rejected attempt and builds the rejection error.
func (s *Service) rejectDuplicate(ctx context.Context, info VoterInfo, original models.Voter, votedAt time.Time, ipHash string) error {
	reason := fmt.Sprintf("Duplicate submission attempt. Original vote by %s on %s",
		original.FullName, votedAt.Format("Jan 2, 2006 3:04 PM"))

	s.LogAttempt(ctx, models.VoteAttempt{
		FullName:        info.FullName,
		Email:           info.Email,
		PhoneNumber:     info.PhoneNumber,
		AttemptStatus:   models.AttemptRejectedAlreadyVoted,
		RejectionReason: &reason,
		ExistingVoterID: &original.ID,
		IPHash:          optional(ipHash),
	})

	return &DuplicateVoteError{Voter: original, VotedAt: votedAt}
}

// LogAttempt appends a row to the attempt audit trail. Best effort: a write
// failure is logged and swallowed, never surfaced to the voting flow.
func (s *Service) LogAttempt(ctx context.Context, a models.VoteAttempt) {
	metrics.VoteAttempts.WithLabelValues(a.AttemptStatus).Inc()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vote_attempts (id, full_name, email, phone_number, attempt_status, rejection_reason, existing_voter_id, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uuid.NewString(), a.FullName, a.Email, a.PhoneNumber, a.AttemptStatus,
		a.RejectionReason, a.ExistingVoterID, a.IPHash, time.Now().UTC())
	if err != nil {
		metrics.AttemptLogFailures.Inc()
		slog.Warn("failed to record vote attempt", "status", a.AttemptStatus, "email", a.Email, "error", err)
	}
}

// isUniqueViolation matches driver error text for unique-constraint failures
// from both lib/pq and modernc sqlite.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
