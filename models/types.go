package models

import (
	"strings"
	"time"
)

// Position slot constants - the four contestable roles
const (
	SlotPresident     = "president"
	SlotVicePresident = "vice_president"
	SlotTreasurer     = "treasurer"
	SlotSecretary     = "secretary"
)

// Slots lists all position slots in display order.
var Slots = []string{SlotPresident, SlotVicePresident, SlotTreasurer, SlotSecretary}

// Vote attempt status constants
const (
	AttemptSuccess                = "success"
	AttemptRejectedDuplicateEmail = "rejected_duplicate_email"
	AttemptRejectedDuplicatePhone = "rejected_duplicate_phone"
	AttemptRejectedAlreadyVoted   = "rejected_already_voted"
)

// Rating bounds for a single selection
const (
	MinRating = 0.0
	MaxRating = 10.0
)

// SlotForRole maps a free-form role string onto a position slot.
// Unrecognized roles group under president by convention.
func SlotForRole(role string) string {
	r := strings.ToLower(role)
	switch {
	case strings.Contains(r, "vice"):
		return SlotVicePresident
	case strings.Contains(r, "treasurer"):
		return SlotTreasurer
	case strings.Contains(r, "secretary"):
		return SlotSecretary
	default:
		return SlotPresident
	}
}

// ValidSlot reports whether s is one of the four position slots.
func ValidSlot(s string) bool {
	switch s {
	case SlotPresident, SlotVicePresident, SlotTreasurer, SlotSecretary:
		return true
	}
	return false
}

// Request types

type VoteCheckRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type Selection struct {
	CandidateID  string  `json:"candidate_id"`
	PositionSlot string  `json:"position_slot"`
	RankOrder    int     `json:"rank_order"`
	Rating       float64 `json:"rating"`
}

type SubmitVoteRequest struct {
	FullName    string      `json:"full_name"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phone_number"`
	Selections  []Selection `json:"selections"`
}

type UpsertPositionRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	ImageURL string `json:"image_url"`
}

type UpsertLeaderRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	ImageURL string `json:"image_url"`
}

// Response types

type VoteCheckResponse struct {
	HasVoted bool       `json:"has_voted"`
	Voter    *Voter     `json:"voter,omitempty"`
	VoteDate *time.Time `json:"vote_date,omitempty"`
	Message  string     `json:"message,omitempty"`
}

type SubmitVoteResponse struct {
	VoterID string `json:"voter_id"`
	Message string `json:"message"`
}

type DuplicateVoteResponse struct {
	Error       string    `json:"error"`
	Message     string    `json:"message"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	VoteDate    time.Time `json:"vote_date"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type GroupedPositions struct {
	President     []Position `json:"president"`
	VicePresident []Position `json:"vice_president"`
	Treasurer     []Position `json:"treasurer"`
	Secretary     []Position `json:"secretary"`
}

type PositionsResponse struct {
	Positions []Position       `json:"positions"`
	Grouped   GroupedPositions `json:"grouped"`
}

// Domain types

type Position struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Leader struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Voter struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

type Ranking struct {
	ID           string    `json:"id"`
	VoterID      string    `json:"voter_id"`
	CandidateID  string    `json:"candidate_id"`
	PositionSlot string    `json:"position_slot"`
	RankOrder    int       `json:"rank_order"`
	Rating       float64   `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
}

type VoteAttempt struct {
	ID              string    `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	PhoneNumber     string    `json:"phone_number"`
	AttemptStatus   string    `json:"attempt_status"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	ExistingVoterID *string   `json:"existing_voter_id,omitempty"`
	IPHash          *string   `json:"-"` // Never expose in JSON
	CreatedAt       time.Time `json:"created_at"`
}

// Leaderboard result types

type CandidateTally struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	ImageURL    *string `json:"image_url"`
	Votes       int     `json:"votes"`
	Percent     float64 `json:"percent"`
	Leading     bool    `json:"leading"`
}

type SlotResult struct {
	PositionSlot string           `json:"position_slot"`
	TotalVotes   int              `json:"total_votes"`
	Candidates   []CandidateTally `json:"candidates"`
}

type LeaderboardResponse struct {
	Results    []SlotResult `json:"results"`
	ComputedAt time.Time    `json:"computed_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
