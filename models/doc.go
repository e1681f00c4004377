// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - VoteCheckRequest: email, phone_number
  - SubmitVoteRequest: full_name, email, phone_number, selections
  - Selection: candidate_id, position_slot, rank_order, rating
  - UpsertPositionRequest / UpsertLeaderRequest: name, role, image_url

# Response Types

Types for JSON responses:

  - VoteCheckResponse: has_voted, voter, vote_date, message
  - SubmitVoteResponse: voter_id, message
  - DuplicateVoteResponse: original voter details for self-diagnosis
  - PositionsResponse: flat list plus slot grouping
  - LeaderboardResponse: per-slot tallies
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Position: electable candidate with role and image
  - Leader: current leadership entry
  - Voter: one row per unique email
  - Ranking: one selection within a ballot
  - VoteAttempt: append-only audit record per submission attempt

# Constants

Position slots (closed enum):

	SlotPresident     = "president"
	SlotVicePresident = "vice_president"
	SlotTreasurer     = "treasurer"
	SlotSecretary     = "secretary"

Attempt statuses:

	AttemptSuccess                = "success"
	AttemptRejectedDuplicateEmail = "rejected_duplicate_email"
	AttemptRejectedDuplicatePhone = "rejected_duplicate_phone"
	AttemptRejectedAlreadyVoted   = "rejected_already_voted"

SlotForRole groups free-form role strings onto slots by substring match;
unrecognized roles fall back to president.
*/
package models
