// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// Timestamps are always written explicitly by the application so the same
// schema runs on PostgreSQL in production and sqlite in tests.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Candidates standing for election
CREATE TABLE IF NOT EXISTS voting_positions (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    role TEXT NOT NULL,
    image_url TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Current leadership (display only)
CREATE TABLE IF NOT EXISTS leadership (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    role TEXT NOT NULL,
    image_url TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Voters: one row per unique email, created on first accepted ballot
CREATE TABLE IF NOT EXISTS voters (
    id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone_number TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_voters_phone ON voters(phone_number);

-- Immutable ledger of completed votes. Survives administrative deletion of
-- the voters row. The UNIQUE constraints on email and phone_number make the
-- history insert the atomic gate against duplicate ballots.
CREATE TABLE IF NOT EXISTS voting_history (
    id TEXT PRIMARY KEY,
    original_voter_id TEXT NOT NULL,
    full_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone_number TEXT NOT NULL UNIQUE,
    voted_at TIMESTAMP NOT NULL,
    deleted_at TIMESTAMP
);

-- One selection per candidate per ballot; the full set for a voter is
-- replaced on resubmission, never merged
CREATE TABLE IF NOT EXISTS rankings (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voters(id) ON DELETE CASCADE,
    candidate_id TEXT NOT NULL,
    position_slot TEXT NOT NULL CHECK (position_slot IN ('president', 'vice_president', 'treasurer', 'secretary')),
    rank_order INTEGER NOT NULL,
    rating REAL NOT NULL CHECK (rating >= 0 AND rating <= 10),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_rankings_voter_id ON rankings(voter_id);
CREATE INDEX IF NOT EXISTS idx_rankings_slot ON rankings(position_slot, candidate_id);

-- Append-only audit trail of every submission attempt
CREATE TABLE IF NOT EXISTS vote_attempts (
    id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone_number TEXT NOT NULL,
    attempt_status TEXT NOT NULL CHECK (attempt_status IN ('success', 'rejected_duplicate_email', 'rejected_duplicate_phone', 'rejected_already_voted')),
    rejection_reason TEXT,
    existing_voter_id TEXT,
    ip_hash TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_vote_attempts_email ON vote_attempts(email);
CREATE INDEX IF NOT EXISTS idx_vote_attempts_status ON vote_attempts(attempt_status);
`
