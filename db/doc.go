// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - voting_positions: electable candidates
  - leadership: current leadership display entries
  - voters: one row per unique email
  - voting_history: immutable ledger of completed votes
  - rankings: individual ballot selections
  - vote_attempts: append-only submission audit trail

# Relationships

	voters 1──* rankings

voting_history deliberately carries NO foreign key to voters: it must
survive administrative deletion of the voters row. vote_attempts is likewise
free-standing so a failed attempt can reference identities that never became
voters.

# Constraints

  - voters.email UNIQUE: concurrent same-email submissions converge on one id
  - voting_history.email and voting_history.phone_number UNIQUE: the history
    insert is the atomic duplicate-ballot gate
  - rankings.position_slot CHECK: closed four-slot enum
  - rankings.rating CHECK: 0 to 10 inclusive
  - vote_attempts.attempt_status CHECK: closed status enum
*/
package db
