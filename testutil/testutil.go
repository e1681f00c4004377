// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides shared helpers for database-backed tests.
//
// Tests run against a file-backed sqlite database in a per-test temp dir;
// the schema is identical to production (see db.CreateSchema).
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/assal-community/vote-server/cliparse"
	"github.com/assal-community/vote-server/db"
)

// SetupTestDB creates a fresh test database with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Single connection keeps sqlite happy under the database/sql pool
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:        8311,
		DatabaseURL: "file:test.db",
		AdminKey:    "test-admin-key",
		IPHashSalt:  "test-ip-salt",
	}
}

// AddTestPosition inserts a candidate and returns its ID.
func AddTestPosition(t *testing.T, db *sql.DB, name, role string) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := db.Exec(`
		INSERT INTO voting_positions (id, name, role, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, NULL, $4, $5)
	`, id, name, role, now, now)
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}

	return id
}

// CreateTestVoter inserts a voter row directly and returns its ID.
func CreateTestVoter(t *testing.T, db *sql.DB, fullName, email, phone string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO voters (id, full_name, email, phone_number, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, fullName, email, phone, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return id
}

// AddTestRanking inserts a ranking row for a voter.
func AddTestRanking(t *testing.T, db *sql.DB, voterID, candidateID, slot string, rankOrder int, rating float64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO rankings (id, voter_id, candidate_id, position_slot, rank_order, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.NewString(), voterID, candidateID, slot, rankOrder, rating, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test ranking: %v", err)
	}
}

// AddTestHistory inserts a voting_history row directly.
func AddTestHistory(t *testing.T, db *sql.DB, voterID, fullName, email, phone string, votedAt time.Time) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO voting_history (id, original_voter_id, full_name, email, phone_number, voted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), voterID, fullName, email, phone, votedAt)
	if err != nil {
		t.Fatalf("Failed to create test history row: %v", err)
	}
}

// CountRows returns the number of rows in a table matching the filter.
func CountRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()

	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}
