// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the community election API server.

The server runs a single election: voters identify with name, email, and
phone number, cast one ballot across four leadership positions, and every
duplicate attempt is detected, rejected, and audited. There are no accounts
and no passwords; the email/phone pair is the identity.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... ADMIN_KEY=... go run main.go

Or with flags:

	go run main.go -p 8311 -d "postgres://..." -admin-key "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - ADMIN_KEY (-admin-key): Shared secret for /admin routes
  - IP_HASH_SALT (-ip-salt): Salt for attempt-log IP hashing

Optional settings:

  - PORT (-p): Server port (default: 8311)
  - MINIO_ENDPOINT / MINIO_ACCESS_KEY / MINIO_SECRET_KEY / MINIO_BUCKET:
    object storage for candidate images (uploads disabled when unset)
  - REDIS_ADDR / REDIS_PASSWORD: leaderboard cache (computed per
    request when unset)

A .env file in the working directory is loaded at startup if present.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - voting: duplicate detection and the ballot submission sequence
  - handlers: HTTP request handlers (voting, positions, results, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Admin key validation, ID generation, IP hashing
  - db: Schema creation
  - storage: MinIO-backed candidate image store
  - cache: Redis-backed leaderboard cache
  - metrics: Prometheus counters
  - cliparse: Configuration parsing
  - logging: slog handler setup

See package documentation for each component.
*/
package main
