// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/assal-community/vote-server/auth"
	"github.com/assal-community/vote-server/cliparse"
	"github.com/assal-community/vote-server/middleware"
	"github.com/assal-community/vote-server/models"
	"github.com/assal-community/vote-server/storage"
)

// maxUploadBytes caps candidate image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

type AdminHandler struct {
	db    *sql.DB
	store storage.ImageStore // nil when object storage is not configured
	cfg   cliparse.Config
}

func NewAdminHandler(db *sql.DB, store storage.ImageStore, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, store: store, cfg: cfg}
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// UploadImage handles POST /admin/uploads
//
// Accepts a multipart form with an "image" field and stores it in the
// configured bucket. The returned URL goes into a candidate's image_url.
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	if h.store == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate upload key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}
	key := id + path.Ext(header.Filename)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.store.Upload(r.Context(), key, file, header.Size, contentType)
	if err != nil {
		slog.Error("failed to upload image", "error", err, "key", key)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	slog.Info("image uploaded", "key", key, "size", header.Size)

	middleware.JSONResponse(w, http.StatusCreated, models.UploadResponse{URL: url})
}

// ListAttempts handles GET /admin/attempts
//
// Returns the attempt audit trail, newest first. ?limit= caps the page
// (default 100, max 500); ?status= filters to one attempt status.
func (h *AdminHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if n > 500 {
			n = 500
		}
		limit = n
	}

	query := `
		SELECT id, full_name, email, phone_number, attempt_status, rejection_reason, existing_voter_id, ip_hash, created_at
		FROM vote_attempts
		ORDER BY created_at DESC
		LIMIT $1
	`
	args := []any{limit}

	if status := r.URL.Query().Get("status"); status != "" {
		query = `
			SELECT id, full_name, email, phone_number, attempt_status, rejection_reason, existing_voter_id, ip_hash, created_at
			FROM vote_attempts
			WHERE attempt_status = $1
			ORDER BY created_at DESC
			LIMIT $2
		`
		args = []any{status, limit}
	}

	rows, err := h.db.QueryContext(r.Context(), query, args...)
	if err != nil {
		slog.Error("failed to query vote attempts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	attempts := []models.VoteAttempt{}
	for rows.Next() {
		var a models.VoteAttempt
		if err := rows.Scan(&a.ID, &a.FullName, &a.Email, &a.PhoneNumber, &a.AttemptStatus,
			&a.RejectionReason, &a.ExistingVoterID, &a.IPHash, &a.CreatedAt); err != nil {
			slog.Error("failed to scan vote attempt", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read vote attempts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, attempts)
}
