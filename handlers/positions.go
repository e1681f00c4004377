// Copyright (c) 2026 Assal Community.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/assal-community/vote-server/auth"
	"github.com/assal-community/vote-server/cliparse"
	"github.com/assal-community/vote-server/middleware"
	"github.com/assal-community/vote-server/models"
)

type PositionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPositionHandler(db *sql.DB, cfg cliparse.Config) *PositionHandler {
	return &PositionHandler{db: db, cfg: cfg}
}

func (h *PositionHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// ListPositions handles GET /positions
//
// Returns all candidates plus the same list grouped into the four position
// slots, so the ballot form can render one column per office.
func (h *PositionHandler) ListPositions(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, name, role, image_url, created_at, updated_at
		FROM voting_positions
		ORDER BY created_at ASC
	`)
	if err != nil {
		slog.Error("failed to query positions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	positions := []models.Position{}
	for rows.Next() {
		var p models.Position
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			slog.Error("failed to scan position", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read positions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	grouped := models.GroupedPositions{
		President:     []models.Position{},
		VicePresident: []models.Position{},
		Treasurer:     []models.Position{},
		Secretary:     []models.Position{},
	}
	for _, p := range positions {
		switch models.SlotForRole(p.Role) {
		case models.SlotVicePresident:
			grouped.VicePresident = append(grouped.VicePresident, p)
		case models.SlotTreasurer:
			grouped.Treasurer = append(grouped.Treasurer, p)
		case models.SlotSecretary:
			grouped.Secretary = append(grouped.Secretary, p)
		default:
			grouped.President = append(grouped.President, p)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.PositionsResponse{
		Positions: positions,
		Grouped:   grouped,
	})
}

// ListLeadership handles GET /leadership
func (h *PositionHandler) ListLeadership(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, name, role, image_url, created_at, updated_at
		FROM leadership
		ORDER BY created_at ASC
	`)
	if err != nil {
		slog.Error("failed to query leadership", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	leaders := []models.Leader{}
	for rows.Next() {
		var l models.Leader
		if err := rows.Scan(&l.ID, &l.Name, &l.Role, &l.ImageURL, &l.CreatedAt, &l.UpdatedAt); err != nil {
			slog.Error("failed to scan leader", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		leaders = append(leaders, l)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read leadership", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, leaders)
}

// CreatePosition handles POST /admin/positions
func (h *PositionHandler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.UpsertPositionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Role == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "role is required")
		return
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate position ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create position")
		return
	}

	now := time.Now().UTC()
	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO voting_positions (id, name, role, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, req.Name, req.Role, nullable(req.ImageURL), now, now)

	if err != nil {
		slog.Error("failed to insert position", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create position")
		return
	}

	slog.Info("candidate added", "position_id", id, "name", req.Name, "role", req.Role)

	middleware.JSONResponse(w, http.StatusCreated, models.Position{
		ID:        id,
		Name:      req.Name,
		Role:      req.Role,
		ImageURL:  nullable(req.ImageURL),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// UpdatePosition handles PUT /admin/positions/:id
func (h *PositionHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "position id is required")
		return
	}

	var req models.UpsertPositionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" || req.Role == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name and role are required")
		return
	}

	result, err := h.db.ExecContext(r.Context(), `
		UPDATE voting_positions
		SET name = $1, role = $2, image_url = $3, updated_at = $4
		WHERE id = $5
	`, req.Name, req.Role, nullable(req.ImageURL), time.Now().UTC(), id)

	if err != nil {
		slog.Error("failed to update position", "error", err, "position_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update position")
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Position not found")
		return
	}

	h.getPosition(w, r, id)
}

func (h *PositionHandler) getPosition(w http.ResponseWriter, r *http.Request, id string) {
	var p models.Position
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, name, role, image_url, created_at, updated_at
		FROM voting_positions
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Role, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		slog.Error("failed to fetch position", "error", err, "position_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, p)
}

// DeletePosition handles DELETE /admin/positions/:id
//
// Removing a candidate does not touch rankings already cast for them; the
// leaderboard simply stops listing candidates without a voting_positions row.
func (h *PositionHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "position id is required")
		return
	}

	result, err := h.db.ExecContext(r.Context(), `DELETE FROM voting_positions WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete position", "error", err, "position_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete position")
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Position not found")
		return
	}

	slog.Info("candidate removed", "position_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// CreateLeader handles POST /admin/leadership
func (h *PositionHandler) CreateLeader(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.UpsertLeaderRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" || req.Role == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name and role are required")
		return
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate leader ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create leader")
		return
	}

	now := time.Now().UTC()
	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO leadership (id, name, role, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, req.Name, req.Role, nullable(req.ImageURL), now, now)

	if err != nil {
		slog.Error("failed to insert leader", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create leader")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.Leader{
		ID:        id,
		Name:      req.Name,
		Role:      req.Role,
		ImageURL:  nullable(req.ImageURL),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// UpdateLeader handles PUT /admin/leadership/:id
func (h *PositionHandler) UpdateLeader(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "leader id is required")
		return
	}

	var req models.UpsertLeaderRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" || req.Role == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name and role are required")
		return
	}

	result, err := h.db.ExecContext(r.Context(), `
		UPDATE leadership
		SET name = $1, role = $2, image_url = $3, updated_at = $4
		WHERE id = $5
	`, req.Name, req.Role, nullable(req.ImageURL), time.Now().UTC(), id)

	if err != nil {
		slog.Error("failed to update leader", "error", err, "leader_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update leader")
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Leader not found")
		return
	}

	var l models.Leader
	err = h.db.QueryRowContext(r.Context(), `
		SELECT id, name, role, image_url, created_at, updated_at
		FROM leadership
		WHERE id = $1
	`, id).Scan(&l.ID, &l.Name, &l.Role, &l.ImageURL, &l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		slog.Error("failed to fetch leader", "error", err, "leader_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, l)
}

// DeleteLeader handles DELETE /admin/leadership/:id
func (h *PositionHandler) DeleteLeader(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "leader id is required")
		return
	}

	result, err := h.db.ExecContext(r.Context(), `DELETE FROM leadership WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete leader", "error", err, "leader_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete leader")
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Leader not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
