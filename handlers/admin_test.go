package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/assal-community/vote-server/models"
	"github.com/assal-community/vote-server/testutil"
)

// fakeImageStore records uploads in memory.
type fakeImageStore struct {
	uploads map[string][]byte
	fail    bool
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{uploads: make(map[string][]byte)}
}

func (f *fakeImageStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if f.fail {
		return "", io.ErrUnexpectedEOF
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.uploads[key] = data
	return "https://cdn.example.com/candidate-images/" + key, nil
}

func (f *fakeImageStore) Delete(ctx context.Context, key string) error {
	delete(f.uploads, key)
	return nil
}

func multipartImage(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	t.Run("stores image and returns URL", func(t *testing.T) {
		store := newFakeImageStore()
		handler := NewAdminHandler(db, store, cfg)

		body, contentType := multipartImage(t, "kofi.jpg", []byte("fake-jpeg-bytes"))
		req := httptest.NewRequest("POST", "/admin/uploads", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("X-Admin-Key", cfg.AdminKey)
		w := httptest.NewRecorder()

		handler.UploadImage(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp models.UploadResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.URL == "" {
			t.Error("Expected non-empty URL")
		}
		if len(store.uploads) != 1 {
			t.Errorf("Expected 1 stored upload, got %d", len(store.uploads))
		}
	})

	t.Run("rejects missing admin key", func(t *testing.T) {
		handler := NewAdminHandler(db, newFakeImageStore(), cfg)

		body, contentType := multipartImage(t, "kofi.jpg", []byte("x"))
		req := httptest.NewRequest("POST", "/admin/uploads", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		handler.UploadImage(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})

	t.Run("returns 503 when storage is not configured", func(t *testing.T) {
		handler := NewAdminHandler(db, nil, cfg)

		body, contentType := multipartImage(t, "kofi.jpg", []byte("x"))
		req := httptest.NewRequest("POST", "/admin/uploads", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("X-Admin-Key", cfg.AdminKey)
		w := httptest.NewRecorder()

		handler.UploadImage(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", w.Code)
		}
	})

	t.Run("rejects missing image field", func(t *testing.T) {
		handler := NewAdminHandler(db, newFakeImageStore(), cfg)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		mw.WriteField("other", "value")
		mw.Close()

		req := httptest.NewRequest("POST", "/admin/uploads", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("X-Admin-Key", cfg.AdminKey)
		w := httptest.NewRecorder()

		handler.UploadImage(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("surfaces storage failure as 500", func(t *testing.T) {
		store := newFakeImageStore()
		store.fail = true
		handler := NewAdminHandler(db, store, cfg)

		body, contentType := multipartImage(t, "kofi.jpg", []byte("x"))
		req := httptest.NewRequest("POST", "/admin/uploads", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("X-Admin-Key", cfg.AdminKey)
		w := httptest.NewRecorder()

		handler.UploadImage(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", w.Code)
		}
	})
}

func TestListAttempts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAdminHandler(db, nil, cfg)

	insertAttempt := func(email, status string, createdAt time.Time) {
		reason := "test reason"
		_, err := db.Exec(`
			INSERT INTO vote_attempts (id, full_name, email, phone_number, attempt_status, rejection_reason, existing_voter_id, ip_hash, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NULL, NULL, $7)
		`, uuid.NewString(), "Voter", email, "555-0000", status, reason, createdAt)
		if err != nil {
			t.Fatalf("Failed to insert attempt: %v", err)
		}
	}

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	insertAttempt("a@x.com", models.AttemptSuccess, base)
	insertAttempt("b@x.com", models.AttemptRejectedAlreadyVoted, base.Add(time.Minute))
	insertAttempt("c@x.com", models.AttemptSuccess, base.Add(2*time.Minute))

	t.Run("newest first", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/attempts", nil)
		req.Header.Set("X-Admin-Key", cfg.AdminKey)
		w := httptest.NewRecorder()

		handler.ListAttempts(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var attempts []models.VoteAttempt
		if err := json.NewDecoder(w.Body).Decode(&attempts); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(attempts) != 3 {
			t.Fatalf("Expected 3 attempts, got %d", len(attempts))
		}
		if attempts[0].Email != "c@x.com" || attempts[2].Email != "a@x.com" {
			t.Errorf("Expected newest-first ordering, got %s .. %s", attempts[0].Email, attempts[2].Email)
		}
	})

	t.Run("status filter", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/attempts?status="+models.AttemptRejectedAlreadyVoted, nil)
		req.Header.Set("X-Admin-Key", cfg.AdminKey)
		w := httptest.NewRecorder()

		handler.ListAttempts(w, req)

		var attempts []models.VoteAttempt
		if err := json.NewDecoder(w.Body).Decode(&attempts); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(attempts) != 1 || attempts[0].Email != "b@x.com" {
			t.Errorf("Expected only the rejected attempt, got %+v", attempts)
		}
	})

	t.Run("limit", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/attempts?limit=2", nil)
		req.Header.Set("X-Admin-Key", cfg.AdminKey)
		w := httptest.NewRecorder()

		handler.ListAttempts(w, req)

		var attempts []models.VoteAttempt
		if err := json.NewDecoder(w.Body).Decode(&attempts); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(attempts) != 2 {
			t.Errorf("Expected 2 attempts, got %d", len(attempts))
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/attempts?limit=zero", nil)
		req.Header.Set("X-Admin-Key", cfg.AdminKey)
		w := httptest.NewRecorder()

		handler.ListAttempts(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("requires admin key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin/attempts", nil)
		w := httptest.NewRecorder()

		handler.ListAttempts(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})

	t.Run("ip hash never serialized", func(t *testing.T) {
		_, err := db.Exec(`
			INSERT INTO vote_attempts (id, full_name, email, phone_number, attempt_status, rejection_reason, existing_voter_id, ip_hash, created_at)
			VALUES ($1, $2, $3, $4, $5, NULL, NULL, $6, $7)
		`, uuid.NewString(), "Voter", "d@x.com", "555-0000", models.AttemptSuccess, "deadbeefdeadbeef", base.Add(3*time.Minute))
		if err != nil {
			t.Fatalf("Failed to insert attempt: %v", err)
		}

		req := httptest.NewRequest("GET", "/admin/attempts", nil)
		req.Header.Set("X-Admin-Key", cfg.AdminKey)
		w := httptest.NewRecorder()

		handler.ListAttempts(w, req)

		if bytes.Contains(w.Body.Bytes(), []byte("deadbeefdeadbeef")) {
			t.Error("Expected ip_hash to be excluded from JSON output")
		}
	})
}
