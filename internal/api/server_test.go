package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/auth"
	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/http/response"
	"github.com/shelfmark/shelfmark-server/internal/service"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// testServer wires a full server over a seeded sqlite store, plus tokens for
// one member and one admin.
type testServer struct {
	server      *Server
	memberToken string
	adminToken  string
	memberID    int64
	adminID     int64
	solarisID   int64
	readingID   int64
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	adminRole, err := st.CreateRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	memberRole, err := st.CreateRole(ctx, domain.RoleMember)
	require.NoError(t, err)

	hash, err := auth.HashPassword("password-alice")
	require.NoError(t, err)
	memberID, err := st.CreateUser(ctx, domain.User{
		Username: "alice", PasswordHash: hash, RoleID: memberRole, CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	adminID, err := st.CreateUser(ctx, domain.User{
		Username: "root", PasswordHash: hash, RoleID: adminRole, CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	authorID, err := st.CreateAuthor(ctx, domain.Author{FullName: "Stanislaw Lem"})
	require.NoError(t, err)
	genreID, err := st.CreateGenre(ctx, "science fiction")
	require.NoError(t, err)
	readingID, err := st.CreateStatus(ctx, "reading")
	require.NoError(t, err)
	solarisID, err := st.CreateBook(ctx, domain.Book{
		AuthorID: authorID, Title: "Solaris", CreatedAt: time.Now().UTC(),
	}, []int64{genreID})
	require.NoError(t, err)

	reg := cache.NewRegistry(st, logger)
	require.NoError(t, reg.InitAll(ctx))

	key := make([]byte, 32)
	_, err = rand.Read(key)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	svcs := Services{
		Auth:     service.NewAuthService(st, reg, tokens, logger),
		Users:    service.NewUserService(st, reg, logger),
		Authors:  service.NewAuthorService(st, reg, logger),
		Genres:   service.NewGenreService(st, reg, logger),
		Statuses: service.NewStatusService(st, reg, logger),
		Books:    service.NewBookService(st, reg, logger),
		Booklist: service.NewBooklistService(st, reg, logger),
		Reviews:  service.NewReviewService(st, reg, logger),
	}
	srv := NewServer(st, tokens, svcs, 60, logger)

	memberToken, err := tokens.GenerateAccessToken(memberID, "alice", domain.RoleMember)
	require.NoError(t, err)
	adminToken, err := tokens.GenerateAccessToken(adminID, "root", domain.RoleAdmin)
	require.NoError(t, err)

	return &testServer{
		server:      srv,
		memberToken: memberToken,
		adminToken:  adminToken,
		memberID:    memberID,
		adminID:     adminID,
		solarisID:   solarisID,
		readingID:   readingID,
	}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope(t, rec).Success)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/books/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/books/", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "carol", "password": "a decent password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "carol", "password": "a decent password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	env := envelope(t, rec)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["accessToken"])

	rec = ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "carol", "password": "wrong password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", envelope(t, rec).Code)
}

func TestListBooks(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/books/", ts.memberToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := envelope(t, rec)
	books, ok := env.Data.([]any)
	require.True(t, ok)
	require.Len(t, books, 1)
	book := books[0].(map[string]any)
	assert.Equal(t, "Solaris", book["title"])
}

func TestAdminOnlyWrites(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]any{"fullName": "Ursula K. Le Guin"}

	rec := ts.do(t, http.MethodPost, "/api/v1/authors/", ts.memberToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/authors/", ts.adminToken, body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestBooklistSelfOrAdmin(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]any{"statusId": ts.readingID}

	path := func(userID int64) string {
		return "/api/v1/users/" + itoa(userID) + "/booklist/" + itoa(ts.solarisID)
	}

	// A member cannot modify another user's list.
	rec := ts.do(t, http.MethodPost, path(ts.adminID), ts.memberToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// But can modify their own.
	rec = ts.do(t, http.MethodPost, path(ts.memberID), ts.memberToken, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Admins can modify anyone's.
	rec = ts.do(t, http.MethodPost, path(ts.adminID), ts.adminToken, body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate list entries are refused.
	rec = ts.do(t, http.MethodPost, path(ts.memberID), ts.memberToken, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestReviewLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	listPath := "/api/v1/users/" + itoa(ts.memberID) + "/booklist/" + itoa(ts.solarisID)
	rec := ts.do(t, http.MethodPost, listPath, ts.memberToken, map[string]any{"statusId": ts.readingID})
	require.Equal(t, http.StatusCreated, rec.Code)

	reviewPath := "/api/v1/reviews/" + itoa(ts.memberID) + "/" + itoa(ts.solarisID)
	rec = ts.do(t, http.MethodPost, reviewPath, ts.memberToken, map[string]any{"score": 9, "comment": "great"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, reviewPath, ts.memberToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := envelope(t, rec).Data.(map[string]any)
	assert.Equal(t, float64(9), data["score"])

	rec = ts.do(t, http.MethodPatch, reviewPath, ts.memberToken, map[string]any{"score": 7})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, reviewPath, ts.memberToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, reviewPath, ts.memberToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownFieldRejected(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/genres/", ts.adminToken, map[string]any{
		"name": "horror", "bogus": true,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
