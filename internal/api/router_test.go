package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/focustrack/focus-tracker-api/internal/core/domain"
	"github.com/focustrack/focus-tracker-api/internal/core/service"
	"github.com/focustrack/focus-tracker-api/internal/infrastructure/config"
)

// memUserRepo mirrors the Mongo repository contract: uniqueness decided at
// write time under a lock, FindByID without the hash.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.nextID++
	created := *user
	created.ID = "user_" + strconv.Itoa(r.nextID)
	stored := created
	r.users[created.ID] = &stored
	return &created, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	found := *u
	found.PasswordHash = ""
	return &found, nil
}

func (r *memUserRepo) UpdateUsername(_ context.Context, id, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for otherID, u := range r.users {
		if u.Username == username && otherID != id {
			return nil, domain.ErrUsernameTaken
		}
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Username = username
	updated := *u
	updated.PasswordHash = ""
	return &updated, nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	nextID   int
	sessions []domain.FocusSession
}

func (r *memSessionRepo) Insert(_ context.Context, session *domain.FocusSession) (*domain.FocusSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	created := *session
	created.ID = "session_" + strconv.Itoa(r.nextID)
	r.sessions = append(r.sessions, created)
	return &created, nil
}

func (r *memSessionRepo) FindByUser(_ context.Context, userID string) ([]domain.FocusSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.FocusSession
	for i := len(r.sessions) - 1; i >= 0; i-- {
		if r.sessions[i].UserID == userID {
			out = append(out, r.sessions[i])
		}
	}
	return out, nil
}

func (r *memSessionRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []domain.FocusSession
	var deleted int64
	for _, s := range r.sessions {
		if s.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	r.sessions = kept
	return deleted, nil
}

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	tokens, err := service.NewTokenManager("test-secret")
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	cfg := &config.Config{
		Env:         "production",
		CORSOrigins: []string{"http://localhost:3000"},
	}
	return NewRouter(cfg, Dependencies{
		Users:    newMemUserRepo(),
		Sessions: &memSessionRepo{},
		Tokens:   tokens,
		Registry: prometheus.NewRegistry(),
		Log:      zerolog.Nop(),
	})
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return m
}

func TestRouter_AuthFlow(t *testing.T) {
	e := newTestRouter(t)

	// Register alice.
	rec := doJSON(e, http.MethodPost, "/api/users/register", `{"username":"alice","password":"secret1"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "secret1") || strings.Contains(rec.Body.String(), "passwordHash") {
		t.Fatalf("register response leaks credentials: %s", rec.Body.String())
	}

	// Wrong password: 401 with a generic message.
	rec = doJSON(e, http.MethodPost, "/api/users/login", `{"username":"alice","password":"wrong1"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "user not found") || strings.Contains(rec.Body.String(), "password mismatch") {
		t.Fatalf("login error leaks which credential failed: %s", rec.Body.String())
	}

	// Unknown user: identical 401.
	recGhost := doJSON(e, http.MethodPost, "/api/users/login", `{"username":"ghost","password":"wrong1"}`, "")
	if recGhost.Code != http.StatusUnauthorized {
		t.Fatalf("ghost login: expected 401, got %d", recGhost.Code)
	}
	wrongBody := decodeBody(t, rec)["error"].(map[string]any)
	ghostBody := decodeBody(t, recGhost)["error"].(map[string]any)
	if wrongBody["message"] != ghostBody["message"] {
		t.Fatalf("distinguishable auth failures: %v vs %v", wrongBody["message"], ghostBody["message"])
	}

	// Correct login.
	rec = doJSON(e, http.MethodPost, "/api/users/login", `{"username":"alice","password":"secret1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	login := decodeBody(t, rec)
	token, _ := login["token"].(string)
	if token == "" {
		t.Fatalf("expected token in login response")
	}
	if login["expiresIn"] != "7d" {
		t.Fatalf("expected expiresIn 7d, got %v", login["expiresIn"])
	}

	// /me with the token.
	rec = doJSON(e, http.MethodGet, "/api/users/me", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	me := decodeBody(t, rec)["user"].(map[string]any)
	if me["username"] != "alice" {
		t.Fatalf("unexpected me payload: %+v", me)
	}

	// /me without a header.
	rec = doJSON(e, http.MethodGet, "/api/users/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me without token: expected 401, got %d", rec.Code)
	}

	// Renaming onto a taken username is a 400 conflict.
	rec = doJSON(e, http.MethodPost, "/api/users/register", `{"username":"bob","password":"secret1"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register bob: expected 201, got %d", rec.Code)
	}
	rec = doJSON(e, http.MethodPut, "/api/users/profile", `{"username":"bob"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("rename onto bob: expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	// A permitted rename works and the new name shows on /me.
	rec = doJSON(e, http.MethodPut, "/api/users/profile", `{"username":"alice2"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("rename: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_DuplicateRegistration(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(e, http.MethodPost, "/api/users/register", `{"username":"alice","password":"secret1"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	rec = doJSON(e, http.MethodPost, "/api/users/register", `{"username":"alice","password":"other99"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ValidationErrorShape(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(e, http.MethodPost, "/api/users/register", `{"username":"al"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)["error"].(map[string]any)
	details, ok := body["details"].([]any)
	if !ok || len(details) != 2 {
		t.Fatalf("expected username and password errors, got %+v", body)
	}
	joined := rec.Body.String()
	if !strings.Contains(joined, "username") || !strings.Contains(joined, "password") {
		t.Fatalf("details do not name fields: %s", joined)
	}
}

func TestRouter_SessionLifecycle(t *testing.T) {
	e := newTestRouter(t)

	_ = doJSON(e, http.MethodPost, "/api/users/register", `{"username":"alice","password":"secret1"}`, "")
	login := decodeBody(t, doJSON(e, http.MethodPost, "/api/users/login", `{"username":"alice","password":"secret1"}`, ""))
	token := login["token"].(string)

	// Sessions are protected.
	if rec := doJSON(e, http.MethodGet, "/api/sessions", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	body := `{"goal":"write tests","duration":25,"startTime":"2026-01-02T10:00:00Z","endTime":"2026-01-02T10:25:00Z"}`
	rec := doJSON(e, http.MethodPost, "/api/sessions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody(t, rec)["session"].(map[string]any)
	if created["completed"] != true {
		t.Fatalf("completed must default to true: %+v", created)
	}

	rec = doJSON(e, http.MethodGet, "/api/sessions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	sessions := decodeBody(t, rec)["sessions"].([]any)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}

	rec = doJSON(e, http.MethodDelete, "/api/sessions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", rec.Code)
	}
	sessions = decodeBody(t, doJSON(e, http.MethodGet, "/api/sessions", "", token))["sessions"].([]any)
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions after clear, got %d", len(sessions))
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(e, http.MethodGet, "/api/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	body := decodeBody(t, rec)["error"].(map[string]any)
	if body["message"] != "Route not found" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if body["path"] != "/api/nope" {
		t.Fatalf("expected path in envelope, got %+v", body)
	}
}

func TestRouter_Liveness(t *testing.T) {
	e := newTestRouter(t)

	rec := doJSON(e, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"OK"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
