package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/userhub/accounts-api/internal/api"
	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/service"
)

// memoryUserRepo is a map-backed UserRepository mirroring the mongo
// implementation's uniqueness semantics (username checked before email).
type memoryUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, &domain.ConflictError{Field: "username"}
		}
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, &domain.ConflictError{Field: "email"}
		}
	}

	r.seq++
	created := *user
	created.ID = "id-" + strconv.Itoa(r.seq)
	stored := created
	r.users[created.ID] = &stored
	return &created, nil
}

func (r *memoryUserRepo) DeleteByUsername(_ context.Context, username string) (int64, error) {
	for id, u := range r.users {
		if u.Username == username {
			delete(r.users, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memoryUserRepo) ListAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Role != out[j].Role {
			return out[i].Role < out[j].Role
		}
		return out[i].Username < out[j].Username
	})
	return out, nil
}

type apiHarness struct {
	e    *echo.Echo
	repo *memoryUserRepo
}

func newHarness() *apiHarness {
	log := zerolog.Nop()
	e := api.NewEcho(log)
	repo := newMemoryUserRepo()
	api.Register(e, repo, nil, "secret", time.Hour, log)
	return &apiHarness{e: e, repo: repo}
}

func (h *apiHarness) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

// seedAdmin inserts an admin account directly; signup can never create one.
func (h *apiHarness) seedAdmin(t *testing.T, username, password string) {
	t.Helper()
	hash, err := service.HashPassword(password)
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}
	if _, err := h.repo.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
}

type authBody struct {
	Token string         `json:"token"`
	User  domain.Profile `json:"user"`
}

func decodeAuth(t *testing.T, rec *httptest.ResponseRecorder) authBody {
	t.Helper()
	var body authBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v: %s", err, rec.Body.String())
	}
	return body
}

func TestAPI_SignupLoginProfileDeleteFlow(t *testing.T) {
	h := newHarness()

	// signup normalizes the email and fixes the role to User
	rec := h.do(http.MethodPost, "/api/auth/signup", "", `{"username":"alice","password":"pw","email":"A@x.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("signup: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	signup := decodeAuth(t, rec)
	if signup.Token == "" {
		t.Fatalf("signup returned no token")
	}
	want := domain.Profile{Username: "alice", Email: "a@x.com", Role: domain.RoleUser}
	if signup.User != want {
		t.Fatalf("unexpected signup profile: %+v", signup.User)
	}

	// login returns the same profile
	rec = h.do(http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	login := decodeAuth(t, rec)
	if login.User != want {
		t.Fatalf("unexpected login profile: %+v", login.User)
	}

	// own profile with own token
	rec = h.do(http.MethodGet, "/api/users/alice", login.Token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get own profile: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// a user token cannot delete
	rec = h.do(http.MethodDelete, "/api/users/alice", login.Token, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("delete as user: expected 403, got %d", rec.Code)
	}

	// an admin token can
	h.seedAdmin(t, "root", "rootpw")
	rec = h.do(http.MethodPost, "/api/auth/login", "", `{"username":"root","password":"rootpw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	adminToken := decodeAuth(t, rec).Token

	rec = h.do(http.MethodDelete, "/api/users/alice", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete as admin: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var deleted map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &deleted); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if deleted["deleted"] != "alice" {
		t.Fatalf("unexpected delete body: %+v", deleted)
	}

	// repeat delete: nothing left to remove
	rec = h.do(http.MethodDelete, "/api/users/alice", adminToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}

	// alice's still-valid token now resolves to no role and fails the tier check
	rec = h.do(http.MethodGet, "/api/users", login.Token, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("deleted account token: expected 403, got %d", rec.Code)
	}
}

func TestAPI_SignupConflicts(t *testing.T) {
	h := newHarness()

	rec := h.do(http.MethodPost, "/api/auth/signup", "", `{"username":"alice","password":"pw","email":"alice@x.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("first signup: expected 200, got %d", rec.Code)
	}

	rec = h.do(http.MethodPost, "/api/auth/signup", "", `{"username":"alice","password":"pw","email":"new@x.com"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "username already exists") {
		t.Fatalf("username conflict: got %d %s", rec.Code, rec.Body.String())
	}

	rec = h.do(http.MethodPost, "/api/auth/signup", "", `{"username":"bob","password":"pw","email":"ALICE@x.com"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "email already exists") {
		t.Fatalf("email conflict: got %d %s", rec.Code, rec.Body.String())
	}

	if len(h.repo.users) != 1 {
		t.Fatalf("expected 1 account after conflicts, got %d", len(h.repo.users))
	}
}

func TestAPI_ListShapes(t *testing.T) {
	h := newHarness()
	h.seedAdmin(t, "root", "rootpw")

	rec := h.do(http.MethodPost, "/api/auth/signup", "", `{"username":"alice","password":"pw","email":"a@x.com"}`)
	userToken := decodeAuth(t, rec).Token

	rec = h.do(http.MethodPost, "/api/auth/login", "", `{"username":"root","password":"rootpw"}`)
	adminToken := decodeAuth(t, rec).Token

	// user gets only their own profile
	rec = h.do(http.MethodGet, "/api/users", userToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list as user: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"user"`) || strings.Contains(rec.Body.String(), `"users"`) {
		t.Fatalf("expected single-profile shape, got %s", rec.Body.String())
	}

	// admin gets everyone, keyed by username
	rec = h.do(http.MethodGet, "/api/users", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list as admin: expected 200, got %d", rec.Code)
	}
	var resp struct {
		Users map[string]domain.Profile `json:"users"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp.Users))
	}

	// cross-user profile access is forbidden for non-admins
	rec = h.do(http.MethodGet, "/api/users/root", userToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("cross-user get: expected 403, got %d", rec.Code)
	}
	rec = h.do(http.MethodGet, "/api/users/alice", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin get: expected 200, got %d", rec.Code)
	}
}

func TestAPI_TokenFailures(t *testing.T) {
	h := newHarness()

	rec := h.do(http.MethodGet, "/api/users", "", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("missing header: expected 403, got %d", rec.Code)
	}

	rec = h.do(http.MethodGet, "/api/users", "garbage", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("malformed token: expected 403, got %d", rec.Code)
	}

	expired, err := service.NewTokenService("secret", -time.Minute).Issue("id-1", "alice")
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}
	rec = h.do(http.MethodGet, "/api/users", expired, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expired token: expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "expired") {
		t.Fatalf("expected expiry reason, got %s", rec.Body.String())
	}
}
