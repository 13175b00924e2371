package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fanzoftheone/taskdeck/internal/identity"
	"github.com/fanzoftheone/taskdeck/internal/models"
	"github.com/fanzoftheone/taskdeck/internal/store"
	"github.com/fanzoftheone/taskdeck/internal/token"
	"github.com/fanzoftheone/taskdeck/internal/types"
	"github.com/gin-gonic/gin"
)

type stubUsers struct {
	users map[uint]models.User
}

func (s *stubUsers) CreateUser(ctx context.Context, user *models.User) error {
	return nil
}

func (s *stubUsers) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return &user, nil
	}
	return nil, store.ErrNotFound
}

func (s *stubUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, store.ErrNotFound
}

func newAuthTestServer(t *testing.T) (*gin.Engine, *token.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := token.New("test-secret", "HS256", time.Hour, time.Now)
	if err != nil {
		t.Fatalf("token.New returned error: %v", err)
	}

	users := &stubUsers{users: map[uint]models.User{
		1: {ID: 1, Email: "a@example.com"},
	}}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := identity.NewResolver(tokens, users)

	r := gin.New()
	r.GET("/protected", Auth(resolver, log), func(ctx *gin.Context) {
		user, _ := ctx.Get(types.ContextUserKey)
		authenticated := user.(AuthenticatedUser)
		ctx.JSON(http.StatusOK, gin.H{"id": authenticated.ID})
	})

	return r, tokens
}

func get(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAllowsValidBearerToken(t *testing.T) {
	r, tokens := newAuthTestServer(t)

	raw, err := tokens.Issue("1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if w := get(r, "Bearer "+raw); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	r, tokens := newAuthTestServer(t)

	raw, err := tokens.Issue("1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	for name, header := range map[string]string{
		"no header":    "",
		"no scheme":    raw,
		"wrong scheme": "Basic " + raw,
	} {
		if w := get(r, header); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, w.Code)
		}
	}
}

func TestAuthRejectsTokenForUnknownUser(t *testing.T) {
	r, tokens := newAuthTestServer(t)

	raw, err := tokens.Issue("999")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if w := get(r, "Bearer "+raw); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
