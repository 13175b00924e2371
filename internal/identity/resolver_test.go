package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fanzoftheone/taskdeck/internal/models"
	"github.com/fanzoftheone/taskdeck/internal/store"
	"github.com/fanzoftheone/taskdeck/internal/token"
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
	for _, user := range s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func newResolverForTest(t *testing.T, clock *fakeClock) (*Resolver, *token.Service) {
	t.Helper()

	tokens, err := token.New("test-secret", "HS256", time.Hour, clock.Now)
	if err != nil {
		t.Fatalf("token.New returned error: %v", err)
	}

	users := &stubUsers{users: map[uint]models.User{
		1: {ID: 1, Email: "a@example.com"},
	}}

	return NewResolver(tokens, users), tokens
}

func TestResolveImmediatelyAfterIssue(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	resolver, tokens := newResolverForTest(t, clock)

	raw, err := tokens.Issue("1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	user, err := resolver.Resolve(context.Background(), raw)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if user.ID != 1 || user.Email != "a@example.com" {
		t.Fatalf("resolved wrong user: %+v", user)
	}
}

func TestResolveExpiredToken(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	resolver, tokens := newResolverForTest(t, clock)

	raw, err := tokens.Issue("1", time.Minute)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	clock.current = clock.current.Add(time.Hour)

	if _, err := resolver.Resolve(context.Background(), raw); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestResolveFailuresAreIndistinguishable(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	resolver, tokens := newResolverForTest(t, clock)

	nonNumeric, err := tokens.Issue("abc")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	unknownUser, err := tokens.Issue("999")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	cases := map[string]string{
		"garbage token":       "not-a-token",
		"non-numeric subject": nonNumeric,
		"unknown subject":     unknownUser,
	}

	for name, raw := range cases {
		if _, err := resolver.Resolve(context.Background(), raw); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", name, err)
		}
	}
}

func TestResolveTamperedToken(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	resolver, _ := newResolverForTest(t, clock)

	foreign, err := token.New("another-secret", "HS256", time.Hour, clock.Now)
	if err != nil {
		t.Fatalf("token.New returned error: %v", err)
	}

	raw, err := foreign.Issue("1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := resolver.Resolve(context.Background(), raw); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
