package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/fanzoftheone/taskdeck/internal/models"
	"github.com/fanzoftheone/taskdeck/internal/store"
	"github.com/fanzoftheone/taskdeck/internal/token"
)

// ErrUnauthenticated is returned for every resolution failure. A bad token
// and a token naming a nonexistent user are indistinguishable to the caller.
var ErrUnauthenticated = errors.New("unauthenticated")

// Resolver maps a presented token to a concrete user record.
type Resolver struct {
	tokens *token.Service
	users  store.UserStore
}

func NewResolver(tokens *token.Service, users store.UserStore) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

func (r *Resolver) Resolve(ctx context.Context, raw string) (*models.User, error) {
	claims, err := r.tokens.Verify(raw)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)

	if err != nil {
		return nil, fmt.Errorf("%w: malformed subject", ErrUnauthenticated)
	}

	user, err := r.users.GetUserByID(ctx, uint(userID))

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", ErrUnauthenticated)
		}
		return nil, err
	}

	return user, nil
}
