// Package auth provides credential verification, token issuing, and
// principal resolution for the ledger. Services never look at sessions
// themselves: the HTTP middleware resolves the caller to a models.User
// via Resolver and passes it down as an explicit argument.
package auth

import (
	"context"
	"errors"

	"github.com/centsplit/centsplit/internal/models"
)

var (
	// ErrUnauthenticated indicates a missing or invalid session token.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUserNotProvisioned indicates a valid token whose subject has
	// no corresponding user record.
	ErrUserNotProvisioned = errors.New("user not provisioned")
)

// UserStorage defines the user persistence operations the auth package
// needs. This keeps it independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticator defines the interface for authentication
// implementations, allowing different auth methods (password, passkeys,
// OAuth) without changing the service layer.
type Authenticator interface {
	// Register creates a new user account with the given credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}

// Resolver maps a validated session token to the canonical user
// record. It is the single place "who is asking" is decided.
type Resolver struct {
	storage    UserStorage
	jwtManager *JWTManager
}

// NewResolver creates a resolver backed by the given user storage and
// token manager.
func NewResolver(storage UserStorage, jwtManager *JWTManager) *Resolver {
	return &Resolver{storage: storage, jwtManager: jwtManager}
}

// Resolve validates the bearer token and loads the acting principal.
// Returns ErrUnauthenticated for a missing or bad token and
// ErrUserNotProvisioned when the token subject has no user record.
func (r *Resolver) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := r.jwtManager.Validate(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	user, err := r.storage.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotProvisioned
	}
	return user, nil
}
