package ports

import (
	"context"

	"github.com/cadmin/cadmin-api/internal/core/domain"
)

// AuthService verifies credentials and resolves bearer tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Resolve validates token and reloads the user it refers to. It fails
	// with domain.ErrUnauthenticated when the token or the account is no
	// longer usable.
	Resolve(ctx context.Context, token string) (domain.Principal, *domain.User, error)
}

// LoginLimiter throttles repeated failed logins for the same email.
type LoginLimiter interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
