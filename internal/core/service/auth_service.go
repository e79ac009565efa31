package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/core/ports"
)

// DefaultBcryptCost matches 2^12 rounds.
const DefaultBcryptCost = 12

// AuthService implements login and token resolution.
type AuthService struct {
	users   ports.UserRepository
	tokens  *TokenIssuer
	limiter ports.LoginLimiter
	log     zerolog.Logger

	// dummyHash is compared against when the email is unknown. It uses the
	// same cost as stored hashes so a miss takes as long as a wrong password.
	dummyHash []byte
}

// NewAuthService wires the authenticator. limiter may be nil, in which case
// logins are never throttled. bcryptCost must match the cost passwords are
// stored with.
func NewAuthService(users ports.UserRepository, tokens *TokenIssuer, limiter ports.LoginLimiter, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = DefaultBcryptCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("cadmin-timing-pad"), bcryptCost)
	if err != nil {
		log.Error().Err(err).Msg("failed to build login timing hash")
	}
	return &AuthService{users: users, tokens: tokens, limiter: limiter, log: log, dummyHash: dummy}
}

// Login checks email and password and returns a signed token. Unknown
// emails, inactive accounts and wrong passwords all fail with the same
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		blocked, err := s.limiter.Blocked(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter check failed, continuing")
		} else if blocked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return "", nil, s.failed(ctx, email)
	case err != nil:
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil || !user.Active {
		return "", nil, s.failed(ctx, email)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login limiter")
		}
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return token, user, nil
}

// Resolve turns a bearer token into the principal of a live, active user.
// The user is re-read on every call; nothing is cached.
func (s *AuthService) Resolve(ctx context.Context, token string) (domain.Principal, *domain.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, nil, err
	}

	user, err := s.users.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Principal{}, nil, fmt.Errorf("%w: user no longer exists", domain.ErrUnauthenticated)
		}
		return domain.Principal{}, nil, fmt.Errorf("resolve: %w", err)
	}
	if !user.Active {
		return domain.Principal{}, nil, fmt.Errorf("%w: account is inactive", domain.ErrUnauthenticated)
	}

	return domain.PrincipalOf(user), user, nil
}

func (s *AuthService) failed(ctx context.Context, email string) error {
	if s.limiter != nil {
		if err := s.limiter.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to record login failure")
		}
	}
	return domain.ErrInvalidCredentials
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
