package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/testkit/memstore"
)

type stubLimiter struct {
	max      int
	failures map[string]int
	err      error
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{max: max, failures: make(map[string]int)}
}

func (l *stubLimiter) Blocked(_ context.Context, email string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	return l.failures[email] >= l.max, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	if l.err != nil {
		return l.err
	}
	l.failures[email]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	if l.err != nil {
		return l.err
	}
	delete(l.failures, email)
	return nil
}

func seedUser(t *testing.T, store *memstore.Store, id, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &domain.User{
		ID:           id,
		Email:        email,
		Name:         id,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	store.PutUser(u)
	return u
}

func newTestAuthService(store *memstore.Store, limiter *stubLimiter) *AuthService {
	tokens := NewTokenIssuer("secret", time.Hour)
	if limiter == nil {
		return NewAuthService(store.Users(), tokens, nil, bcrypt.MinCost, zerolog.Nop())
	}
	return NewAuthService(store.Users(), tokens, limiter, bcrypt.MinCost, zerolog.Nop())
}

func TestAuthService_LoginThenResolve(t *testing.T) {
	store := memstore.New()
	seedUser(t, store, "u1", "alice@example.com", "pass123", domain.RoleAdmin)
	svc := newTestAuthService(store, nil)

	token, user, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	p, _, err := svc.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want := domain.Principal{ID: "u1", Email: "alice@example.com", Role: domain.RoleAdmin}
	if p != want {
		t.Fatalf("expected %+v, got %+v", want, p)
	}
}

func TestAuthService_Login_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	store := memstore.New()
	seedUser(t, store, "u1", "alice@example.com", "pass123", domain.RoleUser)
	inactive := seedUser(t, store, "u2", "bob@example.com", "pass123", domain.RoleUser)
	inactive.Active = false
	store.PutUser(inactive)
	svc := newTestAuthService(store, nil)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "pass123"},
		{"wrong password", "alice@example.com", "wrong"},
		{"inactive account", "bob@example.com", "pass123"},
		{"empty input", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, user, err := svc.Login(context.Background(), tc.email, tc.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if err.Error() != domain.ErrInvalidCredentials.Error() {
				t.Fatalf("error leaks detail: %q", err.Error())
			}
			if token != "" || user != nil {
				t.Fatalf("expected no token or user")
			}
		})
	}
}

func TestAuthService_Resolve_DeactivatedUser(t *testing.T) {
	store := memstore.New()
	u := seedUser(t, store, "u1", "alice@example.com", "pass123", domain.RoleUser)
	svc := newTestAuthService(store, nil)

	token, _, err := svc.Login(context.Background(), u.Email, "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	u.Active = false
	store.PutUser(u)

	if _, _, err := svc.Resolve(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_Resolve_DeletedUser(t *testing.T) {
	store := memstore.New()
	u := seedUser(t, store, "u1", "alice@example.com", "pass123", domain.RoleUser)
	svc := newTestAuthService(store, nil)

	token, _, err := svc.Login(context.Background(), u.Email, "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if err := store.Users().Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, _, err := svc.Resolve(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_Resolve_UsesStoredRole(t *testing.T) {
	store := memstore.New()
	u := seedUser(t, store, "u1", "alice@example.com", "pass123", domain.RoleAdmin)
	svc := newTestAuthService(store, nil)

	token, _, err := svc.Login(context.Background(), u.Email, "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	u.Role = domain.RoleUser
	store.PutUser(u)

	p, _, err := svc.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if p.Role != domain.RoleUser {
		t.Fatalf("expected demoted role, got %s", p.Role)
	}
}

func TestAuthService_Resolve_BadTokens(t *testing.T) {
	store := memstore.New()
	u := seedUser(t, store, "u1", "alice@example.com", "pass123", domain.RoleUser)
	svc := newTestAuthService(store, nil)

	expired := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(u)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	foreignToken, err := NewTokenIssuer("other-secret", time.Hour).Issue(u)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: u.ID}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	cases := map[string]string{
		"empty":           "",
		"garbage":         "not-a-token",
		"expired":         expiredToken,
		"wrong signature": foreignToken,
		"alg none":        noneToken,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := svc.Resolve(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	store := memstore.New()
	seedUser(t, store, "u1", "alice@example.com", "pass123", domain.RoleUser)
	limiter := newStubLimiter(2)
	svc := newTestAuthService(store, limiter)

	for i := 0; i < 2; i++ {
		if _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "pass123"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	limiter.failures = map[string]int{"alice@example.com": 1}
	if _, _, err := svc.Login(context.Background(), "alice@example.com", "pass123"); err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if n := limiter.failures["alice@example.com"]; n != 0 {
		t.Fatalf("expected counter reset, got %d", n)
	}
}

func TestAuthService_Login_LimiterFailsOpen(t *testing.T) {
	store := memstore.New()
	seedUser(t, store, "u1", "alice@example.com", "pass123", domain.RoleUser)
	limiter := newStubLimiter(1)
	limiter.err = errors.New("redis down")
	svc := newTestAuthService(store, limiter)

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "pass123"); err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pass123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestNewAuthService_TimingHashUsesStoredCost(t *testing.T) {
	tokens := NewTokenIssuer("secret", time.Hour)
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"configured", bcrypt.MinCost + 1, bcrypt.MinCost + 1},
		{"out of range falls back", 0, DefaultBcryptCost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(memstore.New().Users(), tokens, nil, tt.cost, zerolog.Nop())
			got, err := bcrypt.Cost(svc.dummyHash)
			if err != nil {
				t.Fatalf("cost: %v", err)
			}
			if got != tt.want {
				t.Fatalf("timing hash cost = %d; want %d", got, tt.want)
			}
		})
	}
}
