package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cadmin/cadmin-api/internal/core/domain"
)

type stubAuthService struct {
	resolveFn func(ctx context.Context, token string) (domain.Principal, *domain.User, error)
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, errors.New("not implemented")
}

func (s *stubAuthService) Resolve(ctx context.Context, token string) (domain.Principal, *domain.User, error) {
	return s.resolveFn(ctx, token)
}

func newContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	alice := &domain.User{ID: "u1", Email: "alice@example.com", Role: domain.RoleAdmin, Active: true}
	stub := &stubAuthService{
		resolveFn: func(_ context.Context, token string) (domain.Principal, *domain.User, error) {
			if token != "good" {
				t.Fatalf("unexpected token %q", token)
			}
			return domain.PrincipalOf(alice), alice, nil
		},
	}
	c, rec := newContext("Bearer good")

	called := false
	handler := Auth(stub)(func(c echo.Context) error {
		called = true
		p, ok := Principal(c)
		if !ok {
			t.Fatalf("principal not set")
		}
		if p.ID != "u1" || p.Role != domain.RoleAdmin {
			t.Fatalf("unexpected principal: %+v", p)
		}
		if c.Get(UserKey).(*domain.User).Email != alice.Email {
			t.Fatalf("user not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	stub := &stubAuthService{
		resolveFn: func(context.Context, string) (domain.Principal, *domain.User, error) {
			return domain.Principal{}, nil, domain.ErrUnauthenticated
		},
	}

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"no token":       "Bearer",
		"invalid token":  "Bearer not-a-token",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(header)
			handler := Auth(stub)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}
