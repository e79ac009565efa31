package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func load(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(env),
	}); err != nil {
		return nil, err
	}
	return &cfg, cfg.finish()
}

func TestConfig_Defaults(t *testing.T) {
	cfg, err := load(t, map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "3001" {
		t.Fatalf("expected port 3001, got %s", cfg.Port)
	}
	if cfg.Auth.TokenTTL != 7*24*time.Hour {
		t.Fatalf("expected 7 day ttl, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Fatalf("expected bcrypt cost 12, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Store.Driver != DriverPostgres {
		t.Fatalf("expected postgres driver, got %s", cfg.Store.Driver)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("expected redis disabled by default, got %s", cfg.Redis.Addr)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "sqlite"}, "STORE_DRIVER"},
		{"missing secret in production", map[string]string{"ENV": "production"}, "JWT_SECRET"},
		{"bad cost", map[string]string{"BCRYPT_COST": "2"}, "BCRYPT_COST"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := load(t, tc.env)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tc.wantErr, err)
			}
		})
	}

	if _, err := load(t, map[string]string{"ENV": "production", "JWT_SECRET": "s3cret", "STORE_DRIVER": "mongo"}); err != nil {
		t.Fatalf("expected production config to validate, got %v", err)
	}
}

func TestConfig_CORSOrigins(t *testing.T) {
	cfg, err := load(t, map[string]string{"CORS_ALLOW_ORIGINS": "http://a.test,http://b.test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
}
