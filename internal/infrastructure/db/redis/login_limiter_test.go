package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, max int, lockout time.Duration) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, max, lockout), mr
}

func TestLoginLimiter_BlocksAfterMaxFailures(t *testing.T) {
	l, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		blocked, err := l.Blocked(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("Blocked returned error: %v", err)
		}
		if blocked {
			t.Fatalf("blocked after %d failures", i)
		}
		if err := l.RecordFailure(ctx, "alice@example.com"); err != nil {
			t.Fatalf("RecordFailure returned error: %v", err)
		}
	}

	blocked, err := l.Blocked(ctx, "ALICE@example.com")
	if err != nil {
		t.Fatalf("Blocked returned error: %v", err)
	}
	if !blocked {
		t.Fatalf("expected email to be blocked")
	}

	other, err := l.Blocked(ctx, "bob@example.com")
	if err != nil || other {
		t.Fatalf("expected other emails unaffected, got %v %v", other, err)
	}
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	l, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if err := l.RecordFailure(ctx, "alice@example.com"); err != nil {
		t.Fatalf("RecordFailure returned error: %v", err)
	}
	if ttl := mr.TTL("login:fail:alice@example.com"); ttl != time.Minute {
		t.Fatalf("expected ttl of one minute, got %v", ttl)
	}

	mr.FastForward(2 * time.Minute)

	blocked, err := l.Blocked(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Blocked returned error: %v", err)
	}
	if blocked {
		t.Fatalf("expected block to expire")
	}
}

func TestLoginLimiter_Reset(t *testing.T) {
	l, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	if err := l.RecordFailure(ctx, "alice@example.com"); err != nil {
		t.Fatalf("RecordFailure returned error: %v", err)
	}
	if err := l.Reset(ctx, "alice@example.com"); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}

	blocked, err := l.Blocked(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Blocked returned error: %v", err)
	}
	if blocked {
		t.Fatalf("expected counter to be cleared")
	}
}

func TestLoginLimiter_Unreachable(t *testing.T) {
	l, mr := newTestLimiter(t, 1, time.Minute)
	mr.Close()

	if _, err := l.Blocked(context.Background(), "alice@example.com"); err == nil {
		t.Fatalf("expected an error when redis is unreachable")
	}
}
