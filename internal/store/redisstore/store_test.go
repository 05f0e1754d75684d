package redisstore

import (
	"context"
	"testing"
	"time"
)

func TestAllowChat_ZeroLimitDisablesLimiting(t *testing.T) {
	// never dialed: a zero limit short-circuits before any redis call
	s := New("127.0.0.1:1", "", 0)
	defer s.Close()

	allowed, err := s.AllowChat(context.Background(), "session-a", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed {
		t.Fatalf("expected zero limit to allow every turn")
	}
}

func TestAllowChat_FailsOpenWhenRedisDown(t *testing.T) {
	// port 1 refuses immediately; the limiter must allow the turn anyway
	s := New("127.0.0.1:1", "", 0)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	allowed, err := s.AllowChat(ctx, "session-a", 5)
	if err == nil {
		t.Fatalf("expected an error from an unreachable redis")
	}
	if !allowed {
		t.Fatalf("limiter must fail open when redis is unreachable")
	}
}
