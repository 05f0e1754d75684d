package handlers

import "testing"

func TestChatRateKey(t *testing.T) {
	if got := chatRateKey("abc-123", "203.0.113.9"); got != "abc-123" {
		t.Fatalf("session key = %q, want session id", got)
	}
	// a caller that never sends a session id still gets limited
	if got := chatRateKey("", "203.0.113.9"); got != "ip:203.0.113.9" {
		t.Fatalf("anonymous key = %q, want ip-scoped", got)
	}
}
