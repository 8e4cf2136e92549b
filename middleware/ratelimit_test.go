package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_EnforcesLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)

	if !limiter.Allow("1.2.3.4") || !limiter.Allow("1.2.3.4") {
		t.Fatal("requests under the limit should be allowed")
	}
	if limiter.Allow("1.2.3.4") {
		t.Error("request over the limit should be rejected")
	}
	if !limiter.Allow("5.6.7.8") {
		t.Error("keys are limited independently")
	}
}

func TestRateLimiter_WindowExpiry(t *testing.T) {
	limiter := NewRateLimiter(1, 20*time.Millisecond)

	if !limiter.Allow("1.2.3.4") {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow("1.2.3.4") {
		t.Fatal("second request inside window should be rejected")
	}

	time.Sleep(30 * time.Millisecond)
	if !limiter.Allow("1.2.3.4") {
		t.Error("request after window expiry should be allowed")
	}
}
