package ratelimiter

import (
	"testing"
	"time"

	"github.com/cantiere-digitale/giornale/internal/config"
)

func TestFixedWindowLimiterBlocksOverLimit(t *testing.T) {
	limiter := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: 3,
		TimeFrame:            time.Minute,
		Enabled:              true,
	}, nil)

	for i := 0; i < 3; i++ {
		if ok, _ := limiter.Allow("10.0.0.1"); !ok {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}

	ok, retryAfter := limiter.Allow("10.0.0.1")
	if ok {
		t.Error("request over the limit allowed, want denied")
	}
	if retryAfter != time.Minute {
		t.Errorf("retryAfter = %v, want %v", retryAfter, time.Minute)
	}

	// A different client has its own window.
	if ok, _ := limiter.Allow("10.0.0.2"); !ok {
		t.Error("request from a different client denied, want allowed")
	}
}

func TestFixedWindowLimiterDisabled(t *testing.T) {
	limiter := NewRateLimiter(config.RateLimiterConfig{
		RequestsPerTimeFrame: 1,
		TimeFrame:            time.Minute,
		Enabled:              false,
	}, nil)

	for i := 0; i < 10; i++ {
		if ok, _ := limiter.Allow("10.0.0.1"); !ok {
			t.Fatal("disabled limiter denied a request")
		}
	}
}
