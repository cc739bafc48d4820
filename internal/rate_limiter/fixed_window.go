package ratelimiter

import (
	"sync"
	"time"

	"github.com/cantiere-digitale/giornale/internal/config"
	"go.uber.org/zap"
)

// FixedWindowRateLimiter counts requests per client within a fixed time
// frame; when the frame expires the count starts over.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	clients map[string]int
	cfg     config.RateLimiterConfig
	logger  *zap.SugaredLogger
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	limiter := &FixedWindowRateLimiter{
		clients: make(map[string]int),
		cfg:     cfg,
		logger:  logger,
	}

	if cfg.Enabled {
		go limiter.resetLoop()
	}

	return limiter
}

// Allow reports whether the client may proceed, and when it may retry if not.
func (rl *FixedWindowRateLimiter) Allow(clientID string) (bool, time.Duration) {
	if !rl.cfg.Enabled {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	count := rl.clients[clientID]
	if count >= rl.cfg.RequestsPerTimeFrame {
		return false, rl.cfg.TimeFrame
	}

	rl.clients[clientID] = count + 1
	return true, 0
}

func (rl *FixedWindowRateLimiter) resetLoop() {
	ticker := time.NewTicker(rl.cfg.TimeFrame)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		rl.clients = make(map[string]int)
		rl.mu.Unlock()
	}
}
