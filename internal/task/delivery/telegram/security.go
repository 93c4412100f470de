package telegram

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// SecurityConfig configures webhook hardening.
type SecurityConfig struct {
	// Secret is the Telegram webhook secret_token; empty disables the check.
	Secret          string
	RateLimitPerMin int
}

// SecurityValidator validates incoming webhook updates: secret token,
// per-sender rate limit, and update-ID dedup (Telegram redelivers updates
// until acknowledged).
type SecurityValidator struct {
	config      SecurityConfig
	rateLimiter *rateLimiter
	seenUpdates *expirable.LRU[int64, struct{}]
}

// NewSecurityValidator creates a validator from config.
func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	if config.RateLimitPerMin <= 0 {
		config.RateLimitPerMin = 30
	}
	return &SecurityValidator{
		config:      config,
		rateLimiter: newRateLimiter(config.RateLimitPerMin),
		seenUpdates: expirable.NewLRU[int64, struct{}](1000, nil, time.Minute*10),
	}
}

// ValidateSecretToken verifies the X-Telegram-Bot-Api-Secret-Token header.
func (v *SecurityValidator) ValidateSecretToken(token string) error {
	if v.config.Secret == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(v.config.Secret)) != 1 {
		return fmt.Errorf("secret token verification failed")
	}
	return nil
}

// CheckRateLimit enforces the per-sender rate limit.
func (v *SecurityValidator) CheckRateLimit(senderID int64) error {
	return v.rateLimiter.Allow(fmt.Sprintf("sender_%d", senderID))
}

// IsDuplicate records an update ID and reports whether it was seen before.
func (v *SecurityValidator) IsDuplicate(updateID int64) bool {
	if _, seen := v.seenUpdates.Get(updateID); seen {
		return true
	}
	v.seenUpdates.Add(updateID, struct{}{})
	return false
}

// rateLimiter is a per-source token bucket with auto-cleanup.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,
			nil,
			time.Minute*5,
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0),
		burst: burst,
	}
}

func (rl *rateLimiter) Allow(key string) error {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for %s", key)
	}
	return nil
}
