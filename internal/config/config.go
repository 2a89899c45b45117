package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	DefaultMaxYearlyLeaveDays = 20
	DefaultRefreshTokenTTL    = 7 * 24 * time.Hour
	DefaultAccessTokenTTL     = 15 * time.Minute
)

// LeavePolicy holds the runtime-mutable leave rules. Admin endpoints change
// these while the process runs, so every read goes through the lock and
// callers must not cache the values.
type LeavePolicy struct {
	mu                       sync.RWMutex
	maxYearlyLeaveDays       int
	enableWorkDayCalculation bool
	enableLeaveLimitCheck    bool
}

func NewLeavePolicy() *LeavePolicy {
	return &LeavePolicy{
		maxYearlyLeaveDays:       DefaultMaxYearlyLeaveDays,
		enableWorkDayCalculation: true,
		enableLeaveLimitCheck:    true,
	}
}

// LeavePolicyFromEnv applies LEAVE_* overrides on top of the defaults.
func LeavePolicyFromEnv() *LeavePolicy {
	p := NewLeavePolicy()
	if v, err := strconv.Atoi(os.Getenv("LEAVE_MAX_YEARLY_DAYS")); err == nil && v > 0 {
		p.maxYearlyLeaveDays = v
	}
	if v, err := strconv.ParseBool(os.Getenv("LEAVE_ENABLE_WORKDAY_CALCULATION")); err == nil {
		p.enableWorkDayCalculation = v
	}
	if v, err := strconv.ParseBool(os.Getenv("LEAVE_ENABLE_LIMIT_CHECK")); err == nil {
		p.enableLeaveLimitCheck = v
	}
	return p
}

func (p *LeavePolicy) MaxYearlyLeaveDays() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.maxYearlyLeaveDays
}

func (p *LeavePolicy) SetMaxYearlyLeaveDays(days int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.maxYearlyLeaveDays = days
}

func (p *LeavePolicy) WorkDayCalculationEnabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.enableWorkDayCalculation
}

func (p *LeavePolicy) SetWorkDayCalculationEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enableWorkDayCalculation = enabled
}

func (p *LeavePolicy) LimitCheckEnabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.enableLeaveLimitCheck
}

func (p *LeavePolicy) SetLimitCheckEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enableLeaveLimitCheck = enabled
}

// TokenConfig holds token lifetimes. The refresh TTL is mutable at runtime;
// changes apply to tokens issued after the change only.
type TokenConfig struct {
	mu              sync.RWMutex
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewTokenConfig() *TokenConfig {
	return &TokenConfig{
		accessTokenTTL:  DefaultAccessTokenTTL,
		refreshTokenTTL: DefaultRefreshTokenTTL,
	}
}

func TokenConfigFromEnv() *TokenConfig {
	c := NewTokenConfig()
	if v, err := strconv.ParseInt(os.Getenv("REFRESH_TOKEN_DURATION_MS"), 10, 64); err == nil && v > 0 {
		c.refreshTokenTTL = time.Duration(v) * time.Millisecond
	}
	if v, err := strconv.ParseInt(os.Getenv("ACCESS_TOKEN_DURATION_MS"), 10, 64); err == nil && v > 0 {
		c.accessTokenTTL = time.Duration(v) * time.Millisecond
	}
	return c
}

func (c *TokenConfig) AccessTokenTTL() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessTokenTTL
}

func (c *TokenConfig) RefreshTokenTTL() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshTokenTTL
}

func (c *TokenConfig) SetRefreshTokenTTL(ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshTokenTTL = ttl
}
