package flow

import (
	"strconv"
	"time"

	"github.com/kayotsaha/authweb/internal/storage"
)

// ResendCooldownSeconds is where the resend countdown starts after every send.
const ResendCooldownSeconds = 30

// Countdown is the resend cooldown. It is kept as a deadline in storage so
// that it keeps running between requests; the visible value drops by one per
// elapsed second and never goes below zero.
type Countdown struct {
	store storage.Store
	key   string
	now   func() time.Time
}

// NewCountdown reads the countdown stored under key.
func NewCountdown(d Deps, key string) *Countdown {
	return &Countdown{store: d.Store, key: key, now: d.now}
}

// Reset restarts the countdown at exactly ResendCooldownSeconds.
func (c *Countdown) Reset() {
	deadline := c.now().Add(ResendCooldownSeconds * time.Second)
	c.store.Set(c.key, strconv.FormatInt(deadline.UnixMilli(), 10))
}

// Remaining is the number of whole seconds left, rounded up.
func (c *Countdown) Remaining() int {
	ms, err := strconv.ParseInt(c.store.Get(c.key), 10, 64)
	if err != nil {
		return 0
	}
	left := time.UnixMilli(ms).Sub(c.now())
	if left <= 0 {
		return 0
	}
	secs := int((left + time.Second - 1) / time.Second)
	return min(secs, ResendCooldownSeconds)
}

// Disabled reports whether resending is blocked.
func (c *Countdown) Disabled() bool { return c.Remaining() > 0 }
