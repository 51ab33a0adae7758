package ratelimit

import (
	"log/slog"
	"sync"
	"time"
)

// BanlistConfig tunes the timed-ban escalation.
type BanlistConfig struct {
	// ViolationThreshold is how many denials inside ViolationWindow earn a
	// ban. Zero means 10.
	ViolationThreshold int

	// ViolationWindow is the period over which denials accumulate. Zero
	// means 1 minute.
	ViolationWindow time.Duration

	// BaseBanDuration is the first ban length. Each further ban doubles it
	// up to MaxBanDuration. Zero means 5 minutes.
	BaseBanDuration time.Duration

	// MaxBanDuration caps escalation. Zero means 1 hour.
	MaxBanDuration time.Duration

	// Clock abstraction for tests; nil means SystemClock.
	Clock Clock
}

func (c *BanlistConfig) applyDefaults() {
	if c.ViolationThreshold <= 0 {
		c.ViolationThreshold = 10
	}
	if c.ViolationWindow <= 0 {
		c.ViolationWindow = time.Minute
	}
	if c.BaseBanDuration <= 0 {
		c.BaseBanDuration = 5 * time.Minute
	}
	if c.MaxBanDuration <= 0 {
		c.MaxBanDuration = time.Hour
	}
	if c.Clock == nil {
		c.Clock = SystemClock{}
	}
}

// Banlist escalates persistent rate limit violators into timed bans. A key
// that keeps hammering a limit is banned outright, and each successive ban
// doubles in length up to the configured cap.
type Banlist struct {
	config  BanlistConfig
	mu      sync.Mutex
	entries map[string]*banEntry
}

type banEntry struct {
	violations  int
	windowStart time.Time
	bannedUntil time.Time
	banCount    int
}

// NewBanlist creates a Banlist.
func NewBanlist(config BanlistConfig) *Banlist {
	config.applyDefaults()
	return &Banlist{
		config:  config,
		entries: make(map[string]*banEntry),
	}
}

// IsBanned reports whether key is currently banned and until when.
func (b *Banlist) IsBanned(key string) (bool, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.entries[key]
	if !ok {
		return false, time.Time{}
	}
	now := b.config.Clock.Now()
	if now.Before(entry.bannedUntil) {
		return true, entry.bannedUntil
	}
	return false, time.Time{}
}

// RecordViolation counts one denial for key. It returns true with the ban
// deadline when the threshold was crossed and a new ban starts.
func (b *Banlist) RecordViolation(key string) (bool, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.config.Clock.Now()
	entry, ok := b.entries[key]
	if !ok {
		entry = &banEntry{windowStart: now}
		b.entries[key] = entry
	}

	if now.Sub(entry.windowStart) > b.config.ViolationWindow {
		entry.windowStart = now
		entry.violations = 0
	}
	entry.violations++

	if entry.violations < b.config.ViolationThreshold {
		return false, time.Time{}
	}

	entry.banCount++
	duration := b.config.BaseBanDuration << (entry.banCount - 1)
	if duration > b.config.MaxBanDuration || duration <= 0 {
		duration = b.config.MaxBanDuration
	}
	entry.bannedUntil = now.Add(duration)
	entry.violations = 0
	entry.windowStart = now

	slog.Warn("rate limit ban issued",
		slog.String("key", key),
		slog.Int("ban_count", entry.banCount),
		slog.Duration("duration", duration))
	return true, entry.bannedUntil
}

// Cleanup drops entries whose ban expired and whose violation window is
// stale, bounding memory.
func (b *Banlist) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.config.Clock.Now()
	for key, entry := range b.entries {
		if now.Before(entry.bannedUntil) {
			continue
		}
		if now.Sub(entry.windowStart) > 2*b.config.ViolationWindow {
			delete(b.entries, key)
		}
	}
}

// Len reports how many keys currently have a ban or violation entry.
func (b *Banlist) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
