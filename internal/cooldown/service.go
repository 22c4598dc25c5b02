package cooldown

import (
	"fmt"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// ErrOnCooldown is returned when action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	minutes := int(e.Remaining.Minutes())
	seconds := int(e.Remaining.Seconds()) % 60

	if minutes > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, e.Action, minutes, seconds)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, e.Action, seconds)
}

// Is allows errors.Is() to work with ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	_, ok := target.(ErrOnCooldown)
	return ok
}

// Service tracks short in-memory cooldowns and timed buffs per player.
// Entries are advisory: they are checked when the player acts and never
// fire on their own. Safe for concurrent use.
type Service struct {
	config Config
	cache  *ttlcache.Cache[string, time.Time]
	now    func() time.Time
}

// NewService creates a service. Call Start to run expiry cleanup and Stop
// to release it.
func NewService(config Config) *Service {
	cache := ttlcache.New[string, time.Time](
		ttlcache.WithDisableTouchOnHit[string, time.Time](),
	)
	return &Service{config: config, cache: cache, now: time.Now}
}

// WithClock replaces the time source, for tests
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Start runs the background cleanup loop until Stop
func (s *Service) Start() {
	go s.cache.Start()
}

// Stop ends the cleanup loop
func (s *Service) Stop() {
	s.cache.Stop()
}

func key(playerID, action string) string {
	return playerID + KeySeparator + action
}

// Remaining returns how long action stays blocked for playerID
func (s *Service) Remaining(playerID, action string) time.Duration {
	if s.config.DevMode {
		return 0
	}
	item := s.cache.Get(key(playerID, action))
	if item == nil {
		return 0
	}
	remaining := item.Value().Sub(s.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Active reports whether a cooldown or buff is running
func (s *Service) Active(playerID, action string) bool {
	return s.Remaining(playerID, action) > 0
}

// Trigger starts or restarts action for playerID
func (s *Service) Trigger(playerID, action string) {
	d := s.config.Duration(action)
	s.cache.Set(key(playerID, action), s.now().Add(d), d)
}

// Enforce runs fn unless action is on cooldown, starting the cooldown first
func (s *Service) Enforce(playerID, action string, fn func() error) error {
	if remaining := s.Remaining(playerID, action); remaining > 0 {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}
	s.Trigger(playerID, action)
	return fn()
}

// Reset clears action for playerID
func (s *Service) Reset(playerID, action string) {
	s.cache.Delete(key(playerID, action))
}

// Forget drops every entry belonging to playerID
func (s *Service) Forget(playerID string) {
	prefix := playerID + KeySeparator
	for _, k := range s.cache.Keys() {
		if strings.HasPrefix(k, prefix) {
			s.cache.Delete(k)
		}
	}
}
