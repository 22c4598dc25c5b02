package cooldown

import "time"

// defaultDurations covers every action and buff the game uses
var defaultDurations = map[string]time.Duration{
	ActionConsume:   ConsumeCooldown,
	BuffRoyalAzalea: RoyalAzaleaDuration,
}

// Config holds cooldown service configuration
type Config struct {
	// DevMode disables every cooldown; tests and local tooling only
	DevMode bool

	// Cooldowns overrides the default duration per action
	Cooldowns map[string]time.Duration
}

// Duration returns the override for action, its default, or
// DefaultCooldownDuration for an action the game does not define
func (c *Config) Duration(action string) time.Duration {
	if d, ok := c.Cooldowns[action]; ok {
		return d
	}
	if d, ok := defaultDurations[action]; ok {
		return d
	}
	return DefaultCooldownDuration
}
