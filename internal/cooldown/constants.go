package cooldown

import "time"

// Actions and buffs tracked by the service
const (
	ActionConsume   = "consume"
	BuffRoyalAzalea = "royal_azalea"
)

// Default durations
const (
	ConsumeCooldown         = 4 * time.Second
	RoyalAzaleaDuration     = 15 * time.Second
	DefaultCooldownDuration = 5 * time.Second
)

// KeySeparator joins player id and action into a cache key
const KeySeparator = ":"

// Error message formats
const (
	ErrFmtCooldownWithMinutes = "action '%s' on cooldown: %dm %ds remaining"
	ErrFmtCooldownSecondsOnly = "action '%s' on cooldown: %ds remaining"
)
