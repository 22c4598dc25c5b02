package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Player and guild event types
const (
	PlayerExperienceGained Type = "player.experience_gained"
	PlayerLevelUp          Type = "player.level_up"
	AchievementCompleted   Type = "player.achievement_completed"

	SessionReady           Type = "session.ready"
	SessionClosed          Type = "session.closed"
	SessionBootstrapFailed Type = "session.bootstrap_failed"

	GuildMemberJoined  Type = "guild.member_joined"
	GuildMemberLeft    Type = "guild.member_left"
	GuildInviteExpired Type = "guild.invite_expired"
)

// ExperiencePayloadV1 is the typed payload for experience events
type ExperiencePayloadV1 struct {
	PlayerID string `json:"player_id"`
	Amount   int64  `json:"amount"`
	Total    int64  `json:"total"`
}

// LevelUpPayloadV1 is the typed payload for level up events
type LevelUpPayloadV1 struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
}

// AchievementPayloadV1 is the typed payload for achievement completion events
type AchievementPayloadV1 struct {
	PlayerID      string `json:"player_id"`
	Name          string `json:"name"`
	AchievementID int    `json:"achievement_id"`
	SkillName     string `json:"skill_name,omitempty"`
}

// SessionPayloadV1 is the typed payload for session lifecycle events
type SessionPayloadV1 struct {
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	FirstLogin bool   `json:"first_login,omitempty"`
	Phase      string `json:"phase,omitempty"`
	Error      string `json:"error,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// GuildPayloadV1 is the typed payload for guild membership events
type GuildPayloadV1 struct {
	GuildID    int64  `json:"guild_id"`
	GuildName  string `json:"guild_name"`
	PlayerID   string `json:"player_id,omitempty"`
	PlayerName string `json:"player_name"`
	Population int    `json:"population"`
}

// Type-safe event constructors

// NewExperienceEvent creates a new experience gained event
func NewExperienceEvent(playerID string, amount, total int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlayerExperienceGained,
		Payload: ExperiencePayloadV1{PlayerID: playerID, Amount: amount, Total: total},
	}
}

// NewLevelUpEvent creates a new level up event
func NewLevelUpEvent(playerID, name string, oldLevel, newLevel int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlayerLevelUp,
		Payload: LevelUpPayloadV1{
			PlayerID: playerID,
			Name:     name,
			OldLevel: oldLevel,
			NewLevel: newLevel,
		},
	}
}

// NewAchievementCompletedEvent creates a new achievement completion event
func NewAchievementCompletedEvent(playerID, name string, achievementID int, skillName string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AchievementCompleted,
		Payload: AchievementPayloadV1{
			PlayerID:      playerID,
			Name:          name,
			AchievementID: achievementID,
			SkillName:     skillName,
		},
	}
}

// NewSessionReadyEvent creates a new session ready event
func NewSessionReadyEvent(playerID, name string, firstLogin bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SessionReady,
		Payload: SessionPayloadV1{
			PlayerID:   playerID,
			Name:       name,
			FirstLogin: firstLogin,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewSessionClosedEvent creates a new session closed event
func NewSessionClosedEvent(playerID, name string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SessionClosed,
		Payload: SessionPayloadV1{
			PlayerID:  playerID,
			Name:      name,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewBootstrapFailedEvent creates a new bootstrap failure event
func NewBootstrapFailedEvent(playerID, name, phase string, err error) Event {
	payload := SessionPayloadV1{
		PlayerID:  playerID,
		Name:      name,
		Phase:     phase,
		Timestamp: time.Now().Unix(),
	}
	if err != nil {
		payload.Error = err.Error()
	}
	return Event{
		Version:  EventSchemaVersion,
		Type:     SessionBootstrapFailed,
		Payload:  payload,
		Metadata: map[string]interface{}{"phase": phase},
	}
}

// NewGuildMemberEvent creates a join or leave event
func NewGuildMemberEvent(eventType Type, guildID int64, guildName, playerID, playerName string, population int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: GuildPayloadV1{
			GuildID:    guildID,
			GuildName:  guildName,
			PlayerID:   playerID,
			PlayerName: playerName,
			Population: population,
		},
		Metadata: map[string]interface{}{"guild_id": guildID},
	}
}

// NewGuildInviteExpiredEvent creates an invite expiry event
func NewGuildInviteExpiredEvent(guildID int64, guildName, inviteeName string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GuildInviteExpired,
		Payload: GuildPayloadV1{
			GuildID:    guildID,
			GuildName:  guildName,
			PlayerName: inviteeName,
		},
		Metadata: map[string]interface{}{"guild_id": guildID},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously on the caller's goroutine.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
