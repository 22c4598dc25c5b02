package metrics

import (
	"context"

	"github.com/osse101/realmkeeper/internal/event"
	"github.com/osse101/realmkeeper/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.PlayerExperienceGained,
		event.PlayerLevelUp,
		event.AchievementCompleted,
		event.SessionReady,
		event.SessionClosed,
		event.SessionBootstrapFailed,
		event.GuildMemberJoined,
		event.GuildMemberLeft,
		event.GuildInviteExpired,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.PlayerExperienceGained:
		payload, err := event.DecodePayload[event.ExperiencePayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		ExperienceAwarded.Add(float64(payload.Amount))

	case event.PlayerLevelUp:
		LevelUps.Inc()

	case event.AchievementCompleted:
		AchievementsCompleted.Inc()

	case event.SessionReady:
		SessionsActive.Inc()

	case event.SessionClosed:
		SessionsActive.Dec()

	case event.SessionBootstrapFailed:
		payload, err := event.DecodePayload[event.SessionPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		BootstrapFailures.WithLabelValues(payload.Phase).Inc()

	case event.GuildMemberJoined:
		GuildMembersOnline.Inc()

	case event.GuildMemberLeft:
		GuildMembersOnline.Dec()

	case event.GuildInviteExpired:
		GuildInvites.WithLabelValues(InviteExpired).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
