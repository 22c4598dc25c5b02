package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got []Event

	bus.Subscribe(PlayerLevelUp, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), NewLevelUpEvent("p1", "alice", 1, 2)))
	require.NoError(t, bus.Publish(context.Background(), NewSessionClosedEvent("p1", "alice")), "no subscribers is not an error")

	require.Len(t, got, 1)
	payload, err := DecodePayload[LevelUpPayloadV1](got[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, 2, payload.NewLevel)
	assert.Equal(t, EventSchemaVersion, got[0].Version)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, e Event) error {
		count++
		return nil
	}

	bus.Subscribe(GuildMemberJoined, handler)
	bus.Subscribe(GuildMemberJoined, handler)

	require.NoError(t, bus.Publish(context.Background(), NewGuildMemberEvent(GuildMemberJoined, 1, "g", "p1", "alice", 3)))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0
	bus.Subscribe(SessionReady, func(ctx context.Context, e Event) error {
		calls++
		return errors.New("handler error")
	})
	bus.Subscribe(SessionReady, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), NewSessionReadyEvent("p1", "alice", true))
	assert.Error(t, err)
	assert.Equal(t, 2, calls, "a failing handler does not stop the others")
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	raw := map[string]interface{}{"guild_id": 7, "guild_name": "knights", "player_name": "bob", "population": 2}

	payload, err := DecodePayload[GuildPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), payload.GuildID)
	assert.Equal(t, "knights", payload.GuildName)
}

func TestDecodePayload_RawAndPointer(t *testing.T) {
	raw := json.RawMessage(`{"player_id":"p1","amount":40,"total":140}`)
	payload, err := DecodePayload[ExperiencePayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, ExperiencePayloadV1{PlayerID: "p1", Amount: 40, Total: 140}, payload)

	ptr := &ExperiencePayloadV1{PlayerID: "p2", Amount: 1}
	payload, err = DecodePayload[ExperiencePayloadV1](ptr)
	require.NoError(t, err)
	assert.Equal(t, "p2", payload.PlayerID)
}

func TestDecodePayload_Mismatch(t *testing.T) {
	_, err := DecodePayload[ExperiencePayloadV1](nil)
	assert.ErrorIs(t, err, ErrPayloadMismatch)

	_, err = DecodePayload[ExperiencePayloadV1]([]byte(`{"amount":"lots"}`))
	assert.ErrorIs(t, err, ErrPayloadMismatch)
}

func TestEvent_GetMetadataValue(t *testing.T) {
	e := NewBootstrapFailedEvent("p1", "alice", "bank", errors.New("boom"))
	assert.Equal(t, "bank", e.GetMetadataValue("phase"))
	assert.Nil(t, e.GetMetadataValue("missing"))
	assert.Nil(t, NewLevelUpEvent("p1", "a", 1, 2).GetMetadataValue("phase"))
}
