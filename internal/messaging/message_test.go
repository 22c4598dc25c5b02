package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, []any{TypeEquip, "p1", -2}, Encode(Equip{PlayerID: "p1", Kind: -2}))
	assert.Equal(t, []any{TypeGuild, GuildPopulation, "Alpha", 3},
		Encode(Guild{Action: GuildPopulation, Args: []any{"Alpha", 3}}))
}

func TestAchievementFields(t *testing.T) {
	assert.Equal(t, []any{AchievementProgress, 4, 2},
		Achievement{Phase: AchievementProgress, ID: 4, Progress: 2}.Fields())
	assert.Equal(t, []any{AchievementComplete, 4},
		Achievement{Phase: AchievementComplete, ID: 4, Progress: 999}.Fields())
}
