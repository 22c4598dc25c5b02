package world

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/messaging"
	"github.com/osse101/realmkeeper/internal/messaging/messagingtest"
)

func TestConnect_BootstrapsAndRejoinsLedgerGuild(t *testing.T) {
	f := newFixture(t)

	f.login(t, "p1", "alice")
	f.waitGuild(t, "alice", 1)

	summary, err := f.world.Player(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "p1", summary.ID)
	assert.Equal(t, domain.Position{X: 10, Y: 20}, summary.Position)

	guilds, err := f.world.Guilds(context.Background())
	require.NoError(t, err)
	require.Len(t, guilds, 1)
	assert.Equal(t, GuildSummary{ID: 1, Name: "Knights", Population: 1, Members: []string{"alice"}}, guilds[0])

	welcomes := messagingtest.OfType(f.recorder.To("p1"), messaging.TypeWelcome)
	assert.Len(t, welcomes, 1)
}

func TestConnect_WithoutLedgerGuild(t *testing.T) {
	f := newFixture(t)

	f.login(t, "p2", "bob")
	f.flush(t)

	summary, err := f.world.Player(context.Background(), "bob")
	require.NoError(t, err)
	assert.Zero(t, summary.GuildID)
}

func TestConnect_BootstrapFailureClosesConnection(t *testing.T) {
	f := newFixture(t)

	f.world.Connect(context.Background(), "p9", "ghost")

	require.Eventually(t, func() bool { return f.conns.isClosed("p9") }, time.Second, 5*time.Millisecond)
	_, err := f.world.Player(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrPlayerOffline)
}

func TestConnect_DuplicateLoginRejected(t *testing.T) {
	f := newFixture(t)
	f.login(t, "p2", "bob")

	f.world.Connect(context.Background(), "p3", "Bob")
	f.flush(t)

	assert.True(t, f.conns.isClosed("p3"))
	assert.False(t, f.conns.isClosed("p2"))

	status, err := f.world.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, status.Online)

	// the rejected connection's disconnect leaves the original untouched
	f.world.Disconnect("p3")
	f.flush(t)
	_, err = f.world.Player(context.Background(), "bob")
	assert.NoError(t, err)
}

func TestDisconnect_SavesPositionAndLeavesOnlineSet(t *testing.T) {
	f := newFixture(t)
	f.login(t, "p1", "alice")
	f.waitGuild(t, "alice", 1)

	f.world.Disconnect("p1")
	f.flush(t)

	saves := f.store.find("save_position")
	require.Len(t, saves, 1)
	assert.Equal(t, []any{"alice", domain.Position{X: 10, Y: 20}}, saves[0].args)

	_, err := f.world.Player(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrPlayerOffline)

	guilds, err := f.world.Guilds(context.Background())
	require.NoError(t, err)
	assert.Zero(t, guilds[0].Population)
	// the offline ledger is untouched
	assert.Empty(t, f.guilds.find("remove_guild_member"))

	// disconnecting twice is harmless
	f.world.Disconnect("p1")
	f.flush(t)
	assert.Len(t, f.store.find("save_position"), 1)
}

func TestCommand_Flags(t *testing.T) {
	f := newFixture(t)
	f.login(t, "p2", "bob")

	f.command(t, "p2", `{"op":"pvp","enabled":true}`)
	f.command(t, "p2", `{"op":"game","enabled":true}`)

	summary, err := f.world.Player(context.Background(), "bob")
	require.NoError(t, err)
	assert.True(t, summary.PVP)
	assert.True(t, summary.InLobby)

	status, err := f.world.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Status{Online: 1, Lobby: 1, Guilds: 1}, status)

	f.world.Disconnect("p2")
	f.flush(t)
	status, err = f.world.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Status{Online: 0, Lobby: 0, Guilds: 1}, status)
}

func TestCommand_EquipFromInventory(t *testing.T) {
	f := newFixture(t)
	f.login(t, "p2", "bob")

	f.command(t, "p2", `{"op":"equip","kind":10,"index":0}`)

	saves := f.store.find("save_equipment")
	require.Len(t, saves, 1)
	assert.Equal(t, []any{"bob", 0, domain.EquipRecord{Kind: kindSword}}, saves[0].args)
}

func TestCommand_MalformedIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.login(t, "p2", "bob")
	before := len(f.recorder.All())

	f.command(t, "p2", `not json`)
	f.command(t, "p2", `{"op":"teleport"}`)
	f.command(t, "p2", `{"op":"guild_create"}`)
	f.command(t, "unknown", `{"op":"pvp","enabled":true}`)

	assert.Len(t, f.recorder.All(), before)
}

func TestCommand_FinishAchievementsRequiresAdmin(t *testing.T) {
	f := newFixture(t, "GM")
	f.login(t, "p2", "bob")
	f.login(t, "p4", "gm")

	f.command(t, "p2", `{"op":"finish_achievements"}`)
	assert.Empty(t, f.store.find("progress_achievement"))

	f.command(t, "p4", `{"op":"finish_achievements"}`)
	assert.Len(t, f.store.find("progress_achievement"), 2)
}

func TestCapabilities(t *testing.T) {
	w := New(Deps{}, Config{AdminNames: []string{"Root"}})

	assert.True(t, w.capabilities("root").Has(domain.CapabilityAdmin|domain.CapabilityBypassLevel))
	assert.Zero(t, w.capabilities("alice"))
}

func TestGuildLifecycle(t *testing.T) {
	f := newFixture(t)
	f.login(t, "p2", "bob")
	f.login(t, "p5", "carol")

	f.command(t, "p2", `{"op":"guild_create","name":"Dragons"}`)
	f.waitGuild(t, "bob", 2)
	assert.Equal(t, []any{int64(2), "bob"}, f.guilds.find("add_guild_member")[0].args)
	assert.Equal(t, []any{int64(2), "bob"}, f.guilds.find("add_skill_on_item")[0].args)

	f.command(t, "p2", `{"op":"guild_invite","target":"carol"}`)
	invites := messagingtest.OfType(f.recorder.To("p5"), messaging.TypeGuild)
	require.Len(t, invites, 1)
	assert.Equal(t, messaging.Guild{Action: messaging.GuildInvite, Args: []any{int64(2), "Dragons", "bob"}}, invites[0])

	f.command(t, "p5", `{"op":"guild_reply","guild_id":2,"accept":true}`)
	f.waitGuild(t, "carol", 2)

	guilds, err := f.world.Guilds(context.Background())
	require.NoError(t, err)
	require.Len(t, guilds, 2)
	assert.Equal(t, "Dragons", guilds[0].Name)
	assert.Equal(t, []string{"bob", "carol"}, guilds[0].Members)

	f.command(t, "p5", `{"op":"guild_leave"}`)
	f.waitGuild(t, "carol", 0)
	assert.Equal(t, []any{int64(2), "carol"}, f.guilds.find("remove_guild_member")[0].args)
}

func TestGuildCreate_OneInFlightPerSession(t *testing.T) {
	f := newFixture(t)
	f.login(t, "p2", "bob")
	gate := make(chan struct{})
	f.catalog.gate = gate

	f.command(t, "p2", `{"op":"guild_create","name":"Dragons"}`)
	f.command(t, "p2", `{"op":"guild_create","name":"Wyverns"}`)
	close(gate)

	f.waitGuild(t, "bob", 2)
	assert.Never(t, func() bool { return f.catalog.count() > 2 }, 50*time.Millisecond, 5*time.Millisecond)
	assert.Len(t, f.guilds.find("add_skill_on_item"), 1)

	// the slot frees once the create completes
	pending := -1
	require.NoError(t, f.loop.Do(context.Background(), func() { pending = len(f.world.creating) }))
	assert.Zero(t, pending)
}

func TestGuildCreate_NameTaken(t *testing.T) {
	f := newFixture(t)
	f.login(t, "p2", "bob")

	f.command(t, "p2", `{"op":"guild_create","name":"knights"}`)

	require.Eventually(t, func() bool { return len(f.guildErrors("p2")) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, messaging.GuildError{Kind: messaging.GuildErrorNameTaken, Name: "knights"}, f.guildErrors("p2")[0])
}

func TestGuildInvite_OfflineTarget(t *testing.T) {
	f := newFixture(t)
	f.login(t, "p1", "alice")
	f.waitGuild(t, "alice", 1)

	f.command(t, "p1", `{"op":"guild_invite","target":"nobody"}`)

	assert.Equal(t, []messaging.Message{messaging.GuildError{Kind: messaging.GuildErrorOffline, Name: "nobody"}}, f.guildErrors("p1"))
	assert.Empty(t, f.guilds.find("add_guild_invite"))
}

func TestGuildReply_RejectedWhileInAnotherGuild(t *testing.T) {
	f := newFixture(t)
	f.login(t, "p1", "alice")
	f.waitGuild(t, "alice", 1)
	f.login(t, "p2", "bob")
	f.command(t, "p2", `{"op":"guild_create","name":"Dragons"}`)
	f.waitGuild(t, "bob", 2)

	f.command(t, "p2", `{"op":"guild_invite","target":"alice"}`)
	f.command(t, "p1", `{"op":"guild_reply","guild_id":2,"accept":true}`)
	f.command(t, "p1", `{"op":"guild_reply","guild_id":2,"accept":false}`)

	summary, err := f.world.Player(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.GuildID)
	// only bob's founding membership was written
	assert.Len(t, f.guilds.find("add_skill_on_item"), 1)
}

func TestGrantExperienceAndKills(t *testing.T) {
	f := newFixture(t)
	f.login(t, "p2", "bob")

	awarded, err := f.world.GrantExperience(context.Background(), "bob", 40)
	require.NoError(t, err)
	assert.Equal(t, 40, awarded)

	awarded, err = f.world.ReportKill(context.Background(), "bob", domain.MobInfo{ID: 1, Kind: mobRat, Level: 1}, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, awarded)

	summary, err := f.world.Player(context.Background(), "bob")
	require.NoError(t, err)
	// the completed kill achievement adds its reward
	assert.Equal(t, int64(100), summary.Experience)

	_, err = f.world.GrantExperience(context.Background(), "nobody", 10)
	assert.ErrorIs(t, err, ErrPlayerOffline)
}

func TestGrantExperience_CancelledContextStillReportsAward(t *testing.T) {
	f := newFixture(t)
	f.login(t, "p2", "bob")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	awarded, err := f.world.GrantExperience(ctx, "bob", 40)
	require.NoError(t, err)
	assert.Equal(t, 40, awarded)
	require.NoError(t, f.world.ReportPVPKill(ctx, "bob", "nobody"))

	summary, err := f.world.Player(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(40), summary.Experience)
	assert.Equal(t, 1, summary.Kills)
	assert.Len(t, f.store.find("save_experience"), 1)
}

func TestReportPVPKill(t *testing.T) {
	f := newFixture(t)
	f.login(t, "p2", "bob")

	require.NoError(t, f.world.ReportPVPKill(context.Background(), "bob", "nobody"))
	require.NoError(t, f.world.ReportPVPKill(context.Background(), "nobody", "bob"))

	summary, err := f.world.Player(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Kills)
	assert.Equal(t, 1, summary.Deaths)

	err = f.world.ReportPVPKill(context.Background(), "x", "y")
	assert.ErrorIs(t, err, ErrPlayerOffline)
}

func TestQueriesFailOnStoppedLoop(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.loop.Stop(context.Background()))

	_, err := f.world.Status(context.Background())
	assert.Error(t, err)

	f.world.Connect(context.Background(), "p2", "bob")
	assert.True(t, f.conns.isClosed("p2"))
}
