package world

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/realmkeeper/internal/cooldown"
	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/guild"
	"github.com/osse101/realmkeeper/internal/item"
	"github.com/osse101/realmkeeper/internal/messaging"
	"github.com/osse101/realmkeeper/internal/messaging/messagingtest"
	"github.com/osse101/realmkeeper/internal/progression"
	"github.com/osse101/realmkeeper/internal/worker"
)

const (
	kindSword = 10
	mobRat    = 5
)

type fakePlayers struct {
	profiles map[string]domain.PlayerProfile
}

func (p *fakePlayers) LoadProfile(_ context.Context, name string) (*domain.PlayerProfile, error) {
	profile, ok := p.profiles[name]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (p *fakePlayers) LoadBank(context.Context, string) (*domain.ContainerContents, error) {
	return &domain.ContainerContents{Size: 4}, nil
}

func (p *fakePlayers) LoadInventory(context.Context, string) (*domain.ContainerContents, error) {
	return &domain.ContainerContents{Size: 6, Slots: []domain.ItemStack{{Kind: kindSword}}}, nil
}

func (p *fakePlayers) LoadAchievements(context.Context, string) ([]domain.AchievementRecord, error) {
	return []domain.AchievementRecord{{ID: 0, Found: true}}, nil
}

func (p *fakePlayers) LoadPets(context.Context, string) ([]int, error) {
	return nil, nil
}

type call struct {
	op   string
	args []any
}

// recorder is shared by the player and guild store fakes
type recorder struct {
	mu    sync.Mutex
	calls []call
}

func (r *recorder) record(op string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{op: op, args: args})
}

func (r *recorder) find(op string) []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []call
	for _, c := range r.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

type fakeStore struct{ recorder }

func (s *fakeStore) SaveExperience(n string, e int64) { s.record("save_experience", n, e) }
func (s *fakeStore) SaveEquipment(n string, slot int, r domain.EquipRecord) {
	s.record("save_equipment", n, slot, r)
}
func (s *fakeStore) SaveWeaponEnchant(n string, p int)       { s.record("save_weapon_enchant", n, p) }
func (s *fakeStore) SaveWeaponSkill(n string, k, l int)      { s.record("save_weapon_skill", n, k, l) }
func (s *fakeStore) FoundAchievement(n string, id int)       { s.record("found_achievement", n, id) }
func (s *fakeStore) ProgressAchievement(n string, id, p int) { s.record("progress_achievement", n, id, p) }
func (s *fakeStore) SaveSkill(n string, idx, l int)          { s.record("save_skill", n, idx, l) }
func (s *fakeStore) SavePoison(n string, p bool)             { s.record("save_poison", n, p) }
func (s *fakeStore) SaveContainerSlot(n string, c domain.ContainerType, i int, it domain.ItemStack) {
	s.record("save_container_slot", n, c, i, it)
}
func (s *fakeStore) RecordPVPKill(n string)                     { s.record("pvp_kill", n) }
func (s *fakeStore) RecordPVPDeath(n string)                    { s.record("pvp_death", n) }
func (s *fakeStore) SavePosition(n string, pos domain.Position) { s.record("save_position", n, pos) }

type fakeGuildStore struct{ recorder }

func (s *fakeGuildStore) AddGuildInvite(id int64, n string)    { s.record("add_guild_invite", id, n) }
func (s *fakeGuildStore) RemoveGuildInvite(id int64, n string) { s.record("remove_guild_invite", id, n) }
func (s *fakeGuildStore) AddGuildMember(id int64, n string)    { s.record("add_guild_member", id, n) }
func (s *fakeGuildStore) RemoveGuildMember(id int64, n string) { s.record("remove_guild_member", id, n) }
func (s *fakeGuildStore) AddSkillOnItem(id int64, n string)    { s.record("add_skill_on_item", id, n) }

type fakeCatalog struct {
	mu      sync.Mutex
	records []domain.GuildRecord
	// gate holds CreateGuild until closed
	gate chan struct{}
}

func (c *fakeCatalog) CreateGuild(_ context.Context, name string) (*domain.GuildRecord, error) {
	if c.gate != nil {
		<-c.gate
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	rec := domain.GuildRecord{ID: int64(len(c.records) + 1), Name: name, CreatedAt: time.Now()}
	c.records = append(c.records, rec)
	return &rec, nil
}

func (c *fakeCatalog) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

func (c *fakeCatalog) LoadGuilds(context.Context) ([]domain.GuildRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.GuildRecord(nil), c.records...), nil
}

type fakeMemberships map[string]int64

func (m fakeMemberships) GuildOf(_ context.Context, name string) (int64, error) {
	return m[name], nil
}

type fakeConnections struct {
	mu     sync.Mutex
	closed []string
}

func (c *fakeConnections) Close(playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = append(c.closed, playerID)
}

func (c *fakeConnections) isClosed(playerID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range c.closed {
		if id == playerID {
			return true
		}
	}
	return false
}

type fixture struct {
	world    *World
	loop     *worker.Loop
	store    *fakeStore
	guilds   *fakeGuildStore
	catalog  *fakeCatalog
	conns    *fakeConnections
	recorder *messagingtest.Recorder
}

func profile(name string) domain.PlayerProfile {
	return domain.PlayerProfile{
		Name:      name,
		Class:     domain.ClassFighter,
		Position:  domain.Position{X: 10, Y: 20},
		HitPoints: 100,
		Mana:      10,
	}
}

// newFixture builds a world over a running loop. Guild 1 "Knights" exists
// and alice is in its offline ledger.
func newFixture(t *testing.T, admins ...string) *fixture {
	t.Helper()

	loop := worker.NewLoop()
	loop.Start()
	t.Cleanup(func() { _ = loop.Stop(context.Background()) })

	achievements, err := progression.NewCatalog([]progression.Definition{
		{ID: 0, Name: "Rat Hunter", Type: progression.TypeKill, MobIDs: []int{mobRat}, MobCount: 1, XP: 50},
		{ID: 1, Name: "Wanderer", Type: progression.TypeTalk},
	})
	require.NoError(t, err)

	f := &fixture{
		loop:     loop,
		store:    &fakeStore{},
		guilds:   &fakeGuildStore{},
		catalog:  &fakeCatalog{records: []domain.GuildRecord{{ID: 1, Name: "Knights"}}},
		conns:    &fakeConnections{},
		recorder: &messagingtest.Recorder{},
	}

	registry := guild.NewRegistry(
		f.catalog,
		guild.Deps{Store: f.guilds, Messenger: f.recorder},
		guild.Config{InviteBurst: 10},
	)
	require.NoError(t, registry.Load(context.Background()))

	f.world = New(Deps{
		Loop: loop,
		Players: &fakePlayers{profiles: map[string]domain.PlayerProfile{
			"alice": profile("alice"),
			"bob":   profile("bob"),
			"carol": profile("carol"),
			"gm":    profile("gm"),
		}},
		Store:        f.store,
		Guilds:       registry,
		GuildStore:   f.guilds,
		Memberships:  fakeMemberships{"alice": 1},
		Messenger:    f.recorder,
		Connections:  f.conns,
		Items:        item.NewCatalog([]domain.ItemDefinition{{Kind: kindSword, Name: "sword", Category: domain.CategoryWeapon, Level: 1}}),
		Achievements: achievements,
		Cooldowns:    cooldown.NewService(cooldown.Config{}),
	}, Config{AdminNames: admins})
	return f
}

// login connects name and waits until its session is ready
func (f *fixture) login(t *testing.T, id, name string) {
	t.Helper()
	f.world.Connect(context.Background(), id, name)
	require.Eventually(t, func() bool {
		_, err := f.world.Player(context.Background(), name)
		return err == nil
	}, time.Second, 5*time.Millisecond)
}

// waitGuild waits until name is online in guildID
func (f *fixture) waitGuild(t *testing.T, name string, guildID int64) {
	t.Helper()
	require.Eventually(t, func() bool {
		s, err := f.world.Player(context.Background(), name)
		return err == nil && s.GuildID == guildID
	}, time.Second, 5*time.Millisecond)
}

// flush waits for every task already queued on the loop
func (f *fixture) flush(t *testing.T) {
	t.Helper()
	require.NoError(t, f.loop.Do(context.Background(), func() {}))
}

func (f *fixture) command(t *testing.T, id, payload string) {
	t.Helper()
	f.world.Command(id, []byte(payload))
	f.flush(t)
}

func (f *fixture) guildErrors(id string) []messaging.Message {
	return messagingtest.OfType(f.recorder.To(id), messaging.TypeGuildError)
}
