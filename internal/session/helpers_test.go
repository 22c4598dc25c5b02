package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/realmkeeper/internal/cooldown"
	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/equipment"
	"github.com/osse101/realmkeeper/internal/event"
	"github.com/osse101/realmkeeper/internal/item"
	"github.com/osse101/realmkeeper/internal/messaging/messagingtest"
	"github.com/osse101/realmkeeper/internal/progression"
)

// inlineLoop runs continuations immediately and records timers
type inlineLoop struct {
	delays    []time.Duration
	timers    []func()
	cancelled int
}

func (l *inlineLoop) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}

func (l *inlineLoop) AfterFunc(d time.Duration, fn func()) func() bool {
	l.delays = append(l.delays, d)
	l.timers = append(l.timers, fn)
	return func() bool {
		l.cancelled++
		return true
	}
}

type fakeGateway struct {
	profile      *domain.PlayerProfile
	bank         *domain.ContainerContents
	inventory    *domain.ContainerContents
	achievements []domain.AchievementRecord
	pets         []int

	failPhase Phase
	hook      map[Phase]func()
	reads     []Phase
}

func (g *fakeGateway) read(p Phase) error {
	g.reads = append(g.reads, p)
	if fn := g.hook[p]; fn != nil {
		fn()
	}
	if g.failPhase == p {
		return fmt.Errorf("read %s: %w", p, domain.ErrDatabaseError)
	}
	return nil
}

func (g *fakeGateway) LoadProfile(_ context.Context, _ string) (*domain.PlayerProfile, error) {
	if err := g.read(PhaseLoadingEquipment); err != nil {
		return nil, err
	}
	return g.profile, nil
}

func (g *fakeGateway) LoadBank(_ context.Context, _ string) (*domain.ContainerContents, error) {
	return g.bank, g.read(PhaseLoadingBank)
}

func (g *fakeGateway) LoadInventory(_ context.Context, _ string) (*domain.ContainerContents, error) {
	return g.inventory, g.read(PhaseLoadingInventory)
}

func (g *fakeGateway) LoadAchievements(_ context.Context, _ string) ([]domain.AchievementRecord, error) {
	return g.achievements, g.read(PhaseLoadingAchievements)
}

func (g *fakeGateway) LoadPets(_ context.Context, _ string) ([]int, error) {
	return g.pets, g.read(PhaseLoadingPets)
}

type storeCall struct {
	op   string
	args []any
}

type fakeStore struct {
	calls []storeCall
}

func (s *fakeStore) record(op string, args ...any) {
	s.calls = append(s.calls, storeCall{op: op, args: args})
}

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
func (s *fakeStore) RecordPVPKill(n string)  { s.record("pvp_kill", n) }
func (s *fakeStore) RecordPVPDeath(n string) { s.record("pvp_death", n) }

func (s *fakeStore) ops() []string {
	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.op
	}
	return out
}

func (s *fakeStore) find(op string) []storeCall {
	var out []storeCall
	for _, c := range s.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func (s *fakeStore) reset() {
	s.calls = nil
}

type fakeMobs struct{ forgotten []int64 }

func (m *fakeMobs) ForgetPlayer(mobID int64, _ string) { m.forgotten = append(m.forgotten, mobID) }

type fakeQuests struct{ activated []string }

func (q *fakeQuests) Activate(id string) { q.activated = append(q.activated, id) }

type fakePets struct{ spawned []int }

func (p *fakePets) SpawnPet(_ string, kind int, _ domain.Position) { p.spawned = append(p.spawned, kind) }

type fakeLobby struct{ members map[string]bool }

func (l *fakeLobby) AddPlayer(id string)    { l.members[id] = true }
func (l *fakeLobby) RemovePlayer(id string) { delete(l.members, id) }

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// Item kinds used by the fixture
const (
	kindSword    = 10
	kindAxe      = 11
	kindOldBlade = 12
	kindPendant  = 20
	kindArmor    = 30
	mobRat       = 5
)

// linearLevel gives one level per hundred experience
func linearLevel(exp int64) int {
	return int(exp/100) + 1
}

type fixture struct {
	session  *Session
	loop     *inlineLoop
	gateway  *fakeGateway
	store    *fakeStore
	recorder *messagingtest.Recorder
	mobs     *fakeMobs
	quests   *fakeQuests
	pets     *fakePets
	lobby    *fakeLobby
	clock    *fakeClock
	bus      *event.MemoryBus
	events   []event.Event
	rand     float64
}

func newGateway() *fakeGateway {
	return &fakeGateway{
		profile: &domain.PlayerProfile{
			Name:       "alice",
			Experience: 900,
			Class:      domain.ClassFighter,
			Kind:       1,
			Rights:     0,
			Membership: true,
			Position:   domain.Position{X: 10, Y: 20},
			HitPoints:  100,
			Mana:       10,
			FirstLogin: true,
			Equipment: [4]domain.EquipRecord{
				{Kind: kindOldBlade, EnchantedPoint: 2},
				{Kind: kindArmor},
			},
		},
		bank: &domain.ContainerContents{Size: 2, Slots: []domain.ItemStack{{Kind: 50, Count: 3}}},
		inventory: &domain.ContainerContents{Size: 6, Slots: []domain.ItemStack{
			{Kind: kindSword},
			{Kind: kindAxe},
			{Kind: kindPendant},
			{Kind: domain.ItemKindBurger, Count: 2},
			{Kind: domain.ItemKindSnowPotion, Count: 1},
		}},
		achievements: []domain.AchievementRecord{
			{ID: 0, Found: true},
			{ID: 2, Found: true, Progress: progression.Complete},
		},
		pets: []int{7, 0},
		hook: map[Phase]func(){},
	}
}

func newFixture(t *testing.T, caps domain.Capability) *fixture {
	t.Helper()

	achievements, err := progression.NewCatalog([]progression.Definition{
		{ID: 0, Name: "Rat Hunter", Type: progression.TypeKill, MobIDs: []int{mobRat}, MobCount: 2, XP: 50, SkillName: equipment.CriticalStrikeSkill, SkillLevel: 1},
		{ID: 1, Name: "Amulet Seeker", Type: progression.TypeTalk},
		{ID: 2, Name: "Ring Bearer", Type: progression.TypeTalk},
	})
	require.NoError(t, err)

	items := item.NewCatalog([]domain.ItemDefinition{
		{Kind: kindSword, Name: "sword", Category: domain.CategoryWeapon, Level: 3},
		{Kind: kindAxe, Name: "axe", Category: domain.CategoryWeapon, Level: 10},
		{Kind: kindPendant, Name: "pendant", Category: domain.CategoryPendant, Level: 1},
		{Kind: kindArmor, Name: "armor", Category: domain.CategoryArmor, Level: 1},
	})

	f := &fixture{
		loop:     &inlineLoop{},
		gateway:  newGateway(),
		store:    &fakeStore{},
		recorder: &messagingtest.Recorder{},
		mobs:     &fakeMobs{},
		quests:   &fakeQuests{},
		pets:     &fakePets{},
		lobby:    &fakeLobby{members: map[string]bool{}},
		clock:    &fakeClock{t: time.Now()},
		bus:      event.NewMemoryBus(),
		rand:     0.5,
	}
	for _, typ := range []event.Type{event.SessionReady, event.SessionClosed, event.SessionBootstrapFailed,
		event.PlayerExperienceGained, event.PlayerLevelUp, event.AchievementCompleted} {
		f.bus.Subscribe(typ, func(_ context.Context, evt event.Event) error {
			f.events = append(f.events, evt)
			return nil
		})
	}

	f.session = New("p1", "alice", caps, Deps{
		Loop:         f.loop,
		Gateway:      f.gateway,
		Store:        f.store,
		Messenger:    f.recorder,
		Items:        items,
		Achievements: achievements,
		Mobs:         f.mobs,
		Quests:       f.quests,
		Pets:         f.pets,
		Lobby:        f.lobby,
		Cooldowns:    cooldown.NewService(cooldown.Config{}).WithClock(f.clock.Now),
		Bus:          f.bus,
		World:        World{DoubleExp: true, ExpMultiplier: 1.5},
		Equipment: equipment.Config{Prerequisites: map[equipment.SlotID]int{
			equipment.SlotPendant: 1,
			equipment.SlotRing:    2,
		}},
		LevelFn: linearLevel,
		Rand:    func() float64 { return f.rand },
	})
	return f
}

// ready bootstraps the fixture and clears what bootstrap recorded
func (f *fixture) ready(t *testing.T) *Session {
	t.Helper()
	require.NoError(t, f.session.Bootstrap(context.Background()))
	require.True(t, f.session.IsReady())
	f.store.reset()
	f.recorder.Reset()
	f.events = nil
	return f.session
}

func (f *fixture) eventTypes() []event.Type {
	out := make([]event.Type, len(f.events))
	for i, e := range f.events {
		out[i] = e.Type
	}
	return out
}
