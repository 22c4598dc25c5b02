package session

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/osse101/realmkeeper/internal/container"
	"github.com/osse101/realmkeeper/internal/cooldown"
	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/equipment"
	"github.com/osse101/realmkeeper/internal/event"
	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/messaging"
	"github.com/osse101/realmkeeper/internal/progression"
	"github.com/osse101/realmkeeper/internal/repository"
)

// Dispatcher runs continuations on the event loop
type Dispatcher interface {
	Do(ctx context.Context, fn func()) error
	AfterFunc(d time.Duration, fn func()) (cancel func() bool)
}

// Store receives durable player writes. Calls must not block.
type Store interface {
	SaveExperience(name string, experience int64)
	SaveEquipment(name string, slot int, record domain.EquipRecord)
	SaveWeaponEnchant(name string, enchantedPoint int)
	SaveWeaponSkill(name string, skillKind, skillLevel int)
	FoundAchievement(name string, id int)
	ProgressAchievement(name string, id, progress int)
	SaveSkill(name string, skillIndex, level int)
	SavePoison(name string, poisoned bool)
	SaveContainerSlot(name string, container domain.ContainerType, index int, item domain.ItemStack)
	RecordPVPKill(name string)
	RecordPVPDeath(name string)
}

// ItemLookup resolves item kinds
type ItemLookup interface {
	Lookup(kind int) (domain.ItemDefinition, bool)
}

// MobDirectory resolves hater ids to live mobs
type MobDirectory interface {
	ForgetPlayer(mobID int64, playerID string)
}

// QuestTracker is activated once per login
type QuestTracker interface {
	Activate(playerID string)
}

// PetSpawner places a player's pets in the world
type PetSpawner interface {
	SpawnPet(ownerID string, kind int, pos domain.Position)
}

// Lobby is the PVP minigame waiting room
type Lobby interface {
	AddPlayer(playerID string)
	RemovePlayer(playerID string)
}

// Cooldowns gates repeated actions per player
type Cooldowns interface {
	Enforce(playerID, action string, fn func() error) error
	Trigger(playerID, action string)
	Active(playerID, action string) bool
	Forget(playerID string)
}

// World holds server-wide settings echoed in the welcome payload
type World struct {
	DoubleExp     bool
	ExpMultiplier float64
}

// Deps are the collaborators of a session. Mobs, Quests, Pets, Lobby,
// Cooldowns and Bus are optional.
type Deps struct {
	Loop         Dispatcher
	Gateway      repository.PlayerReader
	Store        Store
	Messenger    messaging.Messenger
	Items        ItemLookup
	Achievements *progression.Catalog
	Mobs         MobDirectory
	Quests       QuestTracker
	Pets         PetSpawner
	Lobby        Lobby
	Cooldowns    Cooldowns
	Bus          event.Bus
	World        World
	Equipment    equipment.Config
	LevelFn      progression.LevelFunc
	// Rand returns values in [0, 1). Defaults to math/rand/v2.
	Rand func() float64
}

// Session is the server-side state of one connected player. Apart from
// Bootstrap, Phase, IsReady and IsClosed every method must be called from the
// event loop.
type Session struct {
	id   string
	name string
	caps domain.Capability
	deps Deps

	phase  atomic.Int32
	closed atomic.Bool

	kind       int
	rights     int
	membership bool
	firstLogin bool
	poisoned   bool
	position   domain.Position

	tracker   *progression.Tracker
	ledger    *progression.Ledger
	skills    *progression.SkillSet
	equipment *equipment.Manager
	inventory *container.Container
	bank      *container.Container
	pets      []int

	guildID   int64
	pvp       bool
	gameFlag  bool
	team      domain.Team
	haters    map[int64]struct{}
	pvpKills  int
	pvpDeaths int

	cancelQuest func() bool
}

// New creates a session in the Connecting phase
func New(id, name string, caps domain.Capability, deps Deps) *Session {
	if deps.Rand == nil {
		deps.Rand = rand.Float64
	}
	if deps.Equipment.Prerequisites == nil {
		deps.Equipment = equipment.DefaultConfig()
	}
	achievements := 0
	if deps.Achievements != nil {
		achievements = deps.Achievements.Len()
	}
	return &Session{
		id:        id,
		name:      name,
		caps:      caps,
		deps:      deps,
		tracker:   progression.NewTracker(deps.LevelFn, domain.ClassUnset),
		ledger:    progression.NewLedger(achievements),
		skills:    progression.NewSkillSet(),
		equipment: equipment.NewManager(deps.Equipment),
		inventory: container.New(domain.ContainerInventory, 0, nil),
		bank:      container.New(domain.ContainerBank, 0, nil),
		team:      domain.TeamNone,
		haters:    make(map[int64]struct{}),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Name() string {
	return s.name
}

// SetGuildID records the guild the player belongs to, 0 for none
func (s *Session) SetGuildID(id int64) {
	s.guildID = id
}

func (s *Session) GuildID() int64 {
	return s.guildID
}

func (s *Session) Capabilities() domain.Capability {
	return s.caps
}

// Phase returns the current bootstrap phase. Safe from any goroutine.
func (s *Session) Phase() Phase {
	return Phase(s.phase.Load())
}

// IsReady reports whether bootstrap completed. Safe from any goroutine.
func (s *Session) IsReady() bool {
	return s.Phase() == PhaseReady && !s.closed.Load()
}

// IsClosed reports whether Destroy was called. Safe from any goroutine.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

func (s *Session) Level() int {
	return s.tracker.Level()
}

func (s *Session) Experience() int64 {
	return s.tracker.Experience()
}

func (s *Session) Class() domain.PlayerClass {
	return s.tracker.Class()
}

func (s *Session) HitPoints() int {
	return s.tracker.HitPoints()
}

func (s *Session) MaxHitPoints() int {
	return s.tracker.MaxHitPoints()
}

func (s *Session) Mana() int {
	return s.tracker.Mana()
}

func (s *Session) MaxMana() int {
	return s.tracker.MaxMana()
}

func (s *Session) Position() domain.Position {
	return s.position
}

// Equipped returns the item in slot
func (s *Session) Equipped(slot equipment.SlotID) equipment.Item {
	return s.equipment.Get(slot)
}

// Inventory exposes the inventory container
func (s *Session) Inventory() *container.Container {
	return s.inventory
}

// Bank exposes the bank container
func (s *Session) Bank() *container.Container {
	return s.bank
}

// Achievement returns the ledger entry for id
func (s *Session) Achievement(id int) (progression.Entry, bool) {
	return s.ledger.Entry(id)
}

// Skills returns the learned skills in index order
func (s *Session) Skills() []progression.Skill {
	return s.skills.All()
}

func (s *Session) Poisoned() bool {
	return s.poisoned
}

// PVPRecord returns the kills and deaths counted this session
func (s *Session) PVPRecord() (kills, deaths int) {
	return s.pvpKills, s.pvpDeaths
}

// Destroy detaches the session from the world. It is idempotent.
func (s *Session) Destroy() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}

	if s.deps.Mobs != nil {
		for id := range s.haters {
			s.deps.Mobs.ForgetPlayer(id, s.id)
		}
	}
	clear(s.haters)

	if s.cancelQuest != nil {
		s.cancelQuest()
		s.cancelQuest = nil
	}
	if s.gameFlag && s.deps.Lobby != nil {
		s.deps.Lobby.RemovePlayer(s.id)
	}
	if s.deps.Cooldowns != nil {
		s.deps.Cooldowns.Forget(s.id)
	}

	if s.Phase() == PhaseReady {
		s.publish(event.NewSessionClosedEvent(s.id, s.name))
	}
	logger.Info(LogMsgSessionDestroyed, logger.AttrKeySessionID, s.id, logger.AttrKeyPlayer, s.name)
}

func (s *Session) send(msg messaging.Message) {
	s.deps.Messenger.ToPlayer(s.id, msg)
}

func (s *Session) broadcast(msg messaging.Message) {
	s.deps.Messenger.Broadcast(s.id, msg)
}

func (s *Session) notify(text string) {
	s.send(messaging.GUINotify{Text: text})
}

func (s *Session) chat(text string) {
	s.send(messaging.Chat{PlayerID: s.id, Text: text})
}

func (s *Session) sendPoints() {
	s.send(messaging.Points{
		MaxHitPoints: s.tracker.MaxHitPoints(),
		MaxMana:      s.tracker.MaxMana(),
		HitPoints:    s.tracker.HitPoints(),
		Mana:         s.tracker.Mana(),
	})
}

func (s *Session) publish(evt event.Event) {
	if s.deps.Bus == nil {
		return
	}
	if err := s.deps.Bus.Publish(context.Background(), evt); err != nil {
		logger.Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func (s *Session) cooldownActive(action string) bool {
	return s.deps.Cooldowns != nil && s.deps.Cooldowns.Active(s.id, action)
}

// BuffActive reports whether the royal azalea buff is running
func (s *Session) BuffActive() bool {
	return s.cooldownActive(cooldown.BuffRoyalAzalea)
}
