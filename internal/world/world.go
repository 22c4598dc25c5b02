package world

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/equipment"
	"github.com/osse101/realmkeeper/internal/event"
	"github.com/osse101/realmkeeper/internal/guild"
	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/messaging"
	"github.com/osse101/realmkeeper/internal/naming"
	"github.com/osse101/realmkeeper/internal/progression"
	"github.com/osse101/realmkeeper/internal/repository"
	"github.com/osse101/realmkeeper/internal/session"
)

var (
	ErrPlayerOffline = errors.New(ErrMsgPlayerOffline)
	ErrNotInGuild    = errors.New(ErrMsgNotInGuild)
	ErrCreatePending = errors.New(ErrMsgCreatePending)
)

// Loop is the single goroutine that owns sessions and guilds
type Loop interface {
	Post(fn func()) error
	Do(ctx context.Context, fn func()) error
	AfterFunc(d time.Duration, fn func()) (cancel func() bool)
}

// PlayerStore receives durable player writes. Calls must not block.
type PlayerStore interface {
	session.Store
	SavePosition(name string, pos domain.Position)
}

// Memberships resolves a player's guild in the offline ledger
type Memberships interface {
	GuildOf(ctx context.Context, playerName string) (int64, error)
}

// Connections terminates client connections
type Connections interface {
	Close(playerID string)
}

// Config holds world settings
type Config struct {
	Rates     session.World
	Equipment equipment.Config
	LevelFn   progression.LevelFunc
	// AdminNames log in with admin and level bypass capabilities
	AdminNames []string
}

// Deps are the collaborators of the world
type Deps struct {
	Loop         Loop
	Players      repository.PlayerReader
	Store        PlayerStore
	Guilds       *guild.Registry
	GuildStore   guild.Store
	Memberships  Memberships
	Messenger    messaging.Messenger
	Connections  Connections
	Items        session.ItemLookup
	Achievements *progression.Catalog
	Cooldowns    session.Cooldowns
	Bus          event.Bus
}

// World ties connections to sessions. It implements transport.Handler.
type World struct {
	deps   Deps
	config Config
	admins map[string]struct{}
	lobby  *Lobby

	// owned by the loop
	sessions map[string]*session.Session
	byName   map[string]*session.Session
	// session id -> guild create in flight
	creating map[string]struct{}
}

func New(deps Deps, config Config) *World {
	admins := make(map[string]struct{}, len(config.AdminNames))
	for _, name := range config.AdminNames {
		admins[nameKey(name)] = struct{}{}
	}
	return &World{
		deps:     deps,
		config:   config,
		admins:   admins,
		lobby:    NewLobby(),
		sessions: make(map[string]*session.Session),
		byName:   make(map[string]*session.Session),
		creating: make(map[string]struct{}),
	}
}

func nameKey(name string) string {
	return strings.ToLower(naming.Normalize(name))
}

func (w *World) capabilities(name string) domain.Capability {
	if _, ok := w.admins[nameKey(name)]; ok {
		return domain.CapabilityAdmin | domain.CapabilityBypassLevel
	}
	return 0
}

func (w *World) sessionDeps() session.Deps {
	return session.Deps{
		Loop:         w.deps.Loop,
		Gateway:      w.deps.Players,
		Store:        w.deps.Store,
		Messenger:    w.deps.Messenger,
		Items:        w.deps.Items,
		Achievements: w.deps.Achievements,
		Mobs:         detachedMobs{},
		Quests:       detachedQuests{},
		Pets:         detachedPets{},
		Lobby:        w.lobby,
		Cooldowns:    w.deps.Cooldowns,
		Bus:          w.deps.Bus,
		World:        w.config.Rates,
		Equipment:    w.config.Equipment,
		LevelFn:      w.config.LevelFn,
	}
}

// Connect creates a session for a new connection and starts its bootstrap
func (w *World) Connect(ctx context.Context, playerID, name string) {
	s := session.New(playerID, name, w.capabilities(name), w.sessionDeps())
	ctx = context.WithoutCancel(ctx)

	err := w.deps.Loop.Post(func() {
		if _, taken := w.byName[nameKey(name)]; taken {
			logger.FromContext(ctx).Warn(LogMsgDuplicateLogin, "player", name)
			s.Destroy()
			w.deps.Connections.Close(playerID)
			return
		}
		w.sessions[playerID] = s
		w.byName[nameKey(name)] = s
		go w.bootstrap(ctx, s)
	})
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgLoopUnavailable, "player", name, "error", err)
		w.deps.Connections.Close(playerID)
	}
}

func (w *World) bootstrap(ctx context.Context, s *session.Session) {
	log := logger.FromContext(ctx)

	if err := s.Bootstrap(ctx); err != nil {
		if session.IsBootstrapFailure(err) {
			log.Error(LogMsgBootstrapFailed, "player", s.Name(), "error", err)
			w.deps.Connections.Close(s.ID())
		}
		return
	}

	if w.deps.Memberships == nil {
		return
	}
	guildID, err := w.deps.Memberships.GuildOf(ctx, s.Name())
	if err != nil {
		log.Warn(LogMsgGuildLookupFailed, "player", s.Name(), "error", err)
		return
	}
	if guildID == 0 {
		return
	}
	_ = w.deps.Loop.Do(ctx, func() {
		if !s.IsReady() || s.GuildID() != 0 {
			return
		}
		if err := w.deps.Guilds.Rejoin(guildID, s); err != nil {
			log.Warn(LogMsgRejoinFailed, "player", s.Name(), "guild_id", guildID, "error", err)
		}
	})
}

// Disconnect tears down the session of a closed connection
func (w *World) Disconnect(playerID string) {
	_ = w.deps.Loop.Post(func() {
		s, ok := w.sessions[playerID]
		if !ok {
			return
		}
		delete(w.sessions, playerID)
		delete(w.creating, playerID)
		if w.byName[nameKey(s.Name())] == s {
			delete(w.byName, nameKey(s.Name()))
		}

		if guildID := s.GuildID(); guildID != 0 {
			w.deps.Guilds.Disconnect(guildID, s)
		}
		if s.IsReady() {
			w.deps.Store.SavePosition(s.Name(), s.Position())
		}
		s.Destroy()
		logger.Info(LogMsgSessionClosed, "player", s.Name())
	})
}

// Command decodes a client payload and runs it on the loop
func (w *World) Command(playerID string, payload []byte) {
	cmd, err := DecodeCommand(payload)
	if err != nil {
		logger.Debug(LogMsgBadCommand, "player_id", playerID, "error", err)
		return
	}

	_ = w.deps.Loop.Post(func() {
		s, ok := w.sessions[playerID]
		if !ok || !s.IsReady() {
			return
		}
		if err := w.execute(s, cmd); err != nil {
			logger.Debug(LogMsgCommandRejected, "player", s.Name(), "op", cmd.Op, "error", err)
		}
	})
}

func (w *World) execute(s *session.Session, cmd Command) error {
	var err error
	switch cmd.Op {
	case OpEquip:
		err = s.HandleInventoryEquip(cmd.Kind, cmd.Index)
	case OpUnequip:
		err = s.Unequip(equipment.SlotID(cmd.Slot))
	case OpEat:
		err = s.Eat(cmd.Kind, cmd.Index)
	case OpEnchant:
		_, err = s.EnchantWeapon(cmd.Kind, cmd.Index)
	case OpBloodsuck:
		_, err = s.EnchantBloodsucking(cmd.Kind, cmd.Index)
	case OpPVP:
		s.FlagPVP(cmd.Enabled)
	case OpGame:
		s.SetGameFlag(cmd.Enabled)
	case OpFoundAchievement:
		err = s.FoundAchievement(cmd.Achievement)
	case OpFinishAchievements:
		if err = s.FinishAllAchievements(); err == nil {
			err = s.ReviewSkills()
		}
	case OpGuildCreate:
		err = w.createGuild(s, cmd.Name)
	case OpGuildInvite:
		err = w.invite(s, cmd.Target)
	case OpGuildReply:
		err = w.reply(s, cmd.GuildID, cmd.Accept)
	case OpGuildLeave:
		err = w.leave(s)
	}
	return err
}
