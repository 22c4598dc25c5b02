package guild

import (
	"context"
	"sort"
	"time"

	"github.com/osse101/realmkeeper/internal/event"
	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/messaging"
	"github.com/osse101/realmkeeper/internal/metrics"
)

// Member is the view of a player a guild needs
type Member interface {
	ID() string
	Name() string
	SetGuildID(id int64)
}

// Store receives durable guild writes. Calls must not block.
type Store interface {
	AddGuildInvite(guildID int64, inviteeName string)
	RemoveGuildInvite(guildID int64, inviteeName string)
	AddGuildMember(guildID int64, playerName string)
	RemoveGuildMember(guildID int64, playerName string)
	AddSkillOnItem(guildID int64, playerName string)
}

// Reply is the invitee's answer when joining through an invite
type Reply int

const (
	// ReplyNone joins directly without an invite
	ReplyNone Reply = iota
	ReplyAccept
	ReplyDecline
)

// Deps are the collaborators shared by every guild
type Deps struct {
	Store     Store
	Messenger messaging.Messenger
	Bus       event.Bus
	Clock     func() time.Time
	// InviteTimeout defaults to DefaultInviteTimeout
	InviteTimeout time.Duration
}

type invite struct {
	at   time.Time
	name string
}

// Guild tracks the online members of one guild and its pending invites.
// It is not safe for concurrent use: every call must come from the event loop.
type Guild struct {
	id   int64
	name string

	// player id -> player name, online members only
	members map[string]string
	invites map[string]invite

	deps Deps
}

// New creates an empty guild
func New(id int64, name string, deps Deps) *Guild {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.InviteTimeout <= 0 {
		deps.InviteTimeout = DefaultInviteTimeout
	}
	return &Guild{
		id:      id,
		name:    name,
		members: make(map[string]string),
		invites: make(map[string]invite),
		deps:    deps,
	}
}

func (g *Guild) ID() int64 {
	return g.id
}

func (g *Guild) Name() string {
	return g.name
}

// Invite offers membership to invitee. Inviting a current member is
// reported back to the invitor.
func (g *Guild) Invite(invitee, invitor Member) error {
	if _, ok := g.members[invitee.ID()]; ok {
		g.deps.Messenger.ToPlayer(invitor.ID(), messaging.GuildError{
			Kind: messaging.GuildErrorBadInvite,
			Name: invitee.Name(),
		})
		return ErrAlreadyMember
	}

	g.invites[invitee.ID()] = invite{at: g.deps.Clock(), name: invitee.Name()}
	g.deps.Store.AddGuildInvite(g.id, invitee.Name())
	g.deps.Messenger.ToPlayer(invitee.ID(), messaging.Guild{
		Action: messaging.GuildInvite,
		Args:   []any{g.id, g.name, invitor.Name()},
	})

	metrics.GuildInvites.WithLabelValues(metrics.InviteSent).Inc()
	logger.Debug(LogMsgInviteSent, "guild", g.name, "invitee", invitee.Name(), "invitor", invitor.Name())
	return nil
}

// CheckInvite expires every invite older than the timeout, telling the
// guild about each invitee who did not respond, then reports whether
// inviteeID still holds a live invite.
func (g *Guild) CheckInvite(inviteeID string) bool {
	now := g.deps.Clock()
	for id, inv := range g.invites {
		if now.Sub(inv.at) <= g.deps.InviteTimeout {
			continue
		}
		g.deleteInvite(id)
		g.broadcast(messaging.Guild{Action: messaging.GuildExpired, Args: []any{inv.name}}, id)
		g.publish(event.NewGuildInviteExpiredEvent(g.id, g.name, inv.name))
		logger.Info(LogMsgInviteExpired, "guild", g.name, "invitee", inv.name)
	}

	_, ok := g.invites[inviteeID]
	return ok
}

// AddMember puts player in the online member set and returns its id.
// With ReplyDecline the guild hears about the refusal, the offline ledger
// still records the player and ErrInviteDeclined is returned. With
// ReplyAccept a live invite is required. A direct join drops any pending
// invite for the player without touching storage.
func (g *Guild) AddMember(player Member, reply Reply) (string, error) {
	id, name := player.ID(), player.Name()

	if _, ok := g.members[id]; ok {
		logger.Error(LogMsgAddConflict, "guild", g.name, "player_id", id)
		g.deleteInvite(id)
		return "", ErrAlreadyMember
	}

	switch reply {
	case ReplyDecline:
		g.broadcast(messaging.Guild{Action: messaging.GuildDecline, Args: []any{name}}, id)
		g.deps.Store.AddGuildMember(g.id, name)
		g.deleteInvite(id)
		metrics.GuildInvites.WithLabelValues(metrics.InviteDeclined).Inc()
		logger.Info(LogMsgInviteDeclined, "guild", g.name, "player", name)
		return "", ErrInviteDeclined
	case ReplyAccept:
		if !g.CheckInvite(id) {
			logger.Warn(LogMsgInviteNotActive, "guild", g.name, "player", name)
			g.deps.Messenger.ToPlayer(id, messaging.GuildError{Kind: messaging.GuildErrorNoInvite, Name: g.name})
			return "", ErrNoInvite
		}
	}

	g.members[id] = name
	player.SetGuildID(g.id)
	if reply == ReplyNone {
		// a member never holds an invite; the stored row is left as is
		delete(g.invites, id)
	}
	g.broadcast(messaging.Guild{Action: messaging.GuildPopulation, Args: []any{g.name, g.Population()}}, "")

	if reply == ReplyAccept {
		g.broadcast(messaging.Guild{Action: messaging.GuildJoin, Args: []any{name, id, g.id, g.name}}, "")
		g.deps.Store.AddSkillOnItem(g.id, name)
		g.deleteInvite(id)
		metrics.GuildInvites.WithLabelValues(metrics.InviteAccepted).Inc()
	}

	g.publish(event.NewGuildMemberEvent(event.GuildMemberJoined, g.id, g.name, id, name, g.Population()))
	logger.Info(LogMsgMemberJoined, "guild", g.name, "player", name, "population", g.Population())
	return id, nil
}

// RemoveMember takes player out of the online member set
func (g *Guild) RemoveMember(player Member) error {
	id := player.ID()
	name, ok := g.members[id]
	if !ok {
		logger.Error(LogMsgRemoveConflict, "guild", g.name, "player_id", id)
		return ErrNotMember
	}

	delete(g.members, id)
	player.SetGuildID(0)
	g.broadcast(messaging.Guild{Action: messaging.GuildPopulation, Args: []any{g.name, g.Population()}}, "")

	g.publish(event.NewGuildMemberEvent(event.GuildMemberLeft, g.id, g.name, id, name, g.Population()))
	logger.Info(LogMsgMemberLeft, "guild", g.name, "player", name, "population", g.Population())
	return nil
}

// IsMember reports whether playerID is online in this guild
func (g *Guild) IsMember(playerID string) bool {
	_, ok := g.members[playerID]
	return ok
}

// Population is the number of online members
func (g *Guild) Population() int {
	return len(g.members)
}

// ForEachMember calls fn for every online member
func (g *Guild) ForEachMember(fn func(id, name string)) {
	for id, name := range g.members {
		fn(id, name)
	}
}

// MemberNames returns the online member names in sorted order
func (g *Guild) MemberNames() []string {
	names := make([]string, 0, len(g.members))
	for _, name := range g.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PendingInvites is the number of invites not yet swept
func (g *Guild) PendingInvites() int {
	return len(g.invites)
}

func (g *Guild) deleteInvite(id string) {
	inv, ok := g.invites[id]
	if !ok {
		return
	}
	g.deps.Store.RemoveGuildInvite(g.id, inv.name)
	delete(g.invites, id)
}

// broadcast sends msg to every online member except the given id
func (g *Guild) broadcast(msg messaging.Message, except string) {
	for id := range g.members {
		if id == except {
			continue
		}
		g.deps.Messenger.ToPlayer(id, msg)
	}
}

func (g *Guild) publish(evt event.Event) {
	if g.deps.Bus == nil {
		return
	}
	if err := g.deps.Bus.Publish(context.Background(), evt); err != nil {
		logger.Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
