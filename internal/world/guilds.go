package world

import (
	"context"
	"errors"

	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/guild"
	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/messaging"
	"github.com/osse101/realmkeeper/internal/naming"
	"github.com/osse101/realmkeeper/internal/session"
)

// createGuild stores the guild off the loop, then makes its founder the
// first member. A session has at most one create in flight.
func (w *World) createGuild(s *session.Session, name string) error {
	if s.GuildID() != 0 {
		return guild.ErrAlreadyMember
	}
	if _, pending := w.creating[s.ID()]; pending {
		return ErrCreatePending
	}
	w.creating[s.ID()] = struct{}{}

	go func() {
		g, err := w.deps.Guilds.Create(context.Background(), name)
		_ = w.deps.Loop.Post(func() {
			delete(w.creating, s.ID())
			if err != nil {
				w.createFailed(s, name, err)
				return
			}
			if !s.IsReady() || s.GuildID() != 0 {
				return
			}
			if err := w.deps.Guilds.Rejoin(g.ID(), s); err != nil {
				logger.Warn(LogMsgRejoinFailed, "player", s.Name(), "guild_id", g.ID(), "error", err)
				return
			}
			w.deps.GuildStore.AddGuildMember(g.ID(), s.Name())
			w.deps.GuildStore.AddSkillOnItem(g.ID(), s.Name())
		})
	}()
	return nil
}

func (w *World) createFailed(s *session.Session, name string, err error) {
	logger.Warn(LogMsgGuildCreateFailed, "player", s.Name(), "guild", name, "error", err)
	kind := ""
	switch {
	case errors.Is(err, domain.ErrGuildNameTaken):
		kind = messaging.GuildErrorNameTaken
	case errors.Is(err, naming.ErrInvalidName):
		kind = messaging.GuildErrorBadName
	}
	if kind != "" {
		w.deps.Messenger.ToPlayer(s.ID(), messaging.GuildError{Kind: kind, Name: name})
	}
}

func (w *World) invite(s *session.Session, target string) error {
	if s.GuildID() == 0 {
		return ErrNotInGuild
	}
	invitee, ok := w.byName[nameKey(target)]
	if !ok || !invitee.IsReady() {
		w.deps.Messenger.ToPlayer(s.ID(), messaging.GuildError{Kind: messaging.GuildErrorOffline, Name: target})
		return ErrPlayerOffline
	}
	return w.deps.Guilds.Invite(s.GuildID(), invitee, s)
}

// reply answers an invite. A member of another guild must leave first.
func (w *World) reply(s *session.Session, guildID int64, accept bool) error {
	if current := s.GuildID(); current != 0 && current != guildID {
		return guild.ErrAlreadyMember
	}
	_, err := w.deps.Guilds.Reply(guildID, s, accept)
	return err
}

func (w *World) leave(s *session.Session) error {
	if s.GuildID() == 0 {
		return ErrNotInGuild
	}
	return w.deps.Guilds.Leave(s.GuildID(), s)
}
