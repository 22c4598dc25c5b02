package persist

import (
	"context"

	"github.com/osse101/realmkeeper/internal/repository"
)

// GuildWriter queues guild ledger writes keyed by the affected player's name
type GuildWriter struct {
	writer
	repo repository.Guild
}

// NewGuildWriter creates a writer
func NewGuildWriter(repo repository.Guild, pool Submitter) *GuildWriter {
	return &GuildWriter{writer: writer{pool: pool}, repo: repo}
}

func (w *GuildWriter) AddGuildInvite(guildID int64, inviteeName string) {
	w.submit(OpAddGuildInvite, inviteeName, func(ctx context.Context) error {
		return w.repo.AddGuildInvite(ctx, guildID, inviteeName)
	})
}

func (w *GuildWriter) RemoveGuildInvite(guildID int64, inviteeName string) {
	w.submit(OpRemoveGuildInvite, inviteeName, func(ctx context.Context) error {
		return w.repo.RemoveGuildInvite(ctx, guildID, inviteeName)
	})
}

func (w *GuildWriter) AddGuildMember(guildID int64, playerName string) {
	w.submit(OpAddGuildMember, playerName, func(ctx context.Context) error {
		return w.repo.AddGuildMember(ctx, guildID, playerName)
	})
}

func (w *GuildWriter) RemoveGuildMember(guildID int64, playerName string) {
	w.submit(OpRemoveGuildMember, playerName, func(ctx context.Context) error {
		return w.repo.RemoveGuildMember(ctx, guildID, playerName)
	})
}

func (w *GuildWriter) AddSkillOnItem(guildID int64, playerName string) {
	w.submit(OpAddSkillOnItem, playerName, func(ctx context.Context) error {
		return w.repo.AddSkillOnItem(ctx, guildID, playerName)
	})
}
