package repository

import (
	"context"

	"github.com/osse101/realmkeeper/internal/domain"
)

// Guild defines the interface for guild persistence. Membership stored here
// is the offline ledger and is independent of who is online.
type Guild interface {
	CreateGuild(ctx context.Context, name string) (*domain.GuildRecord, error)
	GetGuildByName(ctx context.Context, name string) (*domain.GuildRecord, error)
	LoadGuilds(ctx context.Context) ([]domain.GuildRecord, error)
	// GuildOf returns the guild in playerName's ledger entry, or 0
	GuildOf(ctx context.Context, playerName string) (int64, error)

	AddGuildInvite(ctx context.Context, guildID int64, inviteeName string) error
	RemoveGuildInvite(ctx context.Context, guildID int64, inviteeName string) error
	AddGuildMember(ctx context.Context, guildID int64, playerName string) error
	RemoveGuildMember(ctx context.Context, guildID int64, playerName string) error
	AddSkillOnItem(ctx context.Context, guildID int64, playerName string) error
}
