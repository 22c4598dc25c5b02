package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/realmkeeper/internal/domain"
)

// GuildRepository implements repository.Guild
type GuildRepository struct {
	db    *pgxpool.Pool
	cache *guildCache
}

// NewGuildRepository creates a new guild repository with a name lookup cache
func NewGuildRepository(db *pgxpool.Pool) *GuildRepository {
	return &GuildRepository{
		db:    db,
		cache: newGuildCache(DefaultGuildCacheSize, DefaultGuildCacheTTL),
	}
}

func (r *GuildRepository) CreateGuild(ctx context.Context, name string) (*domain.GuildRecord, error) {
	rec := domain.GuildRecord{Name: name}
	err := r.db.QueryRow(ctx, `
		INSERT INTO guilds (name) VALUES ($1)
		RETURNING id, created_at
	`, name).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGuildNameTaken, name)
		}
		return nil, fmt.Errorf("%w: create guild: %w", domain.ErrDatabaseError, err)
	}

	r.cache.Set(rec)
	return &rec, nil
}

// GetGuildByName matches names case-insensitively
func (r *GuildRepository) GetGuildByName(ctx context.Context, name string) (*domain.GuildRecord, error) {
	if rec, ok := r.cache.Get(name); ok {
		return &rec, nil
	}

	var rec domain.GuildRecord
	err := r.db.QueryRow(ctx, `
		SELECT id, name, created_at FROM guilds WHERE lower(name) = lower($1)
	`, name).Scan(&rec.ID, &rec.Name, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGuildNotFound, name)
		}
		return nil, fmt.Errorf("%w: get guild: %w", domain.ErrDatabaseError, err)
	}

	r.cache.Set(rec)
	return &rec, nil
}

func (r *GuildRepository) LoadGuilds(ctx context.Context) ([]domain.GuildRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM guilds ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: load guilds: %w", domain.ErrDatabaseError, err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.GuildRecord, error) {
		var rec domain.GuildRecord
		err := row.Scan(&rec.ID, &rec.Name, &rec.CreatedAt)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan guilds: %w", domain.ErrDatabaseError, err)
	}

	for _, rec := range records {
		r.cache.Set(rec)
	}
	return records, nil
}

// GuildOf only counts ledger rows written by an accepted invite; a declined
// invite also leaves a row behind
func (r *GuildRepository) GuildOf(ctx context.Context, playerName string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		SELECT guild_id FROM guild_members
		WHERE player_name = $1 AND skill_on_item
		ORDER BY joined_at DESC
		LIMIT 1
	`, playerName).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: guild of %s: %w", domain.ErrDatabaseError, playerName, err)
	}
	return id, nil
}

func (r *GuildRepository) AddGuildInvite(ctx context.Context, guildID int64, inviteeName string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO guild_invites (guild_id, invitee_name) VALUES ($1, $2)
		ON CONFLICT (guild_id, invitee_name) DO UPDATE SET created_at = NOW()
	`, guildID, inviteeName)
	return wrapWrite("add guild invite", err)
}

func (r *GuildRepository) RemoveGuildInvite(ctx context.Context, guildID int64, inviteeName string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM guild_invites WHERE guild_id = $1 AND invitee_name = $2
	`, guildID, inviteeName)
	return wrapWrite("remove guild invite", err)
}

// AddGuildMember moves playerName into guildID's ledger, leaving any other guild
func (r *GuildRepository) AddGuildMember(ctx context.Context, guildID int64, playerName string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM guild_members WHERE player_name = $1 AND guild_id <> $2
	`, playerName, guildID); err != nil {
		return wrapWrite("leave previous guild", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO guild_members (guild_id, player_name) VALUES ($1, $2)
		ON CONFLICT (guild_id, player_name) DO NOTHING
	`, guildID, playerName); err != nil {
		return wrapWrite("add guild member", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (r *GuildRepository) RemoveGuildMember(ctx context.Context, guildID int64, playerName string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM guild_members WHERE guild_id = $1 AND player_name = $2
	`, guildID, playerName)
	return wrapWrite("remove guild member", err)
}

// AddSkillOnItem records the guild skill grant, creating the ledger row if
// the decline path never wrote one
func (r *GuildRepository) AddSkillOnItem(ctx context.Context, guildID int64, playerName string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO guild_members (guild_id, player_name, skill_on_item) VALUES ($1, $2, TRUE)
		ON CONFLICT (guild_id, player_name) DO UPDATE SET skill_on_item = TRUE
	`, guildID, playerName)
	return wrapWrite("add skill on item", err)
}
