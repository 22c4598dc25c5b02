package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/progression"
)

// PlayerRepository implements repository.Player
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// CreatePlayer inserts a new player with its four equip slots
func (r *PlayerRepository) CreatePlayer(ctx context.Context, p *domain.PlayerProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO players (name, experience, class, kind, rights, membership,
		                     pos_x, pos_y, hit_points, mana, poisoned, first_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, p.Name, p.Experience, int(p.Class), p.Kind, p.Rights, p.Membership,
		p.Position.X, p.Position.Y, p.HitPoints, p.Mana, p.Poisoned, p.FirstLogin)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: player %s exists", domain.ErrInvalidInput, p.Name)
		}
		return fmt.Errorf("failed to insert player: %w", err)
	}

	for slot, rec := range p.Equipment {
		if err := upsertEquipment(ctx, tx, p.Name, slot, rec); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// LoadProfile returns nil when the player does not exist
func (r *PlayerRepository) LoadProfile(ctx context.Context, name string) (*domain.PlayerProfile, error) {
	p := domain.PlayerProfile{Name: name}
	var class int
	err := r.db.QueryRow(ctx, `
		SELECT experience, class, kind, rights, membership, pos_x, pos_y,
		       hit_points, mana, poisoned, first_login
		FROM players
		WHERE name = $1
	`, name).Scan(
		&p.Experience,
		&class,
		&p.Kind,
		&p.Rights,
		&p.Membership,
		&p.Position.X,
		&p.Position.Y,
		&p.HitPoints,
		&p.Mana,
		&p.Poisoned,
		&p.FirstLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: load profile: %w", domain.ErrDatabaseError, err)
	}
	p.Class = domain.PlayerClass(class)

	rows, err := r.db.Query(ctx, `
		SELECT slot, kind, enchanted_point, skill_kind, skill_level
		FROM player_equipment
		WHERE player_name = $1
	`, name)
	if err != nil {
		return nil, fmt.Errorf("%w: load equipment: %w", domain.ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot int
		var rec domain.EquipRecord
		if err := rows.Scan(&slot, &rec.Kind, &rec.EnchantedPoint, &rec.SkillKind, &rec.SkillLevel); err != nil {
			return nil, fmt.Errorf("%w: scan equipment: %w", domain.ErrDatabaseError, err)
		}
		if slot >= 0 && slot < len(p.Equipment) {
			p.Equipment[slot] = rec
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load equipment: %w", domain.ErrDatabaseError, err)
	}

	return &p, nil
}

func (r *PlayerRepository) LoadBank(ctx context.Context, name string) (*domain.ContainerContents, error) {
	return r.loadContainer(ctx, name, domain.ContainerBank)
}

func (r *PlayerRepository) LoadInventory(ctx context.Context, name string) (*domain.ContainerContents, error) {
	return r.loadContainer(ctx, name, domain.ContainerInventory)
}

func (r *PlayerRepository) loadContainer(ctx context.Context, name string, c domain.ContainerType) (*domain.ContainerContents, error) {
	var size int
	err := r.db.QueryRow(ctx, containerSizeQuery(c), name).Scan(&size)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, name)
		}
		return nil, fmt.Errorf("%w: load %s size: %w", domain.ErrDatabaseError, c, err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT slot_index, kind, count, skill_kind, skill_level
		FROM container_slots
		WHERE player_name = $1 AND container = $2 AND slot_index < $3
		ORDER BY slot_index
	`, name, string(c), size)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", domain.ErrDatabaseError, c, err)
	}
	defer rows.Close()

	contents := &domain.ContainerContents{Size: size, Slots: make([]domain.ItemStack, size)}
	for rows.Next() {
		var idx int
		var it domain.ItemStack
		if err := rows.Scan(&idx, &it.Kind, &it.Count, &it.SkillKind, &it.SkillLevel); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", domain.ErrDatabaseError, c, err)
		}
		contents.Slots[idx] = it
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", domain.ErrDatabaseError, c, err)
	}
	return contents, nil
}

func containerSizeQuery(c domain.ContainerType) string {
	if c == domain.ContainerBank {
		return `SELECT bank_size FROM players WHERE name = $1`
	}
	return `SELECT inventory_size FROM players WHERE name = $1`
}

func (r *PlayerRepository) LoadAchievements(ctx context.Context, name string) ([]domain.AchievementRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT achievement_id, found, progress
		FROM player_achievements
		WHERE player_name = $1
		ORDER BY achievement_id
	`, name)
	if err != nil {
		return nil, fmt.Errorf("%w: load achievements: %w", domain.ErrDatabaseError, err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AchievementRecord, error) {
		var rec domain.AchievementRecord
		err := row.Scan(&rec.ID, &rec.Found, &rec.Progress)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan achievements: %w", domain.ErrDatabaseError, err)
	}
	return records, nil
}

// LoadPets returns pet kinds indexed by pet slot; empty slots are 0
func (r *PlayerRepository) LoadPets(ctx context.Context, name string) ([]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT pet_slot, kind
		FROM player_pets
		WHERE player_name = $1
		ORDER BY pet_slot
	`, name)
	if err != nil {
		return nil, fmt.Errorf("%w: load pets: %w", domain.ErrDatabaseError, err)
	}
	defer rows.Close()

	var pets []int
	for rows.Next() {
		var slot, kind int
		if err := rows.Scan(&slot, &kind); err != nil {
			return nil, fmt.Errorf("%w: scan pets: %w", domain.ErrDatabaseError, err)
		}
		if slot < 0 || slot >= MaxPetSlots {
			continue
		}
		for len(pets) <= slot {
			pets = append(pets, 0)
		}
		pets[slot] = kind
	}
	return pets, rows.Err()
}

func (r *PlayerRepository) SaveExperience(ctx context.Context, name string, experience int64) error {
	return r.updatePlayer(ctx, "save experience", `UPDATE players SET experience = $2 WHERE name = $1`, name, experience)
}

func (r *PlayerRepository) SavePoison(ctx context.Context, name string, poisoned bool) error {
	return r.updatePlayer(ctx, "save poison", `UPDATE players SET poisoned = $2 WHERE name = $1`, name, poisoned)
}

func (r *PlayerRepository) SavePosition(ctx context.Context, name string, pos domain.Position) error {
	return r.updatePlayer(ctx, "save position",
		`UPDATE players SET pos_x = $2, pos_y = $3, first_login = FALSE WHERE name = $1`, name, pos.X, pos.Y)
}

func (r *PlayerRepository) updatePlayer(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return wrapWrite(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrPlayerNotFound)
	}
	return nil
}

func (r *PlayerRepository) SaveEquipment(ctx context.Context, name string, slot int, record domain.EquipRecord) error {
	return upsertEquipment(ctx, r.db, name, slot, record)
}

func (r *PlayerRepository) SaveWeaponEnchant(ctx context.Context, name string, enchantedPoint int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE player_equipment SET enchanted_point = $2
		WHERE player_name = $1 AND slot = $3
	`, name, enchantedPoint, WeaponSlot)
	return wrapWrite("save weapon enchant", err)
}

func (r *PlayerRepository) SaveWeaponSkill(ctx context.Context, name string, skillKind, skillLevel int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE player_equipment SET skill_kind = $2, skill_level = $3
		WHERE player_name = $1 AND slot = $4
	`, name, skillKind, skillLevel, WeaponSlot)
	return wrapWrite("save weapon skill", err)
}

func (r *PlayerRepository) FoundAchievement(ctx context.Context, name string, id int) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO player_achievements (player_name, achievement_id, found)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (player_name, achievement_id)
		DO UPDATE SET found = TRUE, updated_at = NOW()
	`, name, id)
	return wrapWrite("found achievement", err)
}

// ProgressAchievement never lowers a completed entry
func (r *PlayerRepository) ProgressAchievement(ctx context.Context, name string, id, progress int) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO player_achievements (player_name, achievement_id, found, progress)
		VALUES ($1, $2, TRUE, $3)
		ON CONFLICT (player_name, achievement_id)
		DO UPDATE SET progress = EXCLUDED.progress, updated_at = NOW()
		WHERE player_achievements.progress <> $4
	`, name, id, progress, progression.Complete)
	return wrapWrite("progress achievement", err)
}

func (r *PlayerRepository) SaveSkill(ctx context.Context, name string, skillIndex, level int) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO player_skills (player_name, skill_index, level)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_name, skill_index) DO UPDATE SET level = EXCLUDED.level
	`, name, skillIndex, level)
	return wrapWrite("save skill", err)
}

// SaveContainerSlot stores one slot; an empty stack deletes the row
func (r *PlayerRepository) SaveContainerSlot(ctx context.Context, name string, c domain.ContainerType, index int, it domain.ItemStack) error {
	if it.IsEmpty() {
		_, err := r.db.Exec(ctx, `
			DELETE FROM container_slots
			WHERE player_name = $1 AND container = $2 AND slot_index = $3
		`, name, string(c), index)
		return wrapWrite("clear container slot", err)
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO container_slots (player_name, container, slot_index, kind, count, skill_kind, skill_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (player_name, container, slot_index)
		DO UPDATE SET kind = EXCLUDED.kind, count = EXCLUDED.count,
		              skill_kind = EXCLUDED.skill_kind, skill_level = EXCLUDED.skill_level
	`, name, string(c), index, it.Kind, it.Count, it.SkillKind, it.SkillLevel)
	return wrapWrite("save container slot", err)
}

// execer is satisfied by both the pool and a transaction
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func upsertEquipment(ctx context.Context, db execer, name string, slot int, rec domain.EquipRecord) error {
	_, err := db.Exec(ctx, `
		INSERT INTO player_equipment (player_name, slot, kind, enchanted_point, skill_kind, skill_level)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (player_name, slot)
		DO UPDATE SET kind = EXCLUDED.kind, enchanted_point = EXCLUDED.enchanted_point,
		              skill_kind = EXCLUDED.skill_kind, skill_level = EXCLUDED.skill_level
	`, name, slot, rec.Kind, rec.EnchantedPoint, rec.SkillKind, rec.SkillLevel)
	return wrapWrite("save equipment", err)
}
