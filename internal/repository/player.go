package repository

import (
	"context"

	"github.com/osse101/realmkeeper/internal/domain"
)

// PlayerReader loads the durable state read during session bootstrap
type PlayerReader interface {
	LoadProfile(ctx context.Context, name string) (*domain.PlayerProfile, error)
	LoadBank(ctx context.Context, name string) (*domain.ContainerContents, error)
	LoadInventory(ctx context.Context, name string) (*domain.ContainerContents, error)
	LoadAchievements(ctx context.Context, name string) ([]domain.AchievementRecord, error)
	LoadPets(ctx context.Context, name string) ([]int, error)
}

// PlayerWriter persists gameplay mutations. Slots are addressed by their
// index in weapon, armor, pendant, ring order.
type PlayerWriter interface {
	SaveExperience(ctx context.Context, name string, experience int64) error
	SaveEquipment(ctx context.Context, name string, slot int, record domain.EquipRecord) error
	SaveWeaponEnchant(ctx context.Context, name string, enchantedPoint int) error
	SaveWeaponSkill(ctx context.Context, name string, skillKind, skillLevel int) error
	FoundAchievement(ctx context.Context, name string, id int) error
	ProgressAchievement(ctx context.Context, name string, id, progress int) error
	SaveSkill(ctx context.Context, name string, skillIndex, level int) error
	SavePoison(ctx context.Context, name string, poisoned bool) error
	// SavePosition also clears the first-login flag
	SavePosition(ctx context.Context, name string, pos domain.Position) error
	SaveContainerSlot(ctx context.Context, name string, container domain.ContainerType, index int, item domain.ItemStack) error
}

// Player defines the interface for player persistence
type Player interface {
	PlayerReader
	PlayerWriter
}
