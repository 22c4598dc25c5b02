package persist

import (
	"context"

	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/repository"
)

// PlayerWriter queues player writes keyed by player name
type PlayerWriter struct {
	writer
	repo repository.PlayerWriter
	pvp  repository.PVPStats
}

// NewPlayerWriter creates a writer. pvp may be nil, in which case PVP
// counters are not persisted.
func NewPlayerWriter(repo repository.PlayerWriter, pvp repository.PVPStats, pool Submitter) *PlayerWriter {
	return &PlayerWriter{writer: writer{pool: pool}, repo: repo, pvp: pvp}
}

func (w *PlayerWriter) SaveExperience(name string, experience int64) {
	w.submit(OpSaveExperience, name, func(ctx context.Context) error {
		return w.repo.SaveExperience(ctx, name, experience)
	})
}

func (w *PlayerWriter) SaveEquipment(name string, slot int, record domain.EquipRecord) {
	w.submit(OpSaveEquipment, name, func(ctx context.Context) error {
		return w.repo.SaveEquipment(ctx, name, slot, record)
	})
}

func (w *PlayerWriter) SaveWeaponEnchant(name string, enchantedPoint int) {
	w.submit(OpSaveWeaponEnchant, name, func(ctx context.Context) error {
		return w.repo.SaveWeaponEnchant(ctx, name, enchantedPoint)
	})
}

func (w *PlayerWriter) SaveWeaponSkill(name string, skillKind, skillLevel int) {
	w.submit(OpSaveWeaponSkill, name, func(ctx context.Context) error {
		return w.repo.SaveWeaponSkill(ctx, name, skillKind, skillLevel)
	})
}

func (w *PlayerWriter) FoundAchievement(name string, id int) {
	w.submit(OpFoundAchievement, name, func(ctx context.Context) error {
		return w.repo.FoundAchievement(ctx, name, id)
	})
}

func (w *PlayerWriter) ProgressAchievement(name string, id, progress int) {
	w.submit(OpProgressAchievement, name, func(ctx context.Context) error {
		return w.repo.ProgressAchievement(ctx, name, id, progress)
	})
}

func (w *PlayerWriter) SaveSkill(name string, skillIndex, level int) {
	w.submit(OpSaveSkill, name, func(ctx context.Context) error {
		return w.repo.SaveSkill(ctx, name, skillIndex, level)
	})
}

func (w *PlayerWriter) SavePoison(name string, poisoned bool) {
	w.submit(OpSavePoison, name, func(ctx context.Context) error {
		return w.repo.SavePoison(ctx, name, poisoned)
	})
}

func (w *PlayerWriter) SavePosition(name string, pos domain.Position) {
	w.submit(OpSavePosition, name, func(ctx context.Context) error {
		return w.repo.SavePosition(ctx, name, pos)
	})
}

func (w *PlayerWriter) SaveContainerSlot(name string, container domain.ContainerType, index int, item domain.ItemStack) {
	w.submit(OpSaveContainerSlot, name, func(ctx context.Context) error {
		return w.repo.SaveContainerSlot(ctx, name, container, index, item)
	})
}

func (w *PlayerWriter) RecordPVPKill(name string) {
	if w.pvp == nil {
		return
	}
	w.submit(OpPVPKill, name, func(ctx context.Context) error {
		_, err := w.pvp.IncrementKills(ctx, name)
		return err
	})
}

func (w *PlayerWriter) RecordPVPDeath(name string) {
	if w.pvp == nil {
		return
	}
	w.submit(OpPVPDeath, name, func(ctx context.Context) error {
		_, err := w.pvp.IncrementDeaths(ctx, name)
		return err
	})
}
