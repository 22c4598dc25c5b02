package equipment

import (
	"errors"
	"fmt"

	"github.com/osse101/realmkeeper/internal/domain"
)

// Rejection reasons
var (
	ErrLevelTooLow         = errors.New("level too low")
	ErrPrerequisiteMissing = errors.New("prerequisite achievement missing")
	ErrNoInventorySpace    = errors.New("no inventory space")
	ErrNotEquippable       = errors.New("item is not equippable")
	ErrSlotEmpty           = errors.New("slot is empty")
	ErrInvalidSlot         = errors.New("invalid slot")
)

// RejectionError carries the data needed to explain a refused equip
type RejectionError struct {
	Reason        error
	Slot          SlotID
	RequiredLevel int
	Achievement   int
}

func (e *RejectionError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrLevelTooLow):
		return fmt.Sprintf("%s: %s requires level %d", e.Reason, e.Slot, e.RequiredLevel)
	case errors.Is(e.Reason, ErrPrerequisiteMissing):
		return fmt.Sprintf("%s: %s requires achievement %d", e.Reason, e.Slot, e.Achievement)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Slot)
}

func (e *RejectionError) Unwrap() error {
	return e.Reason
}

// AchievementChecker answers whether an achievement is complete
type AchievementChecker interface {
	IsComplete(id int) bool
}

// Inventory is the part of a slot container the manager needs for unequip
type Inventory interface {
	HasSpace() bool
	Add(item domain.ItemStack) (int, bool)
}

// Config tunes prerequisite achievements per slot
type Config struct {
	Prerequisites map[SlotID]int
}

// DefaultConfig returns the stock prerequisites
func DefaultConfig() Config {
	return Config{Prerequisites: map[SlotID]int{
		SlotPendant: DefaultPendantAchievement,
		SlotRing:    DefaultRingAchievement,
	}}
}

// Manager owns the four equip slots of one player.
// It is not safe for concurrent use.
type Manager struct {
	slots  [len(Slots)]Item
	config Config
}

// NewManager creates a manager with empty slots
func NewManager(config Config) *Manager {
	return &Manager{config: config}
}

// Restore loads persisted slots in weapon, armor, pendant, ring order
func (m *Manager) Restore(records [4]domain.EquipRecord) {
	for i, r := range records {
		m.slots[i] = FromRecord(r)
	}
}

// Get returns the item in slot
func (m *Manager) Get(slot SlotID) Item {
	if !slot.valid() {
		return Item{}
	}
	return m.slots[slot.Index()]
}

// HasWeapon reports whether a weapon is equipped
func (m *Manager) HasWeapon() bool {
	return !m.Get(SlotWeapon).IsEmpty()
}

// Prerequisite returns the achievement id gating slot
func (m *Manager) Prerequisite(slot SlotID) (int, bool) {
	id, ok := m.config.Prerequisites[slot]
	return id, ok
}

// CheckEquip validates equipping def for a player at level. It never mutates.
func (m *Manager) CheckEquip(def domain.ItemDefinition, level int, bypassLevel bool, achievements AchievementChecker) (SlotID, error) {
	slot, ok := SlotFor(def.Category)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotEquippable, def.Name)
	}

	if id, gated := m.Prerequisite(slot); gated && !achievements.IsComplete(id) {
		return slot, &RejectionError{Reason: ErrPrerequisiteMissing, Slot: slot, Achievement: id}
	}

	if !bypassLevel && def.Level*2 > level {
		return slot, &RejectionError{Reason: ErrLevelTooLow, Slot: slot, RequiredLevel: def.Level * 2}
	}

	return slot, nil
}

// Equip puts item into slot and returns what was there before.
// All four attributes are replaced together.
func (m *Manager) Equip(slot SlotID, item Item) (Item, error) {
	if !slot.valid() {
		return Item{}, ErrInvalidSlot
	}
	prev := m.slots[slot.Index()]
	m.slots[slot.Index()] = item
	return prev, nil
}

// Unequip moves the item in slot into inv. When inv has no space the slot
// is left untouched.
func (m *Manager) Unequip(slot SlotID, inv Inventory) (Item, error) {
	if !slot.valid() {
		return Item{}, ErrInvalidSlot
	}
	item := m.slots[slot.Index()]
	if item.IsEmpty() {
		return Item{}, ErrSlotEmpty
	}
	if !inv.HasSpace() {
		return Item{}, ErrNoInventorySpace
	}
	if _, ok := inv.Add(item.Stack()); !ok {
		return Item{}, ErrNoInventorySpace
	}
	m.slots[slot.Index()] = Item{}
	return item, nil
}

// Clear empties slot without returning the item anywhere
func (m *Manager) Clear(slot SlotID) (Item, error) {
	if !slot.valid() {
		return Item{}, ErrInvalidSlot
	}
	item := m.slots[slot.Index()]
	m.slots[slot.Index()] = Item{}
	return item, nil
}
