package equipment

import (
	"fmt"

	"github.com/osse101/realmkeeper/internal/domain"
)

// SlotID addresses an equip slot. The values double as the slot selectors
// clients send in place of an inventory index to request an unequip.
type SlotID int

const (
	SlotWeapon  SlotID = -1
	SlotArmor   SlotID = -2
	SlotPendant SlotID = -3
	SlotRing    SlotID = -4
)

// Slots lists every slot in selector order
var Slots = [...]SlotID{SlotWeapon, SlotArmor, SlotPendant, SlotRing}

// IsSelector reports whether index is one of the four slot selectors
func IsSelector(index int) bool {
	return index <= int(SlotWeapon) && index >= int(SlotRing)
}

// SlotFor returns the slot that items of category occupy
func SlotFor(category domain.ItemCategory) (SlotID, bool) {
	switch category {
	case domain.CategoryWeapon:
		return SlotWeapon, true
	case domain.CategoryArmor:
		return SlotArmor, true
	case domain.CategoryPendant:
		return SlotPendant, true
	case domain.CategoryRing:
		return SlotRing, true
	}
	return 0, false
}

// Index is the slot position in weapon, armor, pendant, ring order
func (s SlotID) Index() int {
	return -int(s) - 1
}

func (s SlotID) valid() bool {
	return IsSelector(int(s))
}

func (s SlotID) String() string {
	switch s {
	case SlotWeapon:
		return "weapon"
	case SlotArmor:
		return "armor"
	case SlotPendant:
		return "pendant"
	case SlotRing:
		return "ring"
	}
	return fmt.Sprintf("slot(%d)", int(s))
}

// Item is the content of one equip slot. Kind 0 means empty; stored rows
// may also carry -1 for an empty slot.
type Item struct {
	Kind           int
	EnchantedPoint int
	SkillKind      int
	SkillLevel     int
}

// IsEmpty reports whether nothing is equipped
func (i Item) IsEmpty() bool {
	return i.Kind <= 0
}

// FromStack converts a container slot to an equip item. The stack count
// carries the enchantment point for equippable items.
func FromStack(s domain.ItemStack) Item {
	return Item{Kind: s.Kind, EnchantedPoint: s.Count, SkillKind: s.SkillKind, SkillLevel: s.SkillLevel}
}

// Stack converts the item back to its container form
func (i Item) Stack() domain.ItemStack {
	return domain.ItemStack{Kind: i.Kind, Count: i.EnchantedPoint, SkillKind: i.SkillKind, SkillLevel: i.SkillLevel}
}

// FromRecord converts a persisted slot. Any non-positive kind loads as an
// empty slot.
func FromRecord(r domain.EquipRecord) Item {
	if r.Kind <= 0 {
		return Item{}
	}
	return Item{Kind: r.Kind, EnchantedPoint: r.EnchantedPoint, SkillKind: r.SkillKind, SkillLevel: r.SkillLevel}
}

// Record converts the item to its persisted form
func (i Item) Record() domain.EquipRecord {
	return domain.EquipRecord{Kind: i.Kind, EnchantedPoint: i.EnchantedPoint, SkillKind: i.SkillKind, SkillLevel: i.SkillLevel}
}
