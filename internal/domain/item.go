package domain

// ItemCategory groups item kinds by how they are used
type ItemCategory string

const (
	CategoryWeapon     ItemCategory = "weapon"
	CategoryArmor      ItemCategory = "armor"
	CategoryPendant    ItemCategory = "pendant"
	CategoryRing       ItemCategory = "ring"
	CategoryConsumable ItemCategory = "consumable"
	CategoryEnchant    ItemCategory = "enchant"
	CategoryOther      ItemCategory = "other"
)

// IsEquippable reports whether items of this category occupy an equip slot
func (c ItemCategory) IsEquippable() bool {
	switch c {
	case CategoryWeapon, CategoryArmor, CategoryPendant, CategoryRing:
		return true
	}
	return false
}

// ItemDefinition is the static description of an item kind
type ItemDefinition struct {
	Kind     int          `json:"kind"`
	Name     string       `json:"name"`
	Category ItemCategory `json:"category"`
	Level    int          `json:"level"`
}

// ItemStack is one container slot. For equippable items Count carries the
// enchantment point rather than a quantity.
type ItemStack struct {
	Kind       int `json:"kind"`
	Count      int `json:"count"`
	SkillKind  int `json:"skill_kind"`
	SkillLevel int `json:"skill_level"`
}

// IsEmpty reports whether the slot holds nothing
func (s ItemStack) IsEmpty() bool {
	return s.Kind == 0
}

// ContainerType distinguishes inventory from bank storage
type ContainerType string

const (
	ContainerInventory ContainerType = "inventory"
	ContainerBank      ContainerType = "bank"
)

// ContainerContents is a container as loaded from storage
type ContainerContents struct {
	Size  int
	Slots []ItemStack
}

// Well-known item kinds with hard-coded behaviour
const (
	ItemKindBurger       = 35
	ItemKindSnowPotion   = 200
	ItemKindRoyalAzalea  = 212
	ItemKindAzaleaVisual = 213
	ItemKindManaPotion   = 300
	ItemKindBlackPotion  = 306
	ItemKindElixir       = 401
)

// Weapon skill kinds
const (
	SkillKindNone         = 0
	SkillKindBloodsucking = 1
	SkillKindCritical     = 2
)
