package equipment

import (
	"errors"

	"github.com/osse101/realmkeeper/internal/domain"
)

// Enchant rejection reasons
var (
	ErrWrongPotion       = errors.New("wrong potion for this enchantment")
	ErrEnchantCapReached = errors.New("weapon enchantment cap reached")
	ErrSkillCapReached   = errors.New("weapon skill level cap reached")
	ErrWrongWeaponSkill  = errors.New("weapon does not carry bloodsucking")
)

// CheckEnchant validates a snow potion enchant on the equipped weapon
func (m *Manager) CheckEnchant(potion int) error {
	if potion != domain.ItemKindSnowPotion {
		return ErrWrongPotion
	}
	w := m.Get(SlotWeapon)
	if w.EnchantedPoint+w.SkillLevel >= MaxEnchantTotal {
		return ErrEnchantCapReached
	}
	return nil
}

// EnchantWeapon raises the weapon enchantment by one and returns the new point
func (m *Manager) EnchantWeapon() int {
	w := &m.slots[SlotWeapon.Index()]
	w.EnchantedPoint++
	return w.EnchantedPoint
}

// CheckBloodsucking validates a black potion enchant on the equipped weapon
func (m *Manager) CheckBloodsucking(potion int) error {
	if potion != domain.ItemKindBlackPotion {
		return ErrWrongPotion
	}
	w := m.Get(SlotWeapon)
	if w.EnchantedPoint+w.SkillLevel >= MaxEnchantTotal {
		return ErrEnchantCapReached
	}
	if w.SkillLevel >= MaxBloodsuckingLevel {
		return ErrSkillCapReached
	}
	if w.SkillKind != domain.SkillKindBloodsucking {
		return ErrWrongWeaponSkill
	}
	return nil
}

// EnchantBloodsucking raises the weapon's bloodsucking level by one
func (m *Manager) EnchantBloodsucking() (skillKind, skillLevel int) {
	w := &m.slots[SlotWeapon.Index()]
	w.SkillKind = domain.SkillKindBloodsucking
	w.SkillLevel++
	return w.SkillKind, w.SkillLevel
}

// Abilities are combat ratios derived from equipment and skills
type Abilities struct {
	Bloodsucking float64
	Critical     float64
}

// Abilities derives combat ratios from the weapon and the criticalStrike skill level
func (m *Manager) Abilities(criticalStrikeLevel int) Abilities {
	var a Abilities
	w := m.Get(SlotWeapon)

	if w.SkillKind == domain.SkillKindBloodsucking {
		a.Bloodsucking = float64(w.SkillLevel) * BloodsuckingPerLevel
	}

	if criticalStrikeLevel > 0 {
		a.Critical = CriticalStrikeBase
	}
	if w.SkillKind == domain.SkillKindCritical {
		a.Critical += float64(w.SkillLevel) * CriticalPerWeaponLevel
	}

	return a
}
