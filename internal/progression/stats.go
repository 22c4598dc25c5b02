package progression

import "github.com/osse101/realmkeeper/internal/domain"

// MaxHitPoints returns the hit point ceiling for class at level
func MaxHitPoints(class domain.PlayerClass, level int) int {
	switch class {
	case domain.ClassFighter:
		return 50 + level*25
	case domain.ClassDefender:
		return 60 + level*30
	case domain.ClassMage:
		return 40 + level*18
	case domain.ClassArcher:
		return 45 + level*16
	default:
		return 40 + level*10
	}
}

// MaxMana returns the mana ceiling for class at level
func MaxMana(class domain.PlayerClass, level int) int {
	switch class {
	case domain.ClassFighter:
		return 15 + level*8
	case domain.ClassDefender:
		return 25 + level*3
	case domain.ClassMage:
		return 30 + level*12
	case domain.ClassArcher:
		return 10 + level*7
	default:
		return 40 + level*10
	}
}
