package equipment

// Default prerequisite achievements
const (
	DefaultPendantAchievement = 23
	DefaultRingAchievement    = 20
)

// Enchanting limits
const (
	MaxEnchantTotal        = 30
	MaxBloodsuckingLevel   = 7
	EnchantSuccessRatio    = 0.1
	BloodsuckingPerLevel   = 0.02
	CriticalStrikeBase     = 0.1
	CriticalPerWeaponLevel = 0.01
	CriticalStrikeSkill    = "criticalStrike"
)
