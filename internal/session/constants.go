package session

import "time"

// Quest tracker activation delays after a session becomes ready
const (
	FirstLoginQuestDelay = 1000 * time.Millisecond
	ReturnQuestDelay     = 100 * time.Millisecond
)

// Consumable effects
const (
	ManaPotionAmount  = 75
	BurgerHeal        = 100
	SnowPotionHeal    = 200
	ElixirHealPercent = 35
)

// Spawn areas by team
const (
	RedSpawnX     = 163
	RedSpawnY     = 499
	BlueSpawnX    = 133
	BlueSpawnY    = 471
	DefaultSpawnX = 325
	DefaultSpawnY = 87
	SpawnSpread   = 5
)

// NotifyCategoryEnchant tags enchantment results
const NotifyCategoryEnchant = "enchant"

// Client notices
const (
	NoticeLevelTooLowFmt      = "You need to be at least level %d to equip this."
	NoticeAchievementFmt      = "You must have completed: %s to equip this."
	NoticeNoInventorySpace    = "You do not have any space in your inventory."
	NoticeNotSnowPotion       = "This isn't a snowpotion."
	NoticeEnchantCap          = "Weapon Enchantment cannot exceed 30."
	NoticeEnchantSucceeded    = "Your enchantment succeeded."
	NoticeEnchantFailed       = "Your enchantment Failed."
	NoticeNotBlackPotion      = "This isn't a black potion."
	NoticeBloodsuckingCap     = "Weapon enchantment cannot exceed level 30."
	NoticeSkillCap            = "Weapon Skill Level cannot be raised beyond 7."
	NoticeWrongWeaponSkill    = "You can use a black potion."
	NoticeBloodsuckingSuccess = "Enchantment successful."
	NoticeBloodsuckingFailed  = "The enchantment failed."
	NoticePVPOn               = "You are now in a PVP zone!"
	NoticePVPOff              = "You are no longer in a PVP zone!"
	NoticeLobbyOn             = "You have entered the lobby!"
	NoticeLobbyOff            = "You are no longer in lobby."
)

// Log messages
const (
	LogMsgBootstrapPhase     = "Session bootstrap phase"
	LogMsgBootstrapFailed    = "Session bootstrap failed"
	LogMsgBootstrapAbandoned = "Session bootstrap abandoned"
	LogMsgSessionReady       = "Session ready"
	LogMsgSessionDestroyed   = "Session destroyed"
	LogMsgLevelUp            = "Player leveled up"
	LogMsgAchievementDone    = "Achievement completed"
	LogMsgEquipRejected      = "Equip rejected"
	LogMsgEquipFailed        = "Equip failed"
	LogMsgPublishFailed      = "Failed to publish session event"
	LogMsgUnknownItem        = "Unknown item kind"
	LogMsgItemUsed           = "Item used"
)

// Error message formats
const (
	ErrFmtBootstrap = "bootstrap %s: %v"
	ErrFmtSlot      = "%w: inventory slot %d"
)
