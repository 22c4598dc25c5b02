package persist

// Operation names, used as the op label on write metrics
const (
	OpSaveExperience      = "save_experience"
	OpSaveEquipment       = "save_equipment"
	OpSaveWeaponEnchant   = "save_weapon_enchant"
	OpSaveWeaponSkill     = "save_weapon_skill"
	OpFoundAchievement    = "found_achievement"
	OpProgressAchievement = "progress_achievement"
	OpSaveSkill           = "save_skill"
	OpSavePoison          = "save_poison"
	OpSavePosition        = "save_position"
	OpSaveContainerSlot   = "save_container_slot"
	OpPVPKill             = "pvp_kill"
	OpPVPDeath            = "pvp_death"

	OpAddGuildInvite    = "add_guild_invite"
	OpRemoveGuildInvite = "remove_guild_invite"
	OpAddGuildMember    = "add_guild_member"
	OpRemoveGuildMember = "remove_guild_member"
	OpAddSkillOnItem    = "add_skill_on_item"
)

// Log messages
const (
	LogMsgWriteDropped = "Durable write dropped"
	LogMsgWriteFailed  = "Durable write failed"
)

// ErrFmtWrite wraps a failed write with its operation and key
const ErrFmtWrite = "%s for %s: %w"
