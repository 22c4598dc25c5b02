package world

// Command operations accepted from clients
const (
	OpEquip              = "equip"
	OpUnequip            = "unequip"
	OpEat                = "eat"
	OpEnchant            = "enchant"
	OpBloodsuck          = "bloodsuck"
	OpPVP                = "pvp"
	OpGame               = "game"
	OpFoundAchievement   = "found_achievement"
	OpFinishAchievements = "finish_achievements"
	OpGuildCreate        = "guild_create"
	OpGuildInvite        = "guild_invite"
	OpGuildReply         = "guild_reply"
	OpGuildLeave         = "guild_leave"
)

// Log messages
const (
	LogMsgDuplicateLogin    = "Rejected duplicate login"
	LogMsgLoopUnavailable   = "Event loop unavailable, dropping connection"
	LogMsgBootstrapFailed   = "Session bootstrap failed"
	LogMsgSessionClosed     = "Session closed"
	LogMsgGuildLookupFailed = "Failed to look up guild membership"
	LogMsgRejoinFailed      = "Failed to rejoin guild"
	LogMsgBadCommand        = "Discarded malformed command"
	LogMsgCommandRejected   = "Command rejected"
	LogMsgGuildCreateFailed = "Failed to create guild"
	LogMsgMobForget         = "Mob released player"
	LogMsgQuestActivated    = "Quest tracker activated"
	LogMsgPetSpawned        = "Pet spawned"
)

// Error message constants
const (
	ErrMsgPlayerOffline = "player is not online"
	ErrMsgNotInGuild    = "player is not in a guild"
	ErrMsgCreatePending = "guild creation already in progress"
)
