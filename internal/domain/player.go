package domain

// PlayerClass is the combat archetype that drives HP/MP maxima
type PlayerClass int

const (
	ClassUnset PlayerClass = iota
	ClassFighter
	ClassDefender
	ClassMage
	ClassArcher
)

func (c PlayerClass) String() string {
	switch c {
	case ClassFighter:
		return "fighter"
	case ClassDefender:
		return "defender"
	case ClassMage:
		return "mage"
	case ClassArcher:
		return "archer"
	default:
		return "unset"
	}
}

// Capability is a bit set of privileges granted when a session is created
type Capability uint8

const (
	// CapabilityBypassLevel skips item level checks on equip
	CapabilityBypassLevel Capability = 1 << iota
	// CapabilityAdmin allows administrative commands
	CapabilityAdmin
)

// Has reports whether every bit in want is set
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// Team identifies a minigame side
type Team int

const (
	TeamNone Team = -1
	TeamRed  Team = 1
	TeamBlue Team = 2
)

// Position is a tile coordinate in the world
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MobInfo describes a mob instance as seen by progression code
type MobInfo struct {
	ID    int64
	Kind  int
	Level int
}

// EquipRecord is one persisted equip slot
type EquipRecord struct {
	Kind           int `json:"kind"`
	EnchantedPoint int `json:"enchanted_point"`
	SkillKind      int `json:"skill_kind"`
	SkillLevel     int `json:"skill_level"`
}

// PlayerProfile is the durable part of a player loaded at login, including
// the four equip slots in weapon, armor, pendant, ring order
type PlayerProfile struct {
	Name       string
	Experience int64
	Class      PlayerClass
	Kind       int
	Rights     int
	Membership bool
	Position   Position
	HitPoints  int
	Mana       int
	Poisoned   bool
	FirstLogin bool
	Equipment  [4]EquipRecord
}

// AchievementRecord is a persisted achievement entry
type AchievementRecord struct {
	ID       int
	Found    bool
	Progress int
}

// PVPStanding is one row of the PVP leaderboard
type PVPStanding struct {
	Name   string `json:"name"`
	Kills  int    `json:"kills"`
	Deaths int    `json:"deaths"`
}
