package progression

// Complete is the progress sentinel for a finished achievement
const Complete = 999

// Level curve constants. Reaching level N+1 from N costs BaseXP * N^LevelExponent.
const (
	BaseXP        = 100.0
	LevelExponent = 1.5
	StartingLevel = 1
	MaxLevel      = 135
)

// Experience award constants
const (
	// HigherMobBaseMultiplier is the floor of the bonus for killing a higher level mob
	HigherMobBaseMultiplier = 1.2
	// HigherMobLevelDivisor spreads the bonus ceiling over the level gap
	HigherMobLevelDivisor = 7.0
	// MinimumAward is the floor for every experience award
	MinimumAward = 1
)

// Error messages
const (
	ErrMsgReadAchievementsFailed  = "failed to read achievements file: %w"
	ErrMsgParseAchievementsFailed = "failed to parse achievements file: %w"
	ErrFmtAchievementIDGap        = "%w: achievement at position %d has id %d"
	ErrFmtAchievementEmptyName    = "%w: achievement %d has empty name"
)

// Log messages
const (
	LogMsgAchievementsLoaded = "Achievement definitions loaded"
)
