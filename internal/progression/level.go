package progression

import "math"

// LevelFunc maps total experience to a level. Implementations must be pure
// and non-decreasing in experience.
type LevelFunc func(experience int64) int

// DefaultLevel is the standard level curve
func DefaultLevel(experience int64) int {
	level, _ := levelAndNextXP(experience)
	return level
}

// ExperienceForLevel returns the cumulative experience needed to reach level
func ExperienceForLevel(level int) int64 {
	if level <= StartingLevel {
		return 0
	}

	cumulative := int64(0)
	for i := StartingLevel; i < level; i++ {
		cumulative += stepCost(i)
	}
	return cumulative
}

// ExperienceToNext returns the current level and the experience still missing
// for the next one
func ExperienceToNext(experience int64) (level int, remaining int64) {
	level, next := levelAndNextXP(experience)
	return level, next - experience
}

func stepCost(level int) int64 {
	return int64(BaseXP * math.Pow(float64(level), LevelExponent))
}

// levelAndNextXP computes the level and the cumulative experience required
// for the following level in a single pass
func levelAndNextXP(experience int64) (int, int64) {
	level := StartingLevel
	cumulative := int64(0)

	for level < MaxLevel {
		cost := stepCost(level)
		if cumulative+cost > experience {
			return level, cumulative + cost
		}
		cumulative += cost
		level++
	}

	return level, cumulative + stepCost(level)
}
