package progression

import (
	"math"

	"github.com/osse101/realmkeeper/internal/domain"
)

// Award is the outcome of a single experience grant
type Award struct {
	Amount        int
	PreviousLevel int
	Level         int
}

// LeveledUp reports whether the grant crossed at least one level
func (a Award) LeveledUp() bool {
	return a.Level > a.PreviousLevel
}

// Tracker owns one player's experience, level and stat pools.
// It is not safe for concurrent use.
type Tracker struct {
	levelFn LevelFunc

	experience int64
	level      int
	class      domain.PlayerClass

	maxHitPoints int
	maxMana      int
	hitPoints    int
	mana         int
}

// NewTracker creates a tracker at zero experience. A nil levelFn selects DefaultLevel.
func NewTracker(levelFn LevelFunc, class domain.PlayerClass) *Tracker {
	if levelFn == nil {
		levelFn = DefaultLevel
	}
	t := &Tracker{levelFn: levelFn, class: class}
	t.level = levelFn(0)
	t.recomputeMaxima()
	t.hitPoints = t.maxHitPoints
	t.mana = t.maxMana
	return t
}

// Restore loads persisted state. Non-positive pools are refilled.
func (t *Tracker) Restore(experience int64, class domain.PlayerClass, hitPoints, mana int) {
	if experience < 0 {
		experience = 0
	}
	t.experience = experience
	t.class = class
	t.level = t.levelFn(experience)
	t.recomputeMaxima()

	t.hitPoints = hitPoints
	if hitPoints <= 0 {
		t.hitPoints = t.maxHitPoints
	}
	t.mana = mana
	if mana <= 0 {
		t.mana = t.maxMana
	}
}

// AddExperience grants amount, scaled when mob outlevels the player.
// rnd must return values in [0, 1).
func (t *Tracker) AddExperience(amount float64, mob *domain.MobInfo, rnd func() float64) Award {
	received := amount
	if mob != nil && mob.Level > t.level {
		spread := float64(mob.Level-t.level) / HigherMobLevelDivisor
		received *= HigherMobBaseMultiplier + rnd()*spread
	}

	if math.IsNaN(received) || math.IsInf(received, 0) || received < 0 {
		received = MinimumAward
	}

	awarded := int(math.Round(received))
	if awarded < MinimumAward {
		awarded = MinimumAward
	}

	award := Award{Amount: awarded, PreviousLevel: t.level}

	t.experience += int64(awarded)
	level := t.levelFn(t.experience)
	if level > t.level {
		t.level = level
		t.recomputeMaxima()
	}
	award.Level = t.level

	return award
}

func (t *Tracker) recomputeMaxima() {
	t.maxHitPoints = MaxHitPoints(t.class, t.level)
	t.maxMana = MaxMana(t.class, t.level)
}

// Heal raises hit points by n up to the maximum and reports whether anything changed
func (t *Tracker) Heal(n int) bool {
	if n <= 0 || t.hitPoints >= t.maxHitPoints {
		return false
	}
	t.hitPoints = min(t.hitPoints+n, t.maxHitPoints)
	return true
}

// RegenMana raises mana by n up to the maximum and reports whether anything changed
func (t *Tracker) RegenMana(n int) bool {
	if n <= 0 || t.mana >= t.maxMana {
		return false
	}
	t.mana = min(t.mana+n, t.maxMana)
	return true
}

// ResetPools tops both pools up to their maxima
func (t *Tracker) ResetPools() {
	t.hitPoints = t.maxHitPoints
	t.mana = t.maxMana
}

// Experience returns total experience
func (t *Tracker) Experience() int64 {
	return t.experience
}

// Level returns the level derived from total experience
func (t *Tracker) Level() int {
	return t.level
}

func (t *Tracker) Class() domain.PlayerClass {
	return t.class
}

func (t *Tracker) MaxHitPoints() int {
	return t.maxHitPoints
}

func (t *Tracker) MaxMana() int {
	return t.maxMana
}

func (t *Tracker) HitPoints() int {
	return t.hitPoints
}

func (t *Tracker) Mana() int {
	return t.mana
}
