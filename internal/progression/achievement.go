package progression

import (
	"errors"
	"fmt"

	"github.com/osse101/realmkeeper/internal/domain"
)

// ErrInvalidAchievements is returned for malformed definition sets
var ErrInvalidAchievements = errors.New("invalid achievement definitions")

// AchievementType classifies what advances an achievement
type AchievementType string

const (
	TypeKill    AchievementType = "kill"
	TypeItem    AchievementType = "item"
	TypeTalk    AchievementType = "talk"
	TypeExplore AchievementType = "explore"
)

// Definition is the static description of one achievement
type Definition struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Type       AchievementType `json:"type"`
	MobIDs     []int           `json:"mob_ids,omitempty"`
	MobCount   int             `json:"mob_count,omitempty"`
	Weaponless bool            `json:"weaponless,omitempty"`
	XP         int             `json:"xp,omitempty"`
	SkillName  string          `json:"skill_name,omitempty"`
	SkillLevel int             `json:"skill_level,omitempty"`
}

// GrantsSkill reports whether completing the achievement unlocks a skill
func (d Definition) GrantsSkill() bool {
	return d.SkillName != "" && d.SkillLevel > 0
}

// MatchesKill reports whether killing mob advances this definition for a
// player at playerLevel. A list of several kinds matches by membership, a
// single kind by equality, and kind 0 (or no kinds) matches any mob whose
// level doubled exceeds the player's level.
func (d Definition) MatchesKill(mob domain.MobInfo, playerLevel int) bool {
	switch {
	case len(d.MobIDs) > 1:
		for _, id := range d.MobIDs {
			if id == mob.Kind {
				return true
			}
		}
		return false
	case len(d.MobIDs) == 1 && d.MobIDs[0] != 0:
		return d.MobIDs[0] == mob.Kind
	default:
		return mob.Level*2 > playerLevel
	}
}

// Catalog is the ordered set of achievement definitions. Ids are dense and
// start at zero so that they double as ledger indexes.
type Catalog struct {
	defs []Definition
}

// NewCatalog validates and wraps defs
func NewCatalog(defs []Definition) (*Catalog, error) {
	for i, d := range defs {
		if d.ID != i {
			return nil, fmt.Errorf(ErrFmtAchievementIDGap, ErrInvalidAchievements, i, d.ID)
		}
		if d.Name == "" {
			return nil, fmt.Errorf(ErrFmtAchievementEmptyName, ErrInvalidAchievements, d.ID)
		}
	}
	return &Catalog{defs: defs}, nil
}

// Len returns the number of definitions
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Get returns the definition with id
func (c *Catalog) Get(id int) (Definition, bool) {
	if id < 0 || id >= len(c.defs) {
		return Definition{}, false
	}
	return c.defs[id], true
}

// All returns every definition in id order
func (c *Catalog) All() []Definition {
	return c.defs
}

// Entry is one player's state for one achievement
type Entry struct {
	Found    bool
	Progress int
}

// IsComplete reports whether the entry holds the completion sentinel
func (e Entry) IsComplete() bool {
	return e.Progress == Complete
}

// Ledger holds a player's achievement entries indexed by id.
// Completed entries never regress.
type Ledger struct {
	entries []Entry
}

// NewLedger creates an empty ledger sized for n achievements
func NewLedger(n int) *Ledger {
	return &Ledger{entries: make([]Entry, n)}
}

// Restore applies persisted records. Records outside the ledger are ignored.
func (l *Ledger) Restore(records []domain.AchievementRecord) {
	for _, r := range records {
		if r.ID < 0 || r.ID >= len(l.entries) {
			continue
		}
		l.entries[r.ID] = Entry{Found: r.Found, Progress: r.Progress}
	}
}

// Len returns the number of entries
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entry returns the entry for id
func (l *Ledger) Entry(id int) (Entry, bool) {
	if id < 0 || id >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[id], true
}

// Entries returns a copy of all entries in id order
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// IsComplete reports whether achievement id is complete
func (l *Ledger) IsComplete(id int) bool {
	e, ok := l.Entry(id)
	return ok && e.IsComplete()
}

// Discover marks id as found. It returns false for unknown ids.
func (l *Ledger) Discover(id int) bool {
	if id < 0 || id >= len(l.entries) {
		return false
	}
	l.entries[id].Found = true
	return true
}

// Finish sets id to complete. It returns false for unknown ids.
func (l *Ledger) Finish(id int) bool {
	if id < 0 || id >= len(l.entries) {
		return false
	}
	l.entries[id].Progress = Complete
	return true
}

// KillProgress describes how one kill moved one achievement
type KillProgress struct {
	Definition Definition
	Progress   int
	Completed  bool
}

// RecordKill advances every discovered, unfinished kill achievement that
// mob satisfies and returns the changes in id order
func (l *Ledger) RecordKill(catalog *Catalog, mob domain.MobInfo, playerLevel int, weaponEquipped bool) []KillProgress {
	var changes []KillProgress

	for _, def := range catalog.All() {
		if def.Type != TypeKill || def.ID >= len(l.entries) {
			continue
		}
		if !def.MatchesKill(mob, playerLevel) {
			continue
		}
		if def.Weaponless && weaponEquipped {
			continue
		}

		entry := &l.entries[def.ID]
		if !entry.Found || entry.IsComplete() {
			continue
		}

		if entry.Progress <= 0 {
			entry.Progress = 1
		} else {
			entry.Progress++
		}

		change := KillProgress{Definition: def, Progress: entry.Progress}
		if entry.Progress >= def.MobCount {
			entry.Progress = Complete
			change.Progress = Complete
			change.Completed = true
		}
		changes = append(changes, change)
	}

	return changes
}

// CompletedSkills returns the skills unlocked by every completed achievement
func (l *Ledger) CompletedSkills(catalog *Catalog) []Skill {
	var skills []Skill
	for _, def := range catalog.All() {
		if def.GrantsSkill() && l.IsComplete(def.ID) {
			skills = append(skills, Skill{Name: def.SkillName, Level: def.SkillLevel})
		}
	}
	return skills
}
