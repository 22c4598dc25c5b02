package progression

// Skill is a named passive ability and its level
type Skill struct {
	Name  string
	Level int
}

// SkillSet keeps skills in first-learned order so each has a stable index
type SkillSet struct {
	order  []string
	levels map[string]int
}

func NewSkillSet() *SkillSet {
	return &SkillSet{levels: make(map[string]int)}
}

// Add sets name to level and returns its index
func (s *SkillSet) Add(name string, level int) int {
	if _, ok := s.levels[name]; !ok {
		s.order = append(s.order, name)
	}
	s.levels[name] = level
	idx, _ := s.Index(name)
	return idx
}

// Level returns the level of name, zero when unknown
func (s *SkillSet) Level(name string) int {
	return s.levels[name]
}

// Index returns the position of name
func (s *SkillSet) Index(name string) (int, bool) {
	for i, n := range s.order {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// All returns the skills in index order
func (s *SkillSet) All() []Skill {
	out := make([]Skill, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, Skill{Name: n, Level: s.levels[n]})
	}
	return out
}
