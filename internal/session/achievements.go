package session

import (
	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/event"
	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/messaging"
	"github.com/osse101/realmkeeper/internal/progression"
)

func (s *Session) catalog() *progression.Catalog {
	if s.deps.Achievements == nil {
		c, _ := progression.NewCatalog(nil)
		return c
	}
	return s.deps.Achievements
}

// trackKill advances kill achievements and persists every change
func (s *Session) trackKill(mob domain.MobInfo) {
	changes := s.ledger.RecordKill(s.catalog(), mob, s.tracker.Level(), s.equipment.HasWeapon())
	for _, c := range changes {
		id := c.Definition.ID
		if c.Completed {
			s.send(messaging.Achievement{Phase: messaging.AchievementComplete, ID: id})
			s.completeAchievement(c.Definition)
		} else {
			s.send(messaging.Achievement{Phase: messaging.AchievementProgress, ID: id, Progress: c.Progress})
		}
		s.deps.Store.ProgressAchievement(s.name, id, c.Progress)
	}
}

// completeAchievement grants the rewards of def
func (s *Session) completeAchievement(def progression.Definition) {
	if def.XP > 0 {
		s.IncExp(float64(def.XP), nil)
	}
	if def.GrantsSkill() {
		idx := s.skills.Add(def.SkillName, def.SkillLevel)
		s.deps.Store.SaveSkill(s.name, idx, def.SkillLevel)
		s.send(messaging.SkillLoad{Index: idx, Name: def.SkillName, Level: def.SkillLevel})
	}
	logger.Info(LogMsgAchievementDone, logger.AttrKeyPlayer, s.name, "achievement", def.ID)
	s.publish(event.NewAchievementCompletedEvent(s.id, s.name, def.ID, def.SkillName))
}

// FoundAchievement marks achievement id as discovered
func (s *Session) FoundAchievement(id int) error {
	if !s.IsReady() {
		return ErrNotReady
	}
	if !s.ledger.Discover(id) {
		return ErrUnknownAchievement
	}
	s.deps.Store.FoundAchievement(s.name, id)
	s.send(messaging.Achievement{Phase: messaging.AchievementFound, ID: id})
	return nil
}

// FinishAchievement completes id without granting its rewards
func (s *Session) FinishAchievement(id int) error {
	if !s.IsReady() {
		return ErrNotReady
	}
	if !s.ledger.Finish(id) {
		return ErrUnknownAchievement
	}
	s.deps.Store.ProgressAchievement(s.name, id, progression.Complete)
	return nil
}

// FinishAllAchievements completes every achievement. Admin only.
func (s *Session) FinishAllAchievements() error {
	if !s.caps.Has(domain.CapabilityAdmin) {
		return ErrNotAdmin
	}
	if !s.IsReady() {
		return ErrNotReady
	}
	for id := 0; id < s.ledger.Len(); id++ {
		s.ledger.Finish(id)
		s.deps.Store.ProgressAchievement(s.name, id, progression.Complete)
	}
	return nil
}

// ReviewSkills rebuilds the skill set from completed achievements
func (s *Session) ReviewSkills() error {
	if !s.IsReady() {
		return ErrNotReady
	}
	s.reviewSkills()
	return nil
}

func (s *Session) reviewSkills() {
	for _, skill := range s.ledger.CompletedSkills(s.catalog()) {
		s.skills.Add(skill.Name, skill.Level)
	}
}
