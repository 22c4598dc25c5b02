package session

import (
	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/event"
	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/messaging"
)

// IncExp awards experience, scaled up when mob outlevels the player, and
// returns the amount actually granted. Sessions that are not ready get nothing.
func (s *Session) IncExp(amount float64, mob *domain.MobInfo) int {
	if !s.IsReady() {
		return 0
	}

	award := s.tracker.AddExperience(amount, mob, s.deps.Rand)

	s.sendPoints()
	s.send(messaging.Experience{Amount: award.Amount, Total: s.tracker.Experience(), Level: award.Level})
	s.deps.Store.SaveExperience(s.name, s.tracker.Experience())

	s.publish(event.NewExperienceEvent(s.id, int64(award.Amount), s.tracker.Experience()))
	if award.LeveledUp() {
		logger.Info(LogMsgLevelUp, logger.AttrKeyPlayer, s.name, "from", award.PreviousLevel, "to", award.Level)
		s.publish(event.NewLevelUpEvent(s.id, s.name, award.PreviousLevel, award.Level))
	}
	return award.Amount
}

// OnKill credits a kill of mob: base experience first, then kill achievements
func (s *Session) OnKill(mob domain.MobInfo, baseExp float64) (int, error) {
	if !s.IsReady() {
		return 0, ErrNotReady
	}
	awarded := s.IncExp(baseExp, &mob)
	s.trackKill(mob)
	return awarded, nil
}
