package session

import (
	"fmt"
	"strconv"

	"github.com/osse101/realmkeeper/internal/cooldown"
	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/messaging"
	"github.com/osse101/realmkeeper/internal/metrics"
)

// IsConsumable reports whether kind has an effect when eaten
func IsConsumable(kind int) bool {
	switch kind {
	case domain.ItemKindBurger, domain.ItemKindSnowPotion, domain.ItemKindRoyalAzalea,
		domain.ItemKindManaPotion, domain.ItemKindElixir:
		return true
	}
	return false
}

// Eat consumes one unit from inventory slot index. Consuming anything starts
// a shared cooldown; eating again before it ends returns cooldown.ErrOnCooldown.
func (s *Session) Eat(kind, index int) error {
	if !s.IsReady() {
		return ErrNotReady
	}
	if !IsConsumable(kind) {
		return fmt.Errorf("%w: kind %d", ErrNotConsumable, kind)
	}
	stack, err := s.inventory.Slot(index)
	if err != nil {
		return err
	}
	if stack.Kind != kind {
		return fmt.Errorf(ErrFmtSlot, ErrItemMismatch, index)
	}

	consume := func() error {
		s.applyConsumable(kind)
		return s.inventory.TakeOut(index, 1)
	}
	if s.deps.Cooldowns != nil {
		err = s.deps.Cooldowns.Enforce(s.id, cooldown.ActionConsume, consume)
	} else {
		err = consume()
	}
	if err != nil {
		return err
	}

	metrics.ItemsUsed.WithLabelValues(strconv.Itoa(kind)).Inc()
	logger.Debug(LogMsgItemUsed, logger.AttrKeyPlayer, s.name, "kind", kind)
	return nil
}

func (s *Session) applyConsumable(kind int) {
	switch kind {
	case domain.ItemKindRoyalAzalea:
		s.broadcast(messaging.Equip{PlayerID: s.id, Kind: domain.ItemKindAzaleaVisual})
		if s.deps.Cooldowns != nil {
			s.deps.Cooldowns.Trigger(s.id, cooldown.BuffRoyalAzalea)
		}
	case domain.ItemKindManaPotion:
		if s.tracker.RegenMana(ManaPotionAmount) {
			s.send(messaging.Mana{Mana: s.tracker.Mana()})
		}
	default:
		if s.tracker.Heal(healAmount(kind, s.tracker.MaxHitPoints())) {
			s.send(messaging.Health{HitPoints: s.tracker.HitPoints()})
		}
	}
}

func healAmount(kind, maxHitPoints int) int {
	switch kind {
	case domain.ItemKindBurger:
		return BurgerHeal
	case domain.ItemKindSnowPotion:
		return SnowPotionHeal
	case domain.ItemKindElixir:
		return maxHitPoints * ElixirHealPercent / 100
	}
	return 0
}
