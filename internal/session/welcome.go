package session

import (
	"github.com/osse101/realmkeeper/internal/container"
	"github.com/osse101/realmkeeper/internal/equipment"
	"github.com/osse101/realmkeeper/internal/messaging"
)

// welcomeFields assembles the login payload. Clients decode it positionally,
// so the order is fixed.
func (s *Session) welcomeFields() []any {
	fields := []any{
		s.id,
		s.name,
		s.position.X,
		s.position.Y,
		s.tracker.MaxHitPoints(),
		s.equipment.Get(equipment.SlotArmor).Kind,
		s.equipment.Get(equipment.SlotWeapon).Kind,
		s.tracker.Experience(),
		s.tracker.MaxMana(),
		s.deps.World.DoubleExp,
		s.deps.World.ExpMultiplier,
		s.membership,
		s.kind,
		s.rights,
		int(s.tracker.Class()),
		s.equipment.Get(equipment.SlotPendant).Kind,
		s.equipment.Get(equipment.SlotRing).Kind,
	}
	fields = appendContainer(fields, s.inventory)
	fields = appendContainer(fields, s.bank)

	entries := s.ledger.Entries()
	fields = append(fields, len(entries))
	for _, e := range entries {
		fields = append(fields, e.Found, e.Progress)
	}
	return fields
}

func appendContainer(fields []any, c *container.Container) []any {
	fields = append(fields, c.Size())
	for _, slot := range c.Slots() {
		fields = append(fields, slot.Kind, slot.Count, slot.SkillKind, slot.SkillLevel)
	}
	return fields
}

func (s *Session) sendWelcome() {
	s.send(messaging.Raw{Kind: messaging.TypeWelcome, Payload: s.welcomeFields()})
}
