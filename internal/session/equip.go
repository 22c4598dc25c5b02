package session

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/equipment"
	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/messaging"
)

// HandleInventoryEquip equips the item of kind held in inventory slot index.
// An index equal to a slot selector unequips that slot instead.
func (s *Session) HandleInventoryEquip(kind, index int) error {
	if !s.IsReady() {
		return ErrNotReady
	}
	if equipment.IsSelector(index) {
		return s.Unequip(equipment.SlotID(index))
	}

	stack, err := s.inventory.Slot(index)
	if err != nil {
		return err
	}
	if stack.Kind != kind {
		return fmt.Errorf(ErrFmtSlot, ErrItemMismatch, index)
	}
	def, ok := s.deps.Items.Lookup(kind)
	if !ok {
		logger.Warn(LogMsgUnknownItem, logger.AttrKeyPlayer, s.name, "kind", kind)
		return fmt.Errorf("%w: kind %d", domain.ErrItemNotFound, kind)
	}

	bypass := s.caps.Has(domain.CapabilityBypassLevel)
	slot, err := s.equipment.CheckEquip(def, s.tracker.Level(), bypass, s.ledger)
	if err != nil {
		var rej *equipment.RejectionError
		if errors.As(err, &rej) {
			s.notify(s.rejectionNotice(rej))
		}
		logger.Debug(LogMsgEquipRejected, logger.AttrKeyPlayer, s.name, "kind", kind, "reason", err)
		return err
	}

	item := equipment.FromStack(stack)
	prev, err := s.equipment.Equip(slot, item)
	if err != nil {
		logger.Error(LogMsgEquipFailed, logger.AttrKeyPlayer, s.name, "slot", slot.String(), "error", err)
		return err
	}

	if prev.IsEmpty() {
		_, err = s.inventory.Empty(index)
	} else {
		err = s.inventory.SetSlot(index, prev.Stack())
	}
	if err != nil {
		return err
	}

	s.deps.Store.SaveEquipment(s.name, slot.Index(), item.Record())
	s.broadcast(messaging.Equip{PlayerID: s.id, Kind: kind})
	return nil
}

// Unequip moves the item in slot to the first free inventory slot
func (s *Session) Unequip(slot equipment.SlotID) error {
	if !s.IsReady() {
		return ErrNotReady
	}
	_, err := s.equipment.Unequip(slot, s.inventory)
	if errors.Is(err, equipment.ErrNoInventorySpace) {
		s.notify(NoticeNoInventorySpace)
		return err
	}
	if err != nil {
		return err
	}

	s.deps.Store.SaveEquipment(s.name, slot.Index(), domain.EquipRecord{})
	s.broadcast(messaging.Equip{PlayerID: s.id, Kind: int(slot)})
	return nil
}

func (s *Session) rejectionNotice(rej *equipment.RejectionError) string {
	switch {
	case errors.Is(rej.Reason, equipment.ErrLevelTooLow):
		return fmt.Sprintf(NoticeLevelTooLowFmt, rej.RequiredLevel)
	case errors.Is(rej.Reason, equipment.ErrPrerequisiteMissing):
		name := strconv.Itoa(rej.Achievement)
		if def, ok := s.catalog().Get(rej.Achievement); ok {
			name = def.Name
		}
		return fmt.Sprintf(NoticeAchievementFmt, name)
	}
	return rej.Error()
}

// Abilities returns the combat ratios granted by the weapon and skills
func (s *Session) Abilities() equipment.Abilities {
	return s.equipment.Abilities(s.skills.Level(equipment.CriticalStrikeSkill))
}

// EnchantWeapon spends the snow potion in inventory slot index on the
// equipped weapon and reports whether the enchantment took
func (s *Session) EnchantWeapon(kind, index int) (bool, error) {
	if err := s.checkPotion(kind, index); err != nil {
		return false, err
	}
	if err := s.equipment.CheckEnchant(kind); err != nil {
		switch {
		case errors.Is(err, equipment.ErrWrongPotion):
			s.notifyEnchant(NoticeNotSnowPotion)
		case errors.Is(err, equipment.ErrEnchantCapReached):
			s.notifyEnchant(NoticeEnchantCap)
		}
		return false, err
	}
	if _, err := s.inventory.Empty(index); err != nil {
		return false, err
	}

	if s.deps.Rand() >= equipment.EnchantSuccessRatio {
		s.notifyEnchant(NoticeEnchantFailed)
		return false, nil
	}
	point := s.equipment.EnchantWeapon()
	s.deps.Store.SaveWeaponEnchant(s.name, point)
	s.notifyEnchant(NoticeEnchantSucceeded)
	return true, nil
}

// EnchantBloodsucking spends the black potion in inventory slot index on the
// equipped weapon's bloodsucking skill
func (s *Session) EnchantBloodsucking(kind, index int) (bool, error) {
	if err := s.checkPotion(kind, index); err != nil {
		return false, err
	}
	if err := s.equipment.CheckBloodsucking(kind); err != nil {
		switch {
		case errors.Is(err, equipment.ErrWrongPotion):
			s.notifyEnchant(NoticeNotBlackPotion)
		case errors.Is(err, equipment.ErrEnchantCapReached):
			s.notifyEnchant(NoticeBloodsuckingCap)
		case errors.Is(err, equipment.ErrSkillCapReached):
			s.notifyEnchant(NoticeSkillCap)
		case errors.Is(err, equipment.ErrWrongWeaponSkill):
			s.notifyEnchant(NoticeWrongWeaponSkill)
		}
		return false, err
	}
	if _, err := s.inventory.Empty(index); err != nil {
		return false, err
	}

	if s.deps.Rand() >= equipment.EnchantSuccessRatio {
		s.notifyEnchant(NoticeBloodsuckingFailed)
		return false, nil
	}
	skillKind, skillLevel := s.equipment.EnchantBloodsucking()
	s.deps.Store.SaveWeaponSkill(s.name, skillKind, skillLevel)
	s.notifyEnchant(NoticeBloodsuckingSuccess)
	return true, nil
}

func (s *Session) notifyEnchant(text string) {
	s.send(messaging.Notify{Category: NotifyCategoryEnchant, Text: text})
}

func (s *Session) checkPotion(kind, index int) error {
	if !s.IsReady() {
		return ErrNotReady
	}
	if !s.equipment.HasWeapon() {
		return ErrNoWeapon
	}
	stack, err := s.inventory.Slot(index)
	if err != nil {
		return err
	}
	if stack.Kind != kind {
		return fmt.Errorf(ErrFmtSlot, ErrItemMismatch, index)
	}
	return nil
}
