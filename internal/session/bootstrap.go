package session

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/osse101/realmkeeper/internal/container"
	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/event"
	"github.com/osse101/realmkeeper/internal/logger"
)

// Bootstrap loads the player's durable state one phase at a time. Reads run
// on the calling goroutine and every continuation hops back onto the loop.
// Any read failure is returned as a *BootstrapError and the session never
// becomes ready; the caller should close the connection.
func (s *Session) Bootstrap(ctx context.Context) error {
	if !s.phase.CompareAndSwap(int32(PhaseConnecting), int32(PhaseLoadingEquipment)) {
		return ErrAlreadyBootstrapped
	}
	ctx = logger.WithSessionID(ctx, s.id)
	gw := s.deps.Gateway

	err := load(ctx, s, PhaseLoadingEquipment, func(ctx context.Context) (*domain.PlayerProfile, error) {
		p, err := gw.LoadProfile(ctx, s.name)
		if err == nil && p == nil {
			err = domain.ErrPlayerNotFound
		}
		return p, err
	}, s.applyProfile)
	if err != nil {
		return err
	}

	err = load(ctx, s, PhaseLoadingBank, func(ctx context.Context) (*domain.ContainerContents, error) {
		return gw.LoadBank(ctx, s.name)
	}, func(c *domain.ContainerContents) {
		s.bank = s.attach(domain.ContainerBank, c)
	})
	if err != nil {
		return err
	}

	err = load(ctx, s, PhaseLoadingInventory, func(ctx context.Context) (*domain.ContainerContents, error) {
		return gw.LoadInventory(ctx, s.name)
	}, func(c *domain.ContainerContents) {
		s.inventory = s.attach(domain.ContainerInventory, c)
	})
	if err != nil {
		return err
	}

	err = load(ctx, s, PhaseLoadingAchievements, func(ctx context.Context) ([]domain.AchievementRecord, error) {
		return gw.LoadAchievements(ctx, s.name)
	}, s.ledger.Restore)
	if err != nil {
		return err
	}

	return load(ctx, s, PhaseLoadingPets, func(ctx context.Context) ([]int, error) {
		return gw.LoadPets(ctx, s.name)
	}, func(pets []int) {
		s.pets = pets
		s.becomeReady()
	})
}

// load runs one bootstrap phase: read off-loop, then apply on the loop if
// the session is still valid
func load[T any](ctx context.Context, s *Session, phase Phase, read func(context.Context) (T, error), apply func(T)) error {
	log := logger.FromContext(ctx)
	s.phase.Store(int32(phase))
	log.Debug(LogMsgBootstrapPhase, "phase", phase.String())

	v, err := read(ctx)
	if err != nil {
		if s.closed.Load() || ctx.Err() != nil {
			log.Info(LogMsgBootstrapAbandoned, "phase", phase.String())
			return ErrSessionClosed
		}
		log.Error(LogMsgBootstrapFailed, "phase", phase.String(), "error", err)
		s.publish(event.NewBootstrapFailedEvent(s.id, s.name, phase.String(), err))
		return &BootstrapError{Phase: phase, Err: err}
	}

	var applied atomic.Bool
	err = s.deps.Loop.Do(ctx, func() {
		if s.closed.Load() || ctx.Err() != nil {
			return
		}
		apply(v)
		applied.Store(true)
	})
	if err != nil {
		log.Info(LogMsgBootstrapAbandoned, "phase", phase.String(), "error", err)
		return fmt.Errorf("%w: %w", ErrSessionClosed, err)
	}
	if !applied.Load() {
		log.Info(LogMsgBootstrapAbandoned, "phase", phase.String())
		return ErrSessionClosed
	}
	return nil
}

// IsBootstrapFailure reports whether err came from a failed gateway read
func IsBootstrapFailure(err error) bool {
	var be *BootstrapError
	return errors.As(err, &be)
}

func (s *Session) applyProfile(p *domain.PlayerProfile) {
	s.kind = p.Kind
	s.rights = p.Rights
	s.membership = p.Membership
	s.poisoned = p.Poisoned
	s.firstLogin = p.FirstLogin
	s.tracker.Restore(p.Experience, p.Class, p.HitPoints, p.Mana)
	s.equipment.Restore(p.Equipment)

	s.position = p.Position
	if s.position.X == 0 && s.position.Y == 0 {
		s.position = s.SpawnPoint()
	}
}

func (s *Session) attach(kind domain.ContainerType, contents *domain.ContainerContents) *container.Container {
	c := container.FromContents(kind, contents)
	c.OnChange(func(index int, item domain.ItemStack) {
		s.deps.Store.SaveContainerSlot(s.name, kind, index, item)
	})
	return c
}

func (s *Session) becomeReady() {
	s.phase.Store(int32(PhaseReady))

	s.sendWelcome()
	s.reviewSkills()

	if s.deps.Pets != nil {
		for _, kind := range s.pets {
			if kind != 0 {
				s.deps.Pets.SpawnPet(s.id, kind, s.position)
			}
		}
	}

	delay := ReturnQuestDelay
	if s.firstLogin {
		delay = FirstLoginQuestDelay
	}
	if s.deps.Quests != nil {
		s.cancelQuest = s.deps.Loop.AfterFunc(delay, func() {
			if s.closed.Load() {
				return
			}
			s.deps.Quests.Activate(s.id)
		})
	}

	s.publish(event.NewSessionReadyEvent(s.id, s.name, s.firstLogin))
	logger.Info(LogMsgSessionReady,
		logger.AttrKeySessionID, s.id,
		logger.AttrKeyPlayer, s.name,
		"level", s.tracker.Level(),
		"first_login", s.firstLogin)
}
