package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/world"
)

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockWorld struct {
	mock.Mock
}

func (m *MockWorld) Status(ctx context.Context) (world.Status, error) {
	args := m.Called(ctx)
	return args.Get(0).(world.Status), args.Error(1)
}

func (m *MockWorld) Guilds(ctx context.Context) ([]world.GuildSummary, error) {
	args := m.Called(ctx)
	guilds, _ := args.Get(0).([]world.GuildSummary)
	return guilds, args.Error(1)
}

func (m *MockWorld) Player(ctx context.Context, name string) (world.PlayerSummary, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(world.PlayerSummary), args.Error(1)
}

func (m *MockWorld) GrantExperience(ctx context.Context, name string, amount float64) (int, error) {
	args := m.Called(ctx, name, amount)
	return args.Int(0), args.Error(1)
}

func (m *MockWorld) ReportKill(ctx context.Context, name string, mob domain.MobInfo, baseExp float64) (int, error) {
	args := m.Called(ctx, name, mob, baseExp)
	return args.Int(0), args.Error(1)
}

func (m *MockWorld) ReportPVPKill(ctx context.Context, killer, victim string) error {
	return m.Called(ctx, killer, victim).Error(0)
}

type MockPVPStats struct {
	mock.Mock
}

func (m *MockPVPStats) Load(ctx context.Context, name string) (domain.PVPStanding, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.PVPStanding), args.Error(1)
}

func (m *MockPVPStats) IncrementKills(ctx context.Context, name string) (int, error) {
	args := m.Called(ctx, name)
	return args.Int(0), args.Error(1)
}

func (m *MockPVPStats) IncrementDeaths(ctx context.Context, name string) (int, error) {
	args := m.Called(ctx, name)
	return args.Int(0), args.Error(1)
}

func (m *MockPVPStats) Top(ctx context.Context, n int) ([]domain.PVPStanding, error) {
	args := m.Called(ctx, n)
	top, _ := args.Get(0).([]domain.PVPStanding)
	return top, args.Error(1)
}
