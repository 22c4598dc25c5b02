package persist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/worker"
)

type call struct {
	op   string
	name string
	args []any
}

// fakePlayerRepo records every write it receives
type fakePlayerRepo struct {
	mu    sync.Mutex
	calls []call
	fail  error
}

func (f *fakePlayerRepo) record(op, name string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: op, name: name, args: args})
	return f.fail
}

func (f *fakePlayerRepo) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakePlayerRepo) SaveExperience(_ context.Context, name string, exp int64) error {
	return f.record(OpSaveExperience, name, exp)
}
func (f *fakePlayerRepo) SaveEquipment(_ context.Context, name string, slot int, r domain.EquipRecord) error {
	return f.record(OpSaveEquipment, name, slot, r)
}
func (f *fakePlayerRepo) SaveWeaponEnchant(_ context.Context, name string, p int) error {
	return f.record(OpSaveWeaponEnchant, name, p)
}
func (f *fakePlayerRepo) SaveWeaponSkill(_ context.Context, name string, k, l int) error {
	return f.record(OpSaveWeaponSkill, name, k, l)
}
func (f *fakePlayerRepo) FoundAchievement(_ context.Context, name string, id int) error {
	return f.record(OpFoundAchievement, name, id)
}
func (f *fakePlayerRepo) ProgressAchievement(_ context.Context, name string, id, p int) error {
	return f.record(OpProgressAchievement, name, id, p)
}
func (f *fakePlayerRepo) SaveSkill(_ context.Context, name string, i, l int) error {
	return f.record(OpSaveSkill, name, i, l)
}
func (f *fakePlayerRepo) SavePoison(_ context.Context, name string, p bool) error {
	return f.record(OpSavePoison, name, p)
}
func (f *fakePlayerRepo) SavePosition(_ context.Context, name string, pos domain.Position) error {
	return f.record(OpSavePosition, name, pos)
}
func (f *fakePlayerRepo) SaveContainerSlot(_ context.Context, name string, c domain.ContainerType, i int, item domain.ItemStack) error {
	return f.record(OpSaveContainerSlot, name, c, i, item)
}

// mockPVPStats is a testify mock for repository.PVPStats
type mockPVPStats struct {
	mock.Mock
}

func (m *mockPVPStats) Load(ctx context.Context, name string) (domain.PVPStanding, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.PVPStanding), args.Error(1)
}
func (m *mockPVPStats) IncrementKills(ctx context.Context, name string) (int, error) {
	args := m.Called(ctx, name)
	return args.Int(0), args.Error(1)
}
func (m *mockPVPStats) IncrementDeaths(ctx context.Context, name string) (int, error) {
	args := m.Called(ctx, name)
	return args.Int(0), args.Error(1)
}
func (m *mockPVPStats) Top(ctx context.Context, n int) ([]domain.PVPStanding, error) {
	args := m.Called(ctx, n)
	return args.Get(0).([]domain.PVPStanding), args.Error(1)
}

type fullPool struct{}

func (fullPool) Submit(string, worker.Job) error { return worker.ErrQueueFull }

func TestPlayerWriter_PerPlayerOrder(t *testing.T) {
	repo := &fakePlayerRepo{}
	pool := worker.NewPool(4, 256)
	pool.Start()
	w := NewPlayerWriter(repo, nil, pool)

	for i := 1; i <= 50; i++ {
		w.SaveExperience("alice", int64(i))
		w.SaveExperience(fmt.Sprintf("other-%d", i), int64(i))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, pool.Stop(ctx))

	var seen []int64
	for _, c := range repo.Calls() {
		if c.name == "alice" {
			seen = append(seen, c.args[0].(int64))
		}
	}
	require.Len(t, seen, 50)
	for i, v := range seen {
		assert.Equal(t, int64(i+1), v, "writes for one player keep issue order")
	}
}

func TestPlayerWriter_ForwardsArguments(t *testing.T) {
	repo := &fakePlayerRepo{}
	pool := worker.NewPool(1, 16)
	pool.Start()
	w := NewPlayerWriter(repo, nil, pool)

	rec := domain.EquipRecord{Kind: 21, EnchantedPoint: 3, SkillKind: 1, SkillLevel: 2}
	w.SaveEquipment("bob", 1, rec)
	w.ProgressAchievement("bob", 4, 7)
	w.SaveContainerSlot("bob", domain.ContainerBank, 2, domain.ItemStack{Kind: 35, Count: 1})
	w.RecordPVPKill("bob")

	require.NoError(t, pool.Stop(context.Background()))

	calls := repo.Calls()
	require.Len(t, calls, 3, "pvp writes are skipped without a stats store")
	assert.Equal(t, call{op: OpSaveEquipment, name: "bob", args: []any{1, rec}}, calls[0])
	assert.Equal(t, []any{4, 7}, calls[1].args)
	assert.Equal(t, domain.ContainerBank, calls[2].args[0])
}

func TestPlayerWriter_PVPCounters(t *testing.T) {
	pvp := &mockPVPStats{}
	pvp.On("IncrementKills", mock.Anything, "carol").Return(3, nil).Once()
	pvp.On("IncrementDeaths", mock.Anything, "carol").Return(0, errors.New("redis down")).Once()

	pool := worker.NewPool(1, 16)
	pool.Start()
	w := NewPlayerWriter(&fakePlayerRepo{}, pvp, pool)

	w.RecordPVPKill("carol")
	w.RecordPVPDeath("carol")
	require.NoError(t, pool.Stop(context.Background()))

	pvp.AssertExpectations(t)
}

func TestPlayerWriter_FailuresAreReported(t *testing.T) {
	repo := &fakePlayerRepo{fail: errors.New("db down")}
	pool := worker.NewPool(1, 16)

	var mu sync.Mutex
	var failures []error
	pool.OnError = func(_ worker.Job, err error) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, err)
	}
	pool.Start()

	NewPlayerWriter(repo, nil, pool).SavePoison("dave", true)
	require.NoError(t, pool.Stop(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], repo.fail)
	assert.Contains(t, failures[0].Error(), OpSavePoison)
}

func TestWriter_QueueFullDropsWrite(t *testing.T) {
	repo := &fakePlayerRepo{}
	w := NewPlayerWriter(repo, nil, fullPool{})

	assert.NotPanics(t, func() { w.SaveExperience("erin", 10) })
	assert.Empty(t, repo.Calls())
}
