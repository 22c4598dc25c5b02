package guild

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/messaging"
	"github.com/osse101/realmkeeper/internal/messaging/messagingtest"
	"github.com/osse101/realmkeeper/internal/naming"
)

type fakeCatalog struct {
	records []domain.GuildRecord
	nextID  int64
	err     error
}

func (c *fakeCatalog) CreateGuild(_ context.Context, name string) (*domain.GuildRecord, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.nextID++
	rec := domain.GuildRecord{ID: c.nextID, Name: name}
	c.records = append(c.records, rec)
	return &rec, nil
}

func (c *fakeCatalog) LoadGuilds(context.Context) ([]domain.GuildRecord, error) {
	return c.records, c.err
}

func newRegistry(t *testing.T, cfg Config) (*Registry, *fakeStore, *messagingtest.Recorder) {
	t.Helper()
	store := &fakeStore{}
	msgs := &messagingtest.Recorder{}
	catalog := &fakeCatalog{records: []domain.GuildRecord{{ID: 1, Name: "Alpha"}}, nextID: 1}
	r := NewRegistry(catalog, Deps{Store: store, Messenger: msgs}, cfg)
	require.NoError(t, r.Load(context.Background()))
	return r, store, msgs
}

func TestRegistry_LoadAndLookup(t *testing.T) {
	r, _, _ := newRegistry(t, Config{})

	g, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Alpha", g.Name())

	byName, ok := r.ByName("alpha")
	require.True(t, ok)
	assert.Same(t, g, byName)

	_, ok = r.Get(99)
	assert.False(t, ok)
}

func TestRegistry_Create(t *testing.T) {
	r, _, _ := newRegistry(t, Config{})
	ctx := context.Background()

	g, err := r.Create(ctx, "Beta")
	require.NoError(t, err)
	assert.Equal(t, int64(2), g.ID())
	assert.Len(t, r.All(), 2)

	_, err = r.Create(ctx, "ALPHA")
	assert.ErrorIs(t, err, domain.ErrGuildNameTaken)

	_, err = r.Create(ctx, "bad@name")
	assert.ErrorIs(t, err, naming.ErrInvalidName)
}

func TestRegistry_CreateStorageFailure(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("db down")}
	r := NewRegistry(catalog, Deps{Store: &fakeStore{}, Messenger: &messagingtest.Recorder{}}, Config{})

	_, err := r.Create(context.Background(), "Gamma")
	assert.Error(t, err)
	_, ok := r.ByName("Gamma")
	assert.False(t, ok)
}

func TestRegistry_InviteRateLimit(t *testing.T) {
	r, _, msgs := newRegistry(t, Config{InviteRate: 0.001, InviteBurst: 2})
	leader := &fakeMember{id: "p1", name: "Leader"}

	require.NoError(t, r.Invite(1, &fakeMember{id: "p2", name: "A"}, leader))
	require.NoError(t, r.Invite(1, &fakeMember{id: "p3", name: "B"}, leader))

	err := r.Invite(1, &fakeMember{id: "p4", name: "C"}, leader)
	assert.ErrorIs(t, err, ErrInviteRateLimited)

	errs := messagingtest.OfType(msgs.To("p1"), messaging.TypeGuildError)
	require.Len(t, errs, 1)
	assert.Equal(t, []any{messaging.GuildErrorRateLimited, "C"}, errs[0].Fields())

	require.NoError(t, r.Invite(1, &fakeMember{id: "p4", name: "C"}, &fakeMember{id: "p9", name: "Other"}),
		"limits are per invitor")
}

func TestRegistry_ReplyLeaveDisconnect(t *testing.T) {
	r, store, _ := newRegistry(t, Config{})
	leader := &fakeMember{id: "p1", name: "Leader"}
	p := &fakeMember{id: "p2", name: "Pat"}

	require.NoError(t, r.Rejoin(1, leader))
	require.NoError(t, r.Invite(1, p, leader))

	id, err := r.Reply(1, p, true)
	require.NoError(t, err)
	assert.Equal(t, "p2", id)

	require.NoError(t, r.Leave(1, p))
	assert.Equal(t, storeCall{"remove_member", 1, "Pat"}, store.calls[len(store.calls)-1])
	assert.ErrorIs(t, r.Leave(1, p), ErrNotMember)

	before := len(store.calls)
	r.Disconnect(1, leader)
	g, _ := r.Get(1)
	assert.Zero(t, g.Population())
	assert.Len(t, store.calls, before, "disconnect keeps the offline ledger")

	_, err = r.Reply(42, p, true)
	assert.ErrorIs(t, err, domain.ErrGuildNotFound)
}

type fakeTimer struct {
	delays  []time.Duration
	pending func()
	cancels int
}

func (f *fakeTimer) AfterFunc(d time.Duration, fn func()) func() bool {
	f.delays = append(f.delays, d)
	f.pending = fn
	return func() bool {
		f.cancels++
		return true
	}
}

func (f *fakeTimer) fire() {
	fn := f.pending
	f.pending = nil
	fn()
}

func TestRegistry_SweepExpiresIdleInvites(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := &fakeStore{}
	catalog := &fakeCatalog{records: []domain.GuildRecord{{ID: 1, Name: "Alpha"}, {ID: 2, Name: "Beta"}}}
	r := NewRegistry(catalog, Deps{Store: store, Messenger: &messagingtest.Recorder{}, Clock: clock.Now}, Config{InviteTimeout: time.Minute})
	require.NoError(t, r.Load(context.Background()))

	leader := &fakeMember{id: "p1", name: "Leader"}
	require.NoError(t, r.Invite(1, &fakeMember{id: "p2", name: "Pat"}, leader))
	require.NoError(t, r.Invite(2, &fakeMember{id: "p3", name: "Sam"}, leader))

	timer := &fakeTimer{}
	r.StartSweep(timer)
	require.Equal(t, []time.Duration{time.Minute}, timer.delays)

	// nothing is stale yet
	timer.fire()
	alpha, _ := r.Get(1)
	beta, _ := r.Get(2)
	assert.Equal(t, 1, alpha.PendingInvites())
	assert.Equal(t, 1, beta.PendingInvites())

	clock.Advance(2 * time.Minute)
	timer.fire()

	assert.Zero(t, alpha.PendingInvites())
	assert.Zero(t, beta.PendingInvites())
	assert.Contains(t, store.calls, storeCall{"remove_invite", 1, "Pat"})
	assert.Contains(t, store.calls, storeCall{"remove_invite", 2, "Sam"})
	assert.Len(t, timer.delays, 3, "every sweep re-arms the timer")

	r.Stop()
	assert.Equal(t, 1, timer.cancels)
}

func TestRegistry_SweepIntervalDefaultsToInviteTimeout(t *testing.T) {
	r, _, _ := newRegistry(t, Config{})
	timer := &fakeTimer{}

	r.StartSweep(timer)
	r.Stop()

	assert.Equal(t, []time.Duration{DefaultInviteTimeout}, timer.delays)
}
