package guild

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"

	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/messaging"
	"github.com/osse101/realmkeeper/internal/metrics"
	"github.com/osse101/realmkeeper/internal/naming"
)

// Catalog is the durable guild directory
type Catalog interface {
	CreateGuild(ctx context.Context, name string) (*domain.GuildRecord, error)
	LoadGuilds(ctx context.Context) ([]domain.GuildRecord, error)
}

// Timer schedules work on the event loop
type Timer interface {
	AfterFunc(d time.Duration, fn func()) (cancel func() bool)
}

// Config holds registry settings
type Config struct {
	InviteTimeout time.Duration
	// SweepInterval defaults to the invite timeout
	SweepInterval time.Duration
	// InviteRate is the sustained number of invites per second per invitor
	InviteRate  float64
	InviteBurst int
}

// Registry owns every guild known to the server. The directory itself is
// safe for concurrent use; the guilds it returns are owned by the event loop.
type Registry struct {
	mu     sync.RWMutex
	byID   map[int64]*Guild
	byName map[string]*Guild

	catalog Catalog
	deps    Deps
	config  Config

	limiters *ttlcache.Cache[string, *rate.Limiter]

	sweepMu     sync.Mutex
	sweepTimer  Timer
	sweepCancel func() bool
}

// NewRegistry creates an empty registry
func NewRegistry(catalog Catalog, deps Deps, config Config) *Registry {
	if config.InviteRate <= 0 {
		config.InviteRate = DefaultInviteRate
	}
	if config.InviteBurst <= 0 {
		config.InviteBurst = DefaultInviteBurst
	}
	if config.InviteTimeout > 0 {
		deps.InviteTimeout = config.InviteTimeout
	}
	if config.SweepInterval <= 0 {
		config.SweepInterval = deps.InviteTimeout
	}
	if config.SweepInterval <= 0 {
		config.SweepInterval = DefaultInviteTimeout
	}

	limiters := ttlcache.New[string, *rate.Limiter](
		ttlcache.WithTTL[string, *rate.Limiter](LimiterIdleTTL),
	)

	return &Registry{
		byID:     make(map[int64]*Guild),
		byName:   make(map[string]*Guild),
		catalog:  catalog,
		deps:     deps,
		config:   config,
		limiters: limiters,
	}
}

// Start runs limiter expiry until Stop
func (r *Registry) Start() {
	go r.limiters.Start()
}

// Stop ends limiter expiry and the invite sweep
func (r *Registry) Stop() {
	r.limiters.Stop()

	r.sweepMu.Lock()
	defer r.sweepMu.Unlock()
	if r.sweepCancel != nil {
		r.sweepCancel()
	}
	r.sweepTimer = nil
	r.sweepCancel = nil
}

// StartSweep expires stale invites of every guild each sweep interval, so a
// guild nobody interacts with does not hold them forever. Sweeps run on the
// timer's loop.
func (r *Registry) StartSweep(timer Timer) {
	r.sweepMu.Lock()
	defer r.sweepMu.Unlock()
	if r.sweepCancel != nil {
		r.sweepCancel()
	}
	r.sweepTimer = timer
	r.sweepCancel = timer.AfterFunc(r.config.SweepInterval, r.sweep)
}

func (r *Registry) sweep() {
	expired := 0
	for _, g := range r.All() {
		before := g.PendingInvites()
		g.CheckInvite("")
		expired += before - g.PendingInvites()
	}
	if expired > 0 {
		logger.Debug(LogMsgInvitesSwept, "count", expired)
	}

	r.sweepMu.Lock()
	defer r.sweepMu.Unlock()
	if r.sweepTimer != nil {
		r.sweepCancel = r.sweepTimer.AfterFunc(r.config.SweepInterval, r.sweep)
	}
}

func nameKey(name string) string {
	return strings.ToLower(naming.Normalize(name))
}

// Load registers every guild in the catalog. It blocks on storage.
func (r *Registry) Load(ctx context.Context) error {
	records, err := r.catalog.LoadGuilds(ctx)
	if err != nil {
		return fmt.Errorf("failed to load guilds: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		g := New(rec.ID, rec.Name, r.deps)
		r.byID[rec.ID] = g
		r.byName[nameKey(rec.Name)] = g
	}

	logger.FromContext(ctx).Info(LogMsgGuildsLoaded, "count", len(records))
	return nil
}

// Create validates name, stores a new guild and registers it. It blocks on
// storage and must not be called from the event loop.
func (r *Registry) Create(ctx context.Context, name string) (*Guild, error) {
	if err := naming.ValidateName(name); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(naming.Normalize(name))

	if _, ok := r.ByName(name); ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGuildNameTaken, name)
	}

	rec, err := r.catalog.CreateGuild(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create guild: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[nameKey(rec.Name)]; ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGuildNameTaken, name)
	}
	g := New(rec.ID, rec.Name, r.deps)
	r.byID[rec.ID] = g
	r.byName[nameKey(rec.Name)] = g

	logger.FromContext(ctx).Info(LogMsgGuildCreated, "guild", rec.Name, "id", rec.ID)
	return g, nil
}

// Get returns the guild with id
func (r *Registry) Get(id int64) (*Guild, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.byID[id]
	return g, ok
}

// ByName returns the guild with name, ignoring case
func (r *Registry) ByName(name string) (*Guild, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.byName[nameKey(name)]
	return g, ok
}

// All returns every registered guild
func (r *Registry) All() []*Guild {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Guild, 0, len(r.byID))
	for _, g := range r.byID {
		out = append(out, g)
	}
	return out
}

func (r *Registry) get(id int64) (*Guild, error) {
	g, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrGuildNotFound, id)
	}
	return g, nil
}

func (r *Registry) allowInvite(invitorID string) bool {
	item, _ := r.limiters.GetOrSet(invitorID,
		rate.NewLimiter(rate.Limit(r.config.InviteRate), r.config.InviteBurst))
	return item.Value().Allow()
}

// Invite sends an invite to guildID on behalf of invitor, subject to the
// invitor's rate limit
func (r *Registry) Invite(guildID int64, invitee, invitor Member) error {
	g, err := r.get(guildID)
	if err != nil {
		return err
	}

	if !r.allowInvite(invitor.ID()) {
		metrics.GuildInvites.WithLabelValues(metrics.InviteRateLimited).Inc()
		logger.Warn(LogMsgInviteLimited, "invitor", invitor.Name())
		r.deps.Messenger.ToPlayer(invitor.ID(), messaging.GuildError{
			Kind: messaging.GuildErrorRateLimited,
			Name: invitee.Name(),
		})
		return ErrInviteRateLimited
	}

	return g.Invite(invitee, invitor)
}

// Reply answers a pending invite
func (r *Registry) Reply(guildID int64, player Member, accept bool) (string, error) {
	g, err := r.get(guildID)
	if err != nil {
		return "", err
	}
	reply := ReplyDecline
	if accept {
		reply = ReplyAccept
	}
	return g.AddMember(player, reply)
}

// Rejoin puts a returning member back in the online set without an invite
func (r *Registry) Rejoin(guildID int64, player Member) error {
	g, err := r.get(guildID)
	if err != nil {
		return err
	}
	_, err = g.AddMember(player, ReplyNone)
	return err
}

// Leave removes player from the guild and from its offline ledger
func (r *Registry) Leave(guildID int64, player Member) error {
	g, err := r.get(guildID)
	if err != nil {
		return err
	}
	if err := g.RemoveMember(player); err != nil {
		return err
	}
	r.deps.Store.RemoveGuildMember(g.id, player.Name())
	return nil
}

// Disconnect takes player out of the online set only
func (r *Registry) Disconnect(guildID int64, player Member) {
	r.limiters.Delete(player.ID())
	if g, ok := r.Get(guildID); ok && g.IsMember(player.ID()) {
		_ = g.RemoveMember(player)
	}
}
