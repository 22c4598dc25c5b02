package world

import (
	"context"
	"fmt"
	"sort"

	"github.com/osse101/realmkeeper/internal/domain"
	"github.com/osse101/realmkeeper/internal/session"
)

// Status summarizes the world
type Status struct {
	Online int `json:"online"`
	Lobby  int `json:"lobby"`
	Guilds int `json:"guilds"`
}

// PlayerSummary is a read-only view of an online player
type PlayerSummary struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Level        int             `json:"level"`
	Experience   int64           `json:"experience"`
	Class        int             `json:"class"`
	HitPoints    int             `json:"hit_points"`
	MaxHitPoints int             `json:"max_hit_points"`
	Mana         int             `json:"mana"`
	MaxMana      int             `json:"max_mana"`
	Position     domain.Position `json:"position"`
	GuildID      int64           `json:"guild_id"`
	PVP          bool            `json:"pvp"`
	InLobby      bool            `json:"in_lobby"`
	Kills        int             `json:"kills"`
	Deaths       int             `json:"deaths"`
}

// GuildSummary lists a guild and its online members
type GuildSummary struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Population int      `json:"population"`
	Members    []string `json:"members"`
}

func summarize(s *session.Session) PlayerSummary {
	kills, deaths := s.PVPRecord()
	return PlayerSummary{
		ID:           s.ID(),
		Name:         s.Name(),
		Level:        s.Level(),
		Experience:   s.Experience(),
		Class:        int(s.Class()),
		HitPoints:    s.HitPoints(),
		MaxHitPoints: s.MaxHitPoints(),
		Mana:         s.Mana(),
		MaxMana:      s.MaxMana(),
		Position:     s.Position(),
		GuildID:      s.GuildID(),
		PVP:          s.InPVP(),
		InLobby:      s.InLobby(),
		Kills:        kills,
		Deaths:       deaths,
	}
}

// Status counts ready sessions, lobby players and guilds
func (w *World) Status(ctx context.Context) (Status, error) {
	var st Status
	err := w.deps.Loop.Do(ctx, func() {
		for _, s := range w.sessions {
			if s.IsReady() {
				st.Online++
			}
		}
		st.Lobby = w.lobby.Size()
		st.Guilds = len(w.deps.Guilds.All())
	})
	if err != nil {
		return Status{}, err
	}
	return st, nil
}

// Player returns the summary of an online player by name
func (w *World) Player(ctx context.Context, name string) (PlayerSummary, error) {
	var (
		out   PlayerSummary
		found bool
	)
	err := w.deps.Loop.Do(ctx, func() {
		if s, ok := w.ready(name); ok {
			out, found = summarize(s), true
		}
	})
	if err != nil {
		return PlayerSummary{}, err
	}
	if !found {
		return PlayerSummary{}, fmt.Errorf("%w: %s", ErrPlayerOffline, name)
	}
	return out, nil
}

// Guilds lists every guild by name
func (w *World) Guilds(ctx context.Context) ([]GuildSummary, error) {
	var out []GuildSummary
	err := w.deps.Loop.Do(ctx, func() {
		for _, g := range w.deps.Guilds.All() {
			out = append(out, GuildSummary{
				ID:         g.ID(),
				Name:       g.Name(),
				Population: g.Population(),
				Members:    g.MemberNames(),
			})
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GrantExperience awards experience to an online player and returns the
// amount credited
func (w *World) GrantExperience(ctx context.Context, name string, amount float64) (int, error) {
	return w.withPlayer(ctx, name, func(s *session.Session) (int, error) {
		return s.IncExp(amount, nil), nil
	})
}

// ReportKill credits name with killing mob
func (w *World) ReportKill(ctx context.Context, name string, mob domain.MobInfo, baseExp float64) (int, error) {
	return w.withPlayer(ctx, name, func(s *session.Session) (int, error) {
		return s.OnKill(mob, baseExp)
	})
}

// ReportPVPKill records a PVP kill. Either side may be offline, in which
// case only the online side is updated.
func (w *World) ReportPVPKill(ctx context.Context, killer, victim string) error {
	var found bool
	err := w.deps.Loop.Do(context.WithoutCancel(ctx), func() {
		if s, ok := w.ready(killer); ok {
			s.AddPVPKill()
			found = true
		}
		if s, ok := w.ready(victim); ok {
			s.AddPVPDeath()
			found = true
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s, %s", ErrPlayerOffline, killer, victim)
	}
	return nil
}

// withPlayer runs a mutation on the loop. Once queued the mutation always
// applies, so the caller waits for it regardless of ctx and the result it
// gets matches what happened.
func (w *World) withPlayer(ctx context.Context, name string, fn func(*session.Session) (int, error)) (int, error) {
	var (
		n     int
		fnErr error
		found bool
	)
	err := w.deps.Loop.Do(context.WithoutCancel(ctx), func() {
		s, ok := w.ready(name)
		if !ok {
			return
		}
		found = true
		n, fnErr = fn(s)
	})
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrPlayerOffline, name)
	}
	return n, fnErr
}

// ready must be called on the loop
func (w *World) ready(name string) (*session.Session, bool) {
	s, ok := w.byName[nameKey(name)]
	if !ok || !s.IsReady() {
		return nil, false
	}
	return s, true
}
