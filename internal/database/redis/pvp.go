package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/realmkeeper/internal/domain"
)

// PVPStats keeps kill and death counters in two sorted sets keyed by
// player name, so the kill set doubles as the leaderboard.
type PVPStats struct {
	client *Client
}

// NewPVPStats implements repository.PVPStats
func NewPVPStats(client *Client) *PVPStats {
	return &PVPStats{client: client}
}

func (s *PVPStats) IncrementKills(ctx context.Context, name string) (int, error) {
	return s.incr(ctx, pvpKillsKey, name)
}

func (s *PVPStats) IncrementDeaths(ctx context.Context, name string) (int, error) {
	return s.incr(ctx, pvpDeathsKey, name)
}

func (s *PVPStats) incr(ctx context.Context, key, name string) (int, error) {
	score, err := s.client.ZIncrBy(ctx, key, 1, name).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s for %s: %w", key, name, err)
	}
	return int(score), nil
}

// Load returns zero counters for a player who never fought
func (s *PVPStats) Load(ctx context.Context, name string) (domain.PVPStanding, error) {
	pipe := s.client.Pipeline()
	kills := pipe.ZScore(ctx, pvpKillsKey, name)
	deaths := pipe.ZScore(ctx, pvpDeathsKey, name)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return domain.PVPStanding{}, fmt.Errorf("failed to load pvp stats for %s: %w", name, err)
	}

	return domain.PVPStanding{
		Name:   name,
		Kills:  scoreOf(kills),
		Deaths: scoreOf(deaths),
	}, nil
}

// Top returns the n players with the most kills, highest first
func (s *PVPStats) Top(ctx context.Context, n int) ([]domain.PVPStanding, error) {
	if n <= 0 {
		return []domain.PVPStanding{}, nil
	}

	leaders, err := s.client.ZRevRangeWithScores(ctx, pvpKillsKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get pvp leaderboard: %w", err)
	}

	pipe := s.client.Pipeline()
	deaths := make([]*redis.FloatCmd, len(leaders))
	for i, z := range leaders {
		deaths[i] = pipe.ZScore(ctx, pvpDeathsKey, memberName(z))
	}
	if len(leaders) > 0 {
		if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("failed to get pvp deaths: %w", err)
		}
	}

	out := make([]domain.PVPStanding, len(leaders))
	for i, z := range leaders {
		out[i] = domain.PVPStanding{
			Name:   memberName(z),
			Kills:  int(z.Score),
			Deaths: scoreOf(deaths[i]),
		}
	}
	return out, nil
}

func scoreOf(cmd *redis.FloatCmd) int {
	v, err := cmd.Result()
	if err != nil {
		return 0
	}
	return int(v)
}

func memberName(z redis.Z) string {
	if s, ok := z.Member.(string); ok {
		return s
	}
	return fmt.Sprint(z.Member)
}
