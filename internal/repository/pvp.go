package repository

import (
	"context"

	"github.com/osse101/realmkeeper/internal/domain"
)

// PVPStats stores kill and death counters
type PVPStats interface {
	Load(ctx context.Context, name string) (domain.PVPStanding, error)
	IncrementKills(ctx context.Context, name string) (int, error)
	IncrementDeaths(ctx context.Context, name string) (int, error)
	Top(ctx context.Context, n int) ([]domain.PVPStanding, error)
}
