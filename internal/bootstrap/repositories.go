package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/realmkeeper/internal/database/postgres"
	"github.com/osse101/realmkeeper/internal/database/redis"
	"github.com/osse101/realmkeeper/internal/persist"
	"github.com/osse101/realmkeeper/internal/worker"
)

// Repositories holds the storage implementations and the background
// writers layered over them
type Repositories struct {
	Players *postgres.PlayerRepository
	Guilds  *postgres.GuildRepository
	PVP     *redis.PVPStats

	PlayerWriter *persist.PlayerWriter
	GuildWriter  *persist.GuildWriter
}

// InitializeRepositories creates all repositories. Writes are queued on
// pool, keyed by player so each player's writes stay ordered.
func InitializeRepositories(dbPool *pgxpool.Pool, redisClient *redis.Client, pool *worker.Pool) *Repositories {
	players := postgres.NewPlayerRepository(dbPool)
	guilds := postgres.NewGuildRepository(dbPool)
	pvp := redis.NewPVPStats(redisClient)

	return &Repositories{
		Players:      players,
		Guilds:       guilds,
		PVP:          pvp,
		PlayerWriter: persist.NewPlayerWriter(players, pvp, pool),
		GuildWriter:  persist.NewGuildWriter(guilds, pool),
	}
}
