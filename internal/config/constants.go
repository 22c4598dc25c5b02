package config

import "time"

const (
	// Configuration file paths
	ConfigPathAchievements = "configs/achievements.json"
	ConfigPathItems        = "configs/items.json"
)

// Defaults applied when the matching environment variable is absent.
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultLogDir          = "logs"
	DefaultEnvironment     = "dev"
	DefaultServiceName     = "realmkeeper"
	DefaultVersion         = "dev"
	DefaultDBMaxConns      = 10
	DefaultRedisPoolSize   = 10
	DefaultInviteTimeout   = 10 * time.Minute
	DefaultInviteRate      = 1
	DefaultInviteBurst     = 5
	DefaultWriteWorkers    = 4
	DefaultWriteQueueSize  = 256
	DefaultExpMultiplier   = 1.0
	DefaultShutdownTimeout = 10 * time.Second
)
