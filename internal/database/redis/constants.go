package redis

import "time"

// Connection defaults
const (
	DefaultPoolSize    = 10
	DefaultDialTimeout = 10 * time.Second
	DefaultIOTimeout   = 3 * time.Second
	PingTimeout        = 5 * time.Second
)

// Keys
const (
	pvpKillsKey  = "pvp:kills"
	pvpDeathsKey = "pvp:deaths"
)

// Log messages
const (
	LogMsgConnected = "Connected to Redis"
)
