package transport

import "time"

// Connection defaults
const (
	DefaultSendBuffer     = 256
	DefaultWriteWait      = 10 * time.Second
	DefaultPongWait       = 60 * time.Second
	DefaultMaxMessageSize = 4 << 10

	// QueryName carries the player name on the upgrade request
	QueryName = "name"
)

// Log messages
const (
	LogMsgUpgradeFailed = "Websocket upgrade failed"
	LogMsgConnected     = "Client connected"
	LogMsgDisconnected  = "Client disconnected"
	LogMsgEncodeFailed  = "Failed to encode message"
	LogMsgDropped       = "Send queue full, message dropped"
	LogMsgInvalidName   = "Rejected connection with invalid name"
)
