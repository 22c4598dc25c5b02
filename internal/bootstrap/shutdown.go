package bootstrap

import (
	"context"

	"github.com/osse101/realmkeeper/internal/cooldown"
	"github.com/osse101/realmkeeper/internal/event"
	"github.com/osse101/realmkeeper/internal/guild"
	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/server"
	"github.com/osse101/realmkeeper/internal/transport"
	"github.com/osse101/realmkeeper/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Hub                *transport.Hub
	Loop               *worker.Loop
	WritePool          *worker.Pool
	Guilds             *guild.Registry
	Cooldowns          *cooldown.Service
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops components in dependency order:
//  1. HTTP server, so no new requests or connections arrive
//  2. hub, closing every client; disconnects are posted to the loop
//  3. loop, which drains those disconnects and their position saves
//  4. write pool, flushing queued writes to storage
//  5. event publisher, flushing pending events
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)

	if err := c.Server.Stop(ctx); err != nil {
		logger.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if err := c.Hub.Drain(ctx); err != nil {
		logger.Error(LogMsgHubDrainFailed, "error", err)
	}

	if err := c.Loop.Stop(ctx); err != nil {
		logger.Error(LogMsgLoopShutdownFailed, "error", err)
	}

	c.Guilds.Stop()
	c.Cooldowns.Stop()

	if err := c.WritePool.Stop(ctx); err != nil {
		logger.Error(LogMsgWriterShutdownFailed, "error", err)
	}

	logger.Info(LogMsgShuttingDownEventPublisher)
	if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
		logger.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	logger.Info(LogMsgServerStopped)
}
