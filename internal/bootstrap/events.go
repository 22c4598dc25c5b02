package bootstrap

import (
	"fmt"
	"path/filepath"

	"github.com/osse101/realmkeeper/internal/config"
	"github.com/osse101/realmkeeper/internal/event"
	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/metrics"
)

// InitializeEventSystem creates the in-memory bus wrapped in a resilient
// publisher that retries failed publishes and dead-letters the rest into
// the log directory. The metrics collector is subscribed before returning.
func InitializeEventSystem(cfg *config.Config) (*event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	deadLetterPath := filepath.Join(cfg.LogDir, EventDeadLetterFile)
	publisher, err := event.NewResilientPublisher(bus, EventDefaultMaxRetries, EventDefaultRetryDelay, deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	if err := metrics.NewEventMetricsCollector().Register(publisher); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	logger.Info(LogMsgMetricsCollectorRegistered)

	logger.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)

	return publisher, nil
}
