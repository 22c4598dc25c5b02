package event

import (
	"errors"
	"time"
)

// EventSchemaVersion is stamped on every event built by this package
const EventSchemaVersion = "1.0"

// ErrPayloadMismatch is returned when an event payload cannot be read as the requested type
var ErrPayloadMismatch = errors.New("event payload mismatch")

const (
	// RetryQueueBufferSize bounds the number of events waiting for a retry
	RetryQueueBufferSize = 1000

	// DeadLetterFilePermissions applies to a newly created dead-letter file
	DeadLetterFilePermissions = 0o644
)

// Log messages
const (
	LogMsgEventPublishFailed    = "Event publish failed, queued for retry"
	LogMsgRetryQueueFull        = "Retry queue full, writing event to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write dead-letter entry"
	LogMsgEventRetryExhausted   = "Event retries exhausted"
	LogMsgEventRetryFailed      = "Event retry failed"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgQueueDrainedShutdown  = "Retry queue drained to dead-letter on shutdown"
	LogMsgShutdownTimeout       = "Timed out waiting for the retry worker"
	LogMsgEventDeadLettered     = "Event dead-lettered"

	LogMsgHandlerErrorFormat = "%d handlers failed for %s: %v"
)

// CalculateRetryDelay doubles baseDelay for each attempt after the first
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
