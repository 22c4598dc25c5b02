package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNameExperienceAwarded     = "experience_awarded_total"
	MetricNameLevelUps              = "level_ups_total"
	MetricNameAchievementsCompleted = "achievements_completed_total"
	MetricNameSessionsActive        = "sessions_active"
	MetricNameBootstrapFailures     = "session_bootstrap_failures_total"
	MetricNameGuildMembersOnline    = "guild_members_online"
	MetricNameGuildInvites          = "guild_invites_total"
	MetricNameItemsUsed             = "items_used_total"
)

// Infrastructure metric names
const (
	MetricNamePersistWrites        = "persist_writes_total"
	MetricNameWebsocketConnections = "websocket_connections"
	MetricNameWebsocketDropped     = "websocket_messages_dropped_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextExperienceAwarded     = "Total experience awarded to players"
	HelpTextLevelUps              = "Total number of player level increases"
	HelpTextAchievementsCompleted = "Total number of achievements completed"
	HelpTextSessionsActive        = "Current number of ready player sessions"
	HelpTextBootstrapFailures     = "Total number of session bootstrap failures by phase"
	HelpTextGuildMembersOnline    = "Current number of online guild members across all guilds"
	HelpTextGuildInvites          = "Total number of guild invite outcomes"
	HelpTextItemsUsed             = "Total number of consumables used"
)

// Infrastructure metric help text
const (
	HelpTextPersistWrites        = "Total number of durable writes by operation and status"
	HelpTextWebsocketConnections = "Current number of open websocket connections"
	HelpTextWebsocketDropped     = "Total number of outbound messages dropped for slow clients"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelPhase  = "phase"
	LabelOp     = "op"
	LabelResult = "result"
	LabelItem   = "item"
)

// Label values
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusDropped = "dropped"

	InviteSent        = "sent"
	InviteRateLimited = "rate_limited"
	InviteExpired     = "expired"
	InviteAccepted    = "accepted"
	InviteDeclined    = "declined"

	PathUnmatched = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, ranging from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded          = "Metrics recorded for event"
)
