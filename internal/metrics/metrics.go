package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	ExperienceAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameExperienceAwarded,
			Help: HelpTextExperienceAwarded,
		},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	AchievementsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsCompleted,
			Help: HelpTextAchievementsCompleted,
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSessionsActive,
			Help: HelpTextSessionsActive,
		},
	)

	BootstrapFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBootstrapFailures,
			Help: HelpTextBootstrapFailures,
		},
		[]string{LabelPhase},
	)

	GuildMembersOnline = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameGuildMembersOnline,
			Help: HelpTextGuildMembersOnline,
		},
	)

	GuildInvites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGuildInvites,
			Help: HelpTextGuildInvites,
		},
		[]string{LabelResult},
	)

	ItemsUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsUsed,
			Help: HelpTextItemsUsed,
		},
		[]string{LabelItem},
	)
)

// Infrastructure Metrics
var (
	PersistWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePersistWrites,
			Help: HelpTextPersistWrites,
		},
		[]string{LabelOp, LabelStatus},
	)

	WebsocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameWebsocketConnections,
			Help: HelpTextWebsocketConnections,
		},
	)

	WebsocketDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWebsocketDropped,
			Help: HelpTextWebsocketDropped,
		},
	)
)
