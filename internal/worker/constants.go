package worker

// Log messages - worker pool
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgPoolStopping      = "Worker pool stopping"
	LogMsgPoolStopTimeout   = "Worker pool stop timed out"
)

// Log messages - event loop
const (
	LogMsgLoopTaskPanicked = "Event loop task panicked"
	LogMsgLoopStopping     = "Event loop stopping"
	LogMsgLoopTimersDrop   = "Cancelled pending loop timers"
	LogMsgLoopStopTimeout  = "Event loop stop timed out"
)

// Test pool configuration values
const (
	TestWorkerCount = 2
	TestQueueSize   = 10
)
