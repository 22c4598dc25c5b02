// Package leaktest checks that components started in a test stop their
// goroutines before the test ends.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay  = 10 * time.Millisecond
	pollInterval = 10 * time.Millisecond
	// DefaultWait bounds how long Check waits for goroutines to exit
	DefaultWait = time.Second
)

// GoroutineChecker compares the goroutine count against a baseline
type GoroutineChecker struct {
	t        testing.TB
	baseline int
	wait     time.Duration
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleDelay)

	return &GoroutineChecker{
		t:        t,
		baseline: runtime.NumGoroutine(),
		wait:     DefaultWait,
	}
}

// WithWait overrides how long Check polls before failing
func (g *GoroutineChecker) WithWait(d time.Duration) *GoroutineChecker {
	g.wait = d
	return g
}

// Check polls until at most tolerance goroutines remain above the baseline.
// Stopped loops and pools exit asynchronously, so a single sample is not
// enough.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	if leaked := g.waitFor(g.baseline + tolerance); leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: baseline=%d, now=%d, leaked=%d (tolerance=%d)",
			g.baseline, g.baseline+leaked, leaked, tolerance)
	}
}

// Leaked returns how many goroutines exist above the baseline right now
func (g *GoroutineChecker) Leaked() int {
	return runtime.NumGoroutine() - g.baseline
}

func (g *GoroutineChecker) waitFor(target int) int {
	deadline := time.Now().Add(g.wait)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target || time.Now().After(deadline) {
			return n - g.baseline
		}
		time.Sleep(pollInterval)
	}
}
