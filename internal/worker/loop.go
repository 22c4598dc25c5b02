package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/realmkeeper/internal/logger"
)

// ErrLoopStopped is returned when posting to a stopped loop
var ErrLoopStopped = errors.New("event loop stopped")

// Loop runs tasks one at a time on a single goroutine. Every piece of game
// state is owned by the loop, so tasks never need locks among themselves.
// The queue is unbounded and posting never blocks.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	stopped bool
	timers  map[uuid.UUID]*time.Timer

	wake chan struct{}
	done chan struct{}
}

// NewLoop creates a loop. Call Start before posting.
func NewLoop() *Loop {
	return &Loop{
		timers: make(map[uuid.UUID]*time.Timer),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Start launches the loop goroutine
func (l *Loop) Start() {
	go l.run()
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		stopped := l.stopped
		l.mu.Unlock()

		for _, fn := range batch {
			l.exec(fn)
		}

		if len(batch) == 0 {
			if stopped {
				return
			}
			<-l.wake
		}
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(context.Background()).Error(LogMsgLoopTaskPanicked, "panic", r)
		}
	}()
	fn()
}

// Post queues fn to run on the loop
func (l *Loop) Post(fn func()) error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return ErrLoopStopped
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Do runs fn on the loop and waits for it to finish. If ctx ends first Do
// returns ctx.Err() and fn may still run later, so fn must re-check any
// validity it depends on. Do must not be called from the loop itself.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AfterFunc posts fn to the loop once d has elapsed. The returned function
// cancels the timer and reports whether it was still pending.
func (l *Loop) AfterFunc(d time.Duration, fn func()) (cancel func() bool) {
	id := uuid.New()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return func() bool { return false }
	}

	timer := time.AfterFunc(d, func() {
		l.removeTimer(id)
		_ = l.Post(fn)
	})
	l.timers[id] = timer

	return func() bool {
		l.removeTimer(id)
		return timer.Stop()
	}
}

func (l *Loop) removeTimer(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.timers, id)
}

// Stop refuses new tasks, cancels pending timers, runs what is already
// queued and waits for the loop goroutine to exit
func (l *Loop) Stop(ctx context.Context) error {
	log := logger.FromContext(ctx)

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return nil
	}
	l.stopped = true
	pending := len(l.timers)
	for id, timer := range l.timers {
		timer.Stop()
		delete(l.timers, id)
	}
	l.mu.Unlock()

	log.Info(LogMsgLoopStopping)
	if pending > 0 {
		log.Info(LogMsgLoopTimersDrop, "count", pending)
	}
	select {
	case l.wake <- struct{}{}:
	default:
	}

	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgLoopStopTimeout)
		return ctx.Err()
	}
}
