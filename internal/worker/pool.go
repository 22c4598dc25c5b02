package worker

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/osse101/realmkeeper/internal/logger"
)

// Pool errors
var (
	ErrQueueFull   = errors.New("worker queue full")
	ErrPoolStopped = errors.New("worker pool stopped")
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool runs jobs on a fixed set of workers. Jobs submitted under the same
// key always land on the same worker, so they run one at a time in
// submission order.
type Pool struct {
	shards []chan Job
	wg     sync.WaitGroup

	mu      sync.RWMutex
	stopped bool

	// OnError is called after a job fails. It may be nil.
	OnError func(job Job, err error)
}

// NewPool creates a pool with one queue of queueSize per worker
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{shards: make([]chan Job, workers)}
	for i := range p.shards {
		p.shards[i] = make(chan Job, queueSize)
	}
	return p
}

// Start starts the workers
func (p *Pool) Start() {
	for _, shard := range p.shards {
		p.wg.Add(1)
		go p.worker(shard)
	}
}

func (p *Pool) worker(queue <-chan Job) {
	defer p.wg.Done()
	ctx := context.Background()
	for job := range queue {
		p.process(ctx, job)
	}
}

func (p *Pool) process(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgWorkerJobPanicked, "panic", r)
		}
	}()

	if err := job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
		if p.OnError != nil {
			p.OnError(job, err)
		}
	}
}

// Submit queues job on the worker owning key. It never blocks: a full
// queue is reported with ErrQueueFull.
func (p *Pool) Submit(key string, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case p.shards[p.shardFor(key)] <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Enqueue queues job without ordering guarantees relative to other jobs
func (p *Pool) Enqueue(job Job) error {
	return p.Submit("", job)
}

func (p *Pool) shardFor(key string) int {
	if len(p.shards) == 1 {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(p.shards)))
}

// Stop refuses new jobs, lets queued jobs finish and waits for the workers
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	for _, shard := range p.shards {
		close(shard)
	}
	p.mu.Unlock()

	log := logger.FromContext(ctx)
	log.Info(LogMsgPoolStopping)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgPoolStopTimeout)
		return ctx.Err()
	}
}
