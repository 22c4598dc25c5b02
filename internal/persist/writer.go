// Package persist issues durable writes in the background. Writes for the
// same player are executed in the order they were issued; callers never
// wait on storage.
package persist

import (
	"context"
	"fmt"

	"github.com/osse101/realmkeeper/internal/logger"
	"github.com/osse101/realmkeeper/internal/metrics"
	"github.com/osse101/realmkeeper/internal/worker"
)

// Submitter is the part of worker.Pool the writers use
type Submitter interface {
	Submit(key string, job worker.Job) error
}

type writer struct {
	pool Submitter
}

func (w writer) submit(op, key string, fn func(ctx context.Context) error) {
	job := worker.JobFunc(func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			metrics.PersistWrites.WithLabelValues(op, metrics.StatusError).Inc()
			logger.FromContext(ctx).Error(LogMsgWriteFailed, "op", op, "key", key, "error", err)
			return fmt.Errorf(ErrFmtWrite, op, key, err)
		}
		metrics.PersistWrites.WithLabelValues(op, metrics.StatusOK).Inc()
		return nil
	})

	if err := w.pool.Submit(key, job); err != nil {
		metrics.PersistWrites.WithLabelValues(op, metrics.StatusDropped).Inc()
		logger.Warn(LogMsgWriteDropped, "op", op, "key", key, "error", err)
	}
}
