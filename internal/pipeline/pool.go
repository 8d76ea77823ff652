package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/panjf2000/ants/v2"
)

// NewPool creates the worker pool that runs pipelines. A non-positive size leaves the pool
// unbounded. Panics escaping a task are logged rather than crashing the process.
func NewPool(size int, logger *slog.Logger) (*ants.Pool, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pool, err := ants.NewPool(size,
		ants.WithPanicHandler(func(p interface{}) {
			logger.Error("panic in pipeline worker", "panic", fmt.Sprint(p))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create pipeline pool: %w", err)
	}
	return pool, nil
}
