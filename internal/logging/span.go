package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Span times one stage of a pipeline run.
type Span struct {
	name   string
	logger *slog.Logger
	start  time.Time
}

// StartSpan derives a stage-scoped logger from ctx. A context without a run id gets a fresh one.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if RunIDFromContext(ctx) == "" {
		ctx = WithRunID(ctx, uuid.NewString())
	}

	logger := FromContext(ctx).With(slog.String("stage", name))
	ctx = WithLogger(ctx, logger)

	return ctx, &Span{name: name, logger: logger, start: time.Now()}
}

// End logs the stage outcome and how long it took.
func (s *Span) End(err error) {
	if s == nil {
		return
	}
	elapsed := slog.Duration("duration", time.Since(s.start))
	if err != nil {
		s.logger.Error("stage failed", elapsed, slog.String("error", err.Error()))
		return
	}
	s.logger.Info("stage completed", elapsed)
}
