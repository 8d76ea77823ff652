// Package pipeline sequences script generation, media acquisition and publishing for one topic
// and reports progress as a stream of events.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/shortsgen/backend/internal/logging"
	"github.com/shortsgen/backend/internal/media"
	"github.com/shortsgen/backend/internal/models"
	"github.com/shortsgen/backend/internal/publisher"
	"github.com/shortsgen/backend/internal/session"
)

const (
	StatusScripting  = "Generating script..."
	StatusPrompting  = "Creating video concept..."
	StatusAcquiring  = "Generating video (this may take a few minutes)..."
	StatusPublishing = "Uploading to YouTube..."
	StatusDone       = "Upload complete!"

	// eventBuffer holds every event a run can emit so the producer never waits on the consumer.
	eventBuffer = 5
)

// ScriptWriter produces the text artifacts of a run.
type ScriptWriter interface {
	Script(ctx context.Context, topic string) (string, error)
	VisualPrompt(ctx context.Context, script string) (string, error)
}

// Submitter runs tasks asynchronously. *ants.Pool satisfies it.
type Submitter interface {
	Submit(task func()) error
}

// Request describes one generation run.
type Request struct {
	Topic       string
	Credentials *oauth2.Token
}

// Orchestrator runs the generation pipeline.
type Orchestrator struct {
	writer    ScriptWriter
	acquirer  media.Acquirer
	publisher publisher.Publisher
	pool      Submitter
}

// NewOrchestrator wires the pipeline stages.
func NewOrchestrator(writer ScriptWriter, acquirer media.Acquirer, pub publisher.Publisher, pool Submitter) (*Orchestrator, error) {
	switch {
	case writer == nil:
		return nil, errors.New("pipeline: script writer must be provided")
	case acquirer == nil:
		return nil, errors.New("pipeline: media acquirer must be provided")
	case pub == nil:
		return nil, errors.New("pipeline: publisher must be provided")
	case pool == nil:
		return nil, errors.New("pipeline: worker pool must be provided")
	}
	return &Orchestrator{writer: writer, acquirer: acquirer, publisher: pub, pool: pool}, nil
}

// Validate checks the run preconditions without starting anything.
func Validate(req Request) error {
	if strings.TrimSpace(req.Topic) == "" {
		return ErrTopicRequired
	}
	if !session.Usable(req.Credentials) {
		return ErrNotAuthenticated
	}
	return nil
}

// Start validates req and launches the run. The returned channel receives one status event per
// stage followed by either a terminal success event or a single error event, then closes.
// Cancelling ctx does not stop the run.
func (o *Orchestrator) Start(ctx context.Context, req Request) (<-chan models.Event, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	req.Topic = strings.TrimSpace(req.Topic)

	runID := uuid.NewString()
	runCtx := context.WithoutCancel(ctx)
	runCtx = logging.WithRunID(runCtx, runID)

	events := make(chan models.Event, eventBuffer)
	if err := o.pool.Submit(func() { o.run(runCtx, req, events) }); err != nil {
		close(events)
		return nil, fmt.Errorf("pipeline: schedule run: %w", err)
	}

	logging.FromContext(runCtx).Info("pipeline run started", "topic", req.Topic)
	return events, nil
}

func (o *Orchestrator) run(ctx context.Context, req Request, events chan<- models.Event) {
	logger := logging.FromContext(ctx)
	defer close(events)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("pipeline run panicked", "panic", r)
			events <- errorEvent(fmt.Errorf("%v", r))
		}
	}()

	var script, prompt string
	var ref models.MediaReference
	var video models.PublishedVideo

	stages := []struct {
		stage  models.Stage
		status string
		fn     func(context.Context) error
	}{
		{models.StageScripting, StatusScripting, func(ctx context.Context) (err error) {
			script, err = o.writer.Script(ctx, req.Topic)
			return err
		}},
		{models.StagePrompting, StatusPrompting, func(ctx context.Context) (err error) {
			prompt, err = o.writer.VisualPrompt(ctx, script)
			return err
		}},
		{models.StageAcquiring, StatusAcquiring, func(ctx context.Context) (err error) {
			ref, err = o.acquirer.Acquire(ctx, prompt)
			return err
		}},
		{models.StagePublishing, StatusPublishing, func(ctx context.Context) (err error) {
			video, err = o.publisher.Publish(ctx, ref, publisher.BuildMetadata(req.Topic, script), req.Credentials)
			return err
		}},
	}

	for _, s := range stages {
		events <- models.Event{Status: s.status, Stage: s.stage}

		stageCtx, span := logging.StartSpan(ctx, string(s.stage))
		err := s.fn(stageCtx)
		span.End(err)

		if err != nil {
			events <- errorEvent(err)
			return
		}
	}

	logger.Info("pipeline run completed", "videoUrl", video.URL)
	events <- models.Event{
		Status:      StatusDone,
		VideoURL:    video.URL,
		Script:      script,
		VideoPrompt: prompt,
		Stage:       models.StageDone,
	}
}

func errorEvent(err error) models.Event {
	msg := err.Error()
	if msg == "" {
		msg = fallbackMessage
	}
	return models.Event{Error: msg, Stage: models.StageErrored}
}
