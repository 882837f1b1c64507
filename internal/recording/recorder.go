package recording

import (
	"context"
	"time"

	"github.com/gatelink/gatelink/internal/events"
	"github.com/gatelink/gatelink/internal/infrastructure/logger"
	"github.com/gatelink/gatelink/internal/processing/redirect"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClickStore is the durable side of click recording.
type ClickStore interface {
	InsertClick(ctx context.Context, event *redirect.ClickEvent) error
	// IncrementClicks bumps the link counter. Implementations treat a
	// missing row as success: the link may have been deleted between the
	// redirect and this call, and that race is accepted.
	IncrementClicks(ctx context.Context, code string) error
}

// ClickPublisher fans recorded clicks out to a stream. Optional.
type ClickPublisher interface {
	Publish(ctx context.Context, event events.ClickRecorded) error
}

// Recorder persists click events. Every failure is terminal and local: logged
// once, never retried, never surfaced. The insert and the counter increment
// are two separate statements by design; if the insert fails the increment is
// skipped so the counter stays behind the event log, not ahead of it.
type Recorder struct {
	store     ClickStore
	publisher ClickPublisher
}

func NewRecorder(store ClickStore, publisher ClickPublisher) *Recorder {
	return &Recorder{store: store, publisher: publisher}
}

func (r *Recorder) Record(ctx context.Context, event *redirect.ClickEvent) {
	if err := r.store.InsertClick(ctx, event); err != nil {
		logger.Warn("failed to insert click event",
			zap.Error(err),
			zap.String("code", event.Code),
		)
		return
	}

	if err := r.store.IncrementClicks(ctx, event.Code); err != nil {
		logger.Warn("failed to increment click counter",
			zap.Error(err),
			zap.String("code", event.Code),
		)
	}

	r.publish(ctx, event)
}

func (r *Recorder) publish(ctx context.Context, event *redirect.ClickEvent) {
	if r.publisher == nil {
		return
	}
	msg := events.ClickRecorded{
		EventID:    uuid.New().String(),
		Code:       event.Code,
		Country:    event.Location.Country,
		Device:     event.Class.Device,
		Browser:    event.Class.Browser,
		OccurredAt: event.ClickedAt.UTC().Format(time.RFC3339Nano),
	}
	if err := r.publisher.Publish(ctx, msg); err != nil {
		logger.Warn("failed to publish click event",
			zap.Error(err),
			zap.String("code", event.Code),
		)
	}
}
