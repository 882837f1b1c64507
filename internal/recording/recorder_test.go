package recording

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gatelink/gatelink/internal/events"
	"github.com/gatelink/gatelink/internal/processing/redirect"
)

type mockStore struct {
	insertFn    func(ctx context.Context, event *redirect.ClickEvent) error
	incrementFn func(ctx context.Context, code string) error

	inserts    int
	increments int
}

func (m *mockStore) InsertClick(ctx context.Context, event *redirect.ClickEvent) error {
	m.inserts++
	if m.insertFn != nil {
		return m.insertFn(ctx, event)
	}
	return nil
}

func (m *mockStore) IncrementClicks(ctx context.Context, code string) error {
	m.increments++
	if m.incrementFn != nil {
		return m.incrementFn(ctx, code)
	}
	return nil
}

type mockPublisher struct {
	published []events.ClickRecorded
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, event events.ClickRecorded) error {
	m.published = append(m.published, event)
	return m.err
}

func sampleEvent() *redirect.ClickEvent {
	return &redirect.ClickEvent{
		Code:      "abc",
		IP:        "203.0.113.7",
		Location:  redirect.Location{Country: "Brazil", City: "Sao Paulo", Region: "SP"},
		UserAgent: "test",
		Class:     redirect.Classification{Device: "Desktop", Browser: "Chrome", OS: "Linux"},
		Referrer:  "Direct",
		ClickedAt: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecord_InsertThenIncrement(t *testing.T) {
	store := &mockStore{}
	rec := NewRecorder(store, nil)

	rec.Record(context.Background(), sampleEvent())

	if store.inserts != 1 || store.increments != 1 {
		t.Errorf("want 1 insert + 1 increment, got %d/%d", store.inserts, store.increments)
	}
}

func TestRecord_InsertFailureSkipsIncrement(t *testing.T) {
	store := &mockStore{
		insertFn: func(_ context.Context, _ *redirect.ClickEvent) error {
			return errors.New("insert failed")
		},
	}
	rec := NewRecorder(store, nil)

	rec.Record(context.Background(), sampleEvent())

	if store.increments != 0 {
		t.Errorf("increment must be skipped when the insert fails, got %d", store.increments)
	}
}

func TestRecord_IncrementFailureIsSwallowed(t *testing.T) {
	store := &mockStore{
		incrementFn: func(_ context.Context, _ string) error {
			return errors.New("row gone")
		},
	}
	rec := NewRecorder(store, nil)

	// Must not panic or propagate; the response was already sent.
	rec.Record(context.Background(), sampleEvent())

	if store.inserts != 1 {
		t.Errorf("insert should still have happened, got %d", store.inserts)
	}
}

func TestRecord_PublishesAfterInsert(t *testing.T) {
	store := &mockStore{}
	pub := &mockPublisher{}
	rec := NewRecorder(store, pub)

	rec.Record(context.Background(), sampleEvent())

	if len(pub.published) != 1 {
		t.Fatalf("want 1 published event, got %d", len(pub.published))
	}
	got := pub.published[0]
	if got.Code != "abc" || got.Country != "Brazil" || got.Browser != "Chrome" {
		t.Errorf("published event fields wrong: %+v", got)
	}
	if got.EventID == "" {
		t.Error("event ID must be set")
	}
}

func TestRecord_NoPublishOnInsertFailure(t *testing.T) {
	store := &mockStore{
		insertFn: func(_ context.Context, _ *redirect.ClickEvent) error {
			return errors.New("insert failed")
		},
	}
	pub := &mockPublisher{}
	rec := NewRecorder(store, pub)

	rec.Record(context.Background(), sampleEvent())

	if len(pub.published) != 0 {
		t.Errorf("nothing should be published when the insert fails, got %d", len(pub.published))
	}
}

func TestRecord_PublishFailureIsSwallowed(t *testing.T) {
	store := &mockStore{}
	pub := &mockPublisher{err: errors.New("broker down")}
	rec := NewRecorder(store, pub)

	rec.Record(context.Background(), sampleEvent())

	if store.inserts != 1 || store.increments != 1 {
		t.Error("storage path must complete regardless of publish failure")
	}
}
