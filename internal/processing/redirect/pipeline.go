package redirect

import (
	"context"
	"sync"
	"time"

	"github.com/gatelink/gatelink/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Outcome is the terminal state of one redirect request.
type Outcome int

const (
	OutcomeNotFound Outcome = iota + 1
	OutcomeExpired
	OutcomeBypassDenied
	OutcomeAllowed
)

// Result is what the transport layer renders. TargetURL is only populated on
// the allowed path; denied outcomes never reveal the destination.
type Result struct {
	Outcome   Outcome
	TargetURL string
}

// Pipeline is the redirect-time decision flow: resolve, expire, gate on the
// partner referrer policy, classify, and hand off enrichment + recording to a
// detached background task.
type Pipeline struct {
	links    LinkRepository
	bypasses BypassRepository
	geo      GeoResolver
	recorder Recorder

	recordBudget time.Duration
	now          func() time.Time

	background sync.WaitGroup
}

func NewPipeline(links LinkRepository, bypasses BypassRepository, geo GeoResolver, recorder Recorder) *Pipeline {
	return &Pipeline{
		links:        links,
		bypasses:     bypasses,
		geo:          geo,
		recorder:     recorder,
		recordBudget: 10 * time.Second,
		now:          time.Now,
	}
}

// Handle runs the synchronous decision path for one request. On the allowed
// path it schedules exactly one background enrichment-and-record task and
// returns before that task starts doing real work; the task's failures can
// never reach this request or any other.
func (p *Pipeline) Handle(ctx context.Context, code string, visit Visit) (Result, error) {
	link, err := p.links.FindWithPartner(ctx, code)
	if err != nil {
		if err == ErrNotFound {
			return Result{Outcome: OutcomeNotFound}, nil
		}
		return Result{}, err
	}

	if link.ExpiresAt != nil && link.ExpiresAt.Before(p.now()) {
		return Result{Outcome: OutcomeExpired}, nil
	}

	// Stateless gate: every request re-evaluates the policy, not just the
	// first visit.
	if link.Partner != nil && !ReferrerAllowed(link.Partner.Domain, visit.Referrer) {
		p.recordBypass(ctx, link.Code, visit)
		return Result{Outcome: OutcomeBypassDenied}, nil
	}

	event := &ClickEvent{
		Code:      link.Code,
		IP:        visit.IP,
		UserAgent: visit.UserAgent,
		Class:     Classify(visit.UserAgent),
		Referrer:  visit.Referrer,
		ClickedAt: p.now().UTC(),
	}

	p.background.Add(1)
	go p.enrichAndRecord(event)

	return Result{Outcome: OutcomeAllowed, TargetURL: link.TargetURL}, nil
}

func (p *Pipeline) recordBypass(ctx context.Context, code string, visit Visit) {
	event := &BypassEvent{
		Code:       code,
		Referrer:   visit.Referrer,
		IP:         visit.IP,
		UserAgent:  visit.UserAgent,
		DetectedAt: p.now().UTC(),
	}
	if err := p.bypasses.InsertBypass(ctx, event); err != nil {
		logger.Warn("failed to record bypass event",
			zap.Error(err),
			zap.String("code", code),
			zap.String("referrer", visit.Referrer),
		)
	}
}

// enrichAndRecord runs detached from the request that spawned it. The parent
// context is never used: once the HTTP response is out, nothing cancels this.
func (p *Pipeline) enrichAndRecord(event *ClickEvent) {
	defer p.background.Done()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in background click recording",
				zap.Any("panic", r),
				zap.String("code", event.Code),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), p.recordBudget)
	defer cancel()

	// Resolve never fails; a timed-out or errored lookup yields the Unknown
	// triple and the click is still recorded.
	event.Location = p.geo.Resolve(ctx, event.IP)
	p.recorder.Record(ctx, event)
}

// Wait blocks until all in-flight background recordings settle. Used on
// shutdown so accepted clicks are not dropped.
func (p *Pipeline) Wait() {
	p.background.Wait()
}
