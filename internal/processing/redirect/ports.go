package redirect

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("link not found")
	ErrExpired  = errors.New("link expired")
)

// LinkRepository reads link state. The pipeline never caches results; every
// request re-reads so admin edits take effect immediately.
type LinkRepository interface {
	FindWithPartner(ctx context.Context, code string) (*ShortLink, error)
}

// BypassRepository appends bypass events.
type BypassRepository interface {
	InsertBypass(ctx context.Context, event *BypassEvent) error
}

// GeoResolver maps an IP to a location. Implementations never fail: all
// error paths collapse into a fallback Location.
type GeoResolver interface {
	Resolve(ctx context.Context, ip string) Location
}

// Recorder durably stores a click event and bumps the link counter.
// Failures stay inside the recorder; the pipeline never sees them.
type Recorder interface {
	Record(ctx context.Context, event *ClickEvent)
}
