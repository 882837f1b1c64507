package redirect

import "time"

// Fallback values used across the pipeline when a signal cannot be resolved.
const (
	Unknown        = "Unknown"
	DirectReferrer = "Direct"
	LocalLocation  = "Local"
)

type ShortLink struct {
	Code       string
	TargetURL  string
	CreatedAt  time.Time
	ClickCount int64
	Partner    *Partner
	ExpiresAt  *time.Time
}

type Partner struct {
	ID     int64
	Name   string
	Domain string
}

type Location struct {
	Country string
	City    string
	Region  string
}

type Classification struct {
	Device  string
	Browser string
	OS      string
}

// Visit carries the request identity extracted before any policy decision.
type Visit struct {
	IP        string
	UserAgent string
	Referrer  string
}

// ClickEvent is the append-only record of one allowed visit.
type ClickEvent struct {
	Code      string
	IP        string
	Location  Location
	UserAgent string
	Class     Classification
	Referrer  string
	ClickedAt time.Time
}

// BypassEvent is the append-only record of one referrer policy violation.
type BypassEvent struct {
	Code       string
	Referrer   string
	IP         string
	UserAgent  string
	DetectedAt time.Time
}
