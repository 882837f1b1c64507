package admin

import (
	"context"
	"errors"
	"time"

	"github.com/gatelink/gatelink/internal/processing/redirect"
)

var (
	ErrNotFound        = errors.New("link not found")
	ErrPartnerNotFound = errors.New("partner not found")
	ErrInvalidURL      = errors.New("invalid url")
	ErrInvalidCode     = errors.New("invalid code")
	ErrInvalidDomain   = errors.New("invalid partner domain")
	ErrCodeTaken       = errors.New("code taken")
)

type LinkRepository interface {
	InsertLink(ctx context.Context, link *redirect.ShortLink, partnerID *int64) error
	UpdateLink(ctx context.Context, code string, upd LinkUpdate) (bool, error)
	// DeleteLink removes the link; click and bypass rows cascade.
	DeleteLink(ctx context.Context, code string) (bool, error)
	ListLinks(ctx context.Context, limit, offset int) ([]*redirect.ShortLink, error)
}

type PartnerRepository interface {
	InsertPartner(ctx context.Context, partner *redirect.Partner) error
	ListPartners(ctx context.Context) ([]*redirect.Partner, error)
	DeletePartner(ctx context.Context, id int64) (bool, error)
}

// LinkUpdate carries partial updates. Nil pointers leave the column
// untouched; the Clear flags null it out.
type LinkUpdate struct {
	TargetURL    *string
	PartnerID    *int64
	ClearPartner bool
	ExpiresAt    *time.Time
	ClearExpiry  bool
}
