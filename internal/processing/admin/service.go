package admin

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gatelink/gatelink/internal/processing/redirect"
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,50}$`)

// Service owns the admin side of link and partner management. The redirect
// pipeline only ever reads what this service writes.
type Service struct {
	links      LinkRepository
	partners   PartnerRepository
	codegen    CodeGenerator
	codeLength int
	now        func() time.Time
}

func NewService(links LinkRepository, partners PartnerRepository, codegen CodeGenerator, codeLength int) *Service {
	if codeLength <= 0 {
		codeLength = 6
	}
	return &Service{
		links:      links,
		partners:   partners,
		codegen:    codegen,
		codeLength: codeLength,
		now:        time.Now,
	}
}

type CreateLinkInput struct {
	Code      string
	TargetURL string
	PartnerID *int64
	ExpiresAt *time.Time
}

// CreateLink inserts a link under an explicit code, or generates one when the
// input code is empty. Generated codes retry on collision; explicit codes
// fail fast with ErrCodeTaken.
func (s *Service) CreateLink(ctx context.Context, in CreateLinkInput) (*redirect.ShortLink, error) {
	target, err := validateTargetURL(in.TargetURL)
	if err != nil {
		return nil, ErrInvalidURL
	}

	link := &redirect.ShortLink{
		TargetURL: target,
		CreatedAt: s.now().UTC(),
		ExpiresAt: in.ExpiresAt,
	}

	code := strings.TrimSpace(in.Code)
	if code != "" {
		if !codePattern.MatchString(code) {
			return nil, ErrInvalidCode
		}
		link.Code = code
		if err := s.links.InsertLink(ctx, link, in.PartnerID); err != nil {
			return nil, err
		}
		return link, nil
	}

	const maxAttempts = 10
	for range maxAttempts {
		generated, err := s.codegen.Generate(s.codeLength)
		if err != nil {
			return nil, err
		}
		link.Code = generated

		if err := s.links.InsertLink(ctx, link, in.PartnerID); err != nil {
			if err == ErrCodeTaken {
				continue
			}
			return nil, err
		}
		return link, nil
	}

	return nil, ErrCodeTaken
}

func (s *Service) UpdateLink(ctx context.Context, code string, upd LinkUpdate) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrNotFound
	}

	if upd.TargetURL != nil {
		target, err := validateTargetURL(*upd.TargetURL)
		if err != nil {
			return ErrInvalidURL
		}
		upd.TargetURL = &target
	}

	found, err := s.links.UpdateLink(ctx, code, upd)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *Service) DeleteLink(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrNotFound
	}

	found, err := s.links.DeleteLink(ctx, code)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListLinks(ctx context.Context, limit, offset int) ([]*redirect.ShortLink, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.links.ListLinks(ctx, limit, offset)
}

func (s *Service) CreatePartner(ctx context.Context, name, domain string) (*redirect.Partner, error) {
	name = strings.TrimSpace(name)
	domain = normalizeDomain(domain)
	if name == "" || domain == "" {
		return nil, ErrInvalidDomain
	}

	partner := &redirect.Partner{Name: name, Domain: domain}
	if err := s.partners.InsertPartner(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

func (s *Service) ListPartners(ctx context.Context) ([]*redirect.Partner, error) {
	return s.partners.ListPartners(ctx)
}

func (s *Service) DeletePartner(ctx context.Context, id int64) error {
	found, err := s.partners.DeletePartner(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrPartnerNotFound
	}
	return nil
}

func validateTargetURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidURL
	}
	if strings.TrimSpace(u.Host) == "" {
		return "", ErrInvalidURL
	}

	return u.String(), nil
}

// normalizeDomain stores partner domains as bare lowercase hostnames so the
// referrer policy compares like with like.
func normalizeDomain(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return s
}
