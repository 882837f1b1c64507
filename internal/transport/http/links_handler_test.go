package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gatelink/gatelink/internal/config"
	"github.com/gatelink/gatelink/internal/processing/admin"
	"github.com/gatelink/gatelink/internal/processing/redirect"
)

type stubAdminLinkRepo struct {
	insertFn func(ctx context.Context, link *redirect.ShortLink, partnerID *int64) error
	updateFn func(ctx context.Context, code string, upd admin.LinkUpdate) (bool, error)
	deleteFn func(ctx context.Context, code string) (bool, error)
	listFn   func(ctx context.Context, limit, offset int) ([]*redirect.ShortLink, error)
}

func (s *stubAdminLinkRepo) InsertLink(ctx context.Context, link *redirect.ShortLink, partnerID *int64) error {
	return s.insertFn(ctx, link, partnerID)
}

func (s *stubAdminLinkRepo) UpdateLink(ctx context.Context, code string, upd admin.LinkUpdate) (bool, error) {
	return s.updateFn(ctx, code, upd)
}

func (s *stubAdminLinkRepo) DeleteLink(ctx context.Context, code string) (bool, error) {
	return s.deleteFn(ctx, code)
}

func (s *stubAdminLinkRepo) ListLinks(ctx context.Context, limit, offset int) ([]*redirect.ShortLink, error) {
	return s.listFn(ctx, limit, offset)
}

type stubPartnerRepo struct {
	insertFn func(ctx context.Context, partner *redirect.Partner) error
	listFn   func(ctx context.Context) ([]*redirect.Partner, error)
	deleteFn func(ctx context.Context, id int64) (bool, error)
}

func (s *stubPartnerRepo) InsertPartner(ctx context.Context, partner *redirect.Partner) error {
	return s.insertFn(ctx, partner)
}

func (s *stubPartnerRepo) ListPartners(ctx context.Context) ([]*redirect.Partner, error) {
	return s.listFn(ctx)
}

func (s *stubPartnerRepo) DeletePartner(ctx context.Context, id int64) (bool, error) {
	return s.deleteFn(ctx, id)
}

type fixedCodeGen struct{ code string }

func (g fixedCodeGen) Generate(int) (string, error) { return g.code, nil }

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "gatelink-test"},
		Server: config.ServerConfig{Host: "localhost", Port: "8080"},
	}
}

func TestLinksHandler_CreateGeneratedCode(t *testing.T) {
	links := &stubAdminLinkRepo{
		insertFn: func(_ context.Context, link *redirect.ShortLink, _ *int64) error {
			if link.Code != "abc123" {
				t.Errorf("got code %q, want %q", link.Code, "abc123")
			}
			return nil
		},
	}
	svc := admin.NewService(links, &stubPartnerRepo{}, fixedCodeGen{code: "abc123"}, 6)
	handler := NewLinksHandler(testConfig(), svc)

	body := strings.NewReader(`{"url":"https://example.com/deal"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/links", body)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp struct {
		Code string `json:"code"`
		Data struct {
			Code     string `json:"code"`
			ShortURL string `json:"shortUrl"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != "LINK_CREATED" {
		t.Errorf("got response code %q, want LINK_CREATED", resp.Code)
	}
	if resp.Data.ShortURL != "http://localhost:8080/abc123" {
		t.Errorf("got short url %q", resp.Data.ShortURL)
	}
}

func TestLinksHandler_CreateInvalidURL(t *testing.T) {
	svc := admin.NewService(&stubAdminLinkRepo{}, &stubPartnerRepo{}, fixedCodeGen{code: "x"}, 6)
	handler := NewLinksHandler(testConfig(), svc)

	body := strings.NewReader(`{"url":"ftp://example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/links", body)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "INVALID_URL") {
		t.Errorf("got body %q, want INVALID_URL", rec.Body.String())
	}
}

func TestLinksHandler_CreateExplicitCodeTaken(t *testing.T) {
	links := &stubAdminLinkRepo{
		insertFn: func(context.Context, *redirect.ShortLink, *int64) error {
			return admin.ErrCodeTaken
		},
	}
	svc := admin.NewService(links, &stubPartnerRepo{}, fixedCodeGen{code: "x"}, 6)
	handler := NewLinksHandler(testConfig(), svc)

	body := strings.NewReader(`{"code":"promo","url":"https://example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/links", body)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestLinksHandler_CreateMalformedBody(t *testing.T) {
	svc := admin.NewService(&stubAdminLinkRepo{}, &stubPartnerRepo{}, fixedCodeGen{code: "x"}, 6)
	handler := NewLinksHandler(testConfig(), svc)

	req := httptest.NewRequest(http.MethodPost, "/api/links", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLinksHandler_UpdateNotFound(t *testing.T) {
	links := &stubAdminLinkRepo{
		updateFn: func(context.Context, string, admin.LinkUpdate) (bool, error) {
			return false, nil
		},
	}
	svc := admin.NewService(links, &stubPartnerRepo{}, fixedCodeGen{code: "x"}, 6)
	handler := NewLinksHandler(testConfig(), svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/links/missing", strings.NewReader(`{"clearExpiry":true}`))
	req.SetPathValue("code", "missing")
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestLinksHandler_Delete(t *testing.T) {
	links := &stubAdminLinkRepo{
		deleteFn: func(_ context.Context, code string) (bool, error) {
			return code == "promo", nil
		},
	}
	svc := admin.NewService(links, &stubPartnerRepo{}, fixedCodeGen{code: "x"}, 6)
	handler := NewLinksHandler(testConfig(), svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/links/promo", nil)
	req.SetPathValue("code", "promo")
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/links/other", nil)
	req.SetPathValue("code", "other")
	rec = httptest.NewRecorder()
	handler.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestLinksHandler_List(t *testing.T) {
	links := &stubAdminLinkRepo{
		listFn: func(_ context.Context, limit, offset int) ([]*redirect.ShortLink, error) {
			if limit != 50 || offset != 0 {
				t.Errorf("got limit=%d offset=%d, want defaults", limit, offset)
			}
			return []*redirect.ShortLink{
				{Code: "a", TargetURL: "https://example.com/a", ClickCount: 3},
				{Code: "b", TargetURL: "https://example.com/b", Partner: &redirect.Partner{ID: 7}},
			}, nil
		},
	}
	svc := admin.NewService(links, &stubPartnerRepo{}, fixedCodeGen{code: "x"}, 6)
	handler := NewLinksHandler(testConfig(), svc)

	req := httptest.NewRequest(http.MethodGet, "/api/links", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"clickCount":3`) || !strings.Contains(body, `"partnerId":7`) {
		t.Errorf("unexpected list body: %s", body)
	}
}
