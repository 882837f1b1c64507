package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gatelink/gatelink/internal/infrastructure/logger"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages renders the visitor-facing HTML responses. Every redirect
// outcome gets a page; the service never answers a browser with bare
// status text.
type Pages struct {
	templates *template.Template
	delay     time.Duration
}

func NewPages(redirectDelay time.Duration) (*Pages, error) {
	if redirectDelay < 0 {
		redirectDelay = 0
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Pages{templates: tmpl, delay: redirectDelay}, nil
}

type interstitialData struct {
	TargetURL    string
	DelaySeconds int
}

type deniedData struct {
	PartnerName string
}

func (p *Pages) Interstitial(w http.ResponseWriter, targetURL string) {
	p.render(w, http.StatusOK, "interstitial.html", interstitialData{
		TargetURL:    targetURL,
		DelaySeconds: int(p.delay.Round(time.Second).Seconds()),
	})
}

func (p *Pages) NotFound(w http.ResponseWriter) {
	p.render(w, http.StatusNotFound, "not_found.html", nil)
}

func (p *Pages) Expired(w http.ResponseWriter) {
	p.render(w, http.StatusGone, "expired.html", nil)
}

func (p *Pages) Denied(w http.ResponseWriter, partnerName string) {
	p.render(w, http.StatusForbidden, "denied.html", deniedData{PartnerName: partnerName})
}

func (p *Pages) Error(w http.ResponseWriter) {
	p.render(w, http.StatusInternalServerError, "error.html", nil)
}

func (p *Pages) render(w http.ResponseWriter, status int, name string, data any) {
	// Render into a buffer first so a template failure never sends a
	// half-written page after the status line.
	var buf bytes.Buffer
	if err := p.templates.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Error("failed to render page", zap.Error(err), zap.String("template", name))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
