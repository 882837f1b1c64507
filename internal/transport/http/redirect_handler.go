package http

import (
	"net/http"
	"strings"

	"github.com/gatelink/gatelink/internal/infrastructure/logger"
	"github.com/gatelink/gatelink/internal/processing/redirect"
	"github.com/gatelink/gatelink/internal/transport/http/middleware"
	"go.uber.org/zap"
)

// RedirectHandler serves the public short-link endpoint.
type RedirectHandler struct {
	pipeline *redirect.Pipeline
	pages    *Pages
}

func NewRedirectHandler(pipeline *redirect.Pipeline, pages *Pages) *RedirectHandler {
	return &RedirectHandler{pipeline: pipeline, pages: pages}
}

func (h *RedirectHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	visit := redirect.Visit{
		IP: redirect.ClientIP(
			r.Header.Get("X-Forwarded-For"),
			r.Header.Get("X-Real-Ip"),
			r.Header.Get("Cf-Connecting-Ip"),
			r.RemoteAddr,
		),
		UserAgent: r.UserAgent(),
		Referrer:  referrerOf(r),
	}

	result, err := h.pipeline.Handle(r.Context(), code, visit)
	if err != nil {
		logger.Error("failed to resolve code", zap.Error(err), zap.String("code", code))
		middleware.CountRedirectOutcome("error")
		h.pages.Error(w)
		return
	}

	switch result.Outcome {
	case redirect.OutcomeNotFound:
		middleware.CountRedirectOutcome("not_found")
		h.pages.NotFound(w)
	case redirect.OutcomeExpired:
		middleware.CountRedirectOutcome("expired")
		h.pages.Expired(w)
	case redirect.OutcomeBypassDenied:
		middleware.CountRedirectOutcome("denied")
		h.pages.Denied(w, "")
	case redirect.OutcomeAllowed:
		middleware.CountRedirectOutcome("allowed")
		h.pages.Interstitial(w, result.TargetURL)
	default:
		logger.Error("unexpected redirect outcome", zap.Int("outcome", int(result.Outcome)), zap.String("code", code))
		middleware.CountRedirectOutcome("error")
		h.pages.Error(w)
	}
}

// referrerOf reports the Referer header, or "Direct" when the visit
// carries none.
func referrerOf(r *http.Request) string {
	ref := strings.TrimSpace(r.Referer())
	if ref == "" {
		return redirect.DirectReferrer
	}
	return ref
}
