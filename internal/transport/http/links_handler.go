package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gatelink/gatelink/internal/config"
	"github.com/gatelink/gatelink/internal/constants"
	"github.com/gatelink/gatelink/internal/infrastructure/logger"
	appvalidation "github.com/gatelink/gatelink/internal/infrastructure/validation"
	"github.com/gatelink/gatelink/internal/processing/admin"
	"github.com/gatelink/gatelink/internal/processing/redirect"
	"github.com/gatelink/gatelink/pkg/httputils"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// LinksHandler serves the management endpoints for short links.
type LinksHandler struct {
	cfg *config.Config
	svc *admin.Service
}

func NewLinksHandler(cfg *config.Config, svc *admin.Service) *LinksHandler {
	return &LinksHandler{cfg: cfg, svc: svc}
}

type createLinkRequest struct {
	Code      string     `json:"code,omitempty"`
	URL       string     `json:"url" validate:"required,notblank,http_url"`
	PartnerID *int64     `json:"partnerId,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty" validate:"omitempty,future"`
}

type linkResponse struct {
	Code       string     `json:"code"`
	URL        string     `json:"url"`
	ShortURL   string     `json:"shortUrl"`
	PartnerID  *int64     `json:"partnerId,omitempty"`
	ClickCount int64      `json:"clickCount"`
	CreatedAt  time.Time  `json:"createdAt"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

func (h *LinksHandler) toResponse(link *redirect.ShortLink) linkResponse {
	resp := linkResponse{
		Code:       link.Code,
		URL:        link.TargetURL,
		ShortURL:   h.baseURL() + "/" + link.Code,
		ClickCount: link.ClickCount,
		CreatedAt:  link.CreatedAt,
		ExpiresAt:  link.ExpiresAt,
	}
	if link.Partner != nil {
		resp.PartnerID = &link.Partner.ID
	}
	return resp
}

func (h *LinksHandler) baseURL() string {
	return "http://" + h.cfg.Server.Host + ":" + h.cfg.Server.Port
}

func (h *LinksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
		return
	}
	if err := appvalidation.Validate(req); err != nil {
		apiErr := constants.ErrInvalidRequestBody
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, e := range validationErrs {
				if e.Field() == "url" {
					apiErr = constants.ErrInvalidURL
					break
				}
				if e.Field() == "expiresAt" && e.Tag() == "future" {
					apiErr = apiErr.WithMessage("expiresAt must be in the future")
					break
				}
			}
		}
		httputils.WriteAPIError(w, r, apiErr)
		return
	}

	link, err := h.svc.CreateLink(r.Context(), admin.CreateLinkInput{
		Code:      req.Code,
		TargetURL: req.URL,
		PartnerID: req.PartnerID,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		switch err {
		case admin.ErrInvalidURL:
			httputils.WriteAPIError(w, r, constants.ErrInvalidURL)
		case admin.ErrInvalidCode:
			httputils.WriteAPIError(w, r, constants.ErrInvalidCode)
		case admin.ErrCodeTaken:
			httputils.WriteAPIError(w, r, constants.ErrCodeTaken)
		default:
			logger.Error("failed to create link", zap.Error(err))
			httputils.WriteAPIError(w, r, constants.ErrInternalError)
		}
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessLinkCreated, h.toResponse(link))
}

type updateLinkRequest struct {
	URL          *string    `json:"url,omitempty" validate:"omitempty,notblank,http_url"`
	PartnerID    *int64     `json:"partnerId,omitempty"`
	ClearPartner bool       `json:"clearPartner,omitempty"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty" validate:"omitempty,future"`
	ClearExpiry  bool       `json:"clearExpiry,omitempty"`
}

func (h *LinksHandler) Update(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	var req updateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
		return
	}
	if err := appvalidation.Validate(req); err != nil {
		apiErr := constants.ErrInvalidRequestBody
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, e := range validationErrs {
				if e.Field() == "url" {
					apiErr = constants.ErrInvalidURL
					break
				}
				if e.Field() == "expiresAt" && e.Tag() == "future" {
					apiErr = apiErr.WithMessage("expiresAt must be in the future")
					break
				}
			}
		}
		httputils.WriteAPIError(w, r, apiErr)
		return
	}

	err := h.svc.UpdateLink(r.Context(), code, admin.LinkUpdate{
		TargetURL:    req.URL,
		PartnerID:    req.PartnerID,
		ClearPartner: req.ClearPartner,
		ExpiresAt:    req.ExpiresAt,
		ClearExpiry:  req.ClearExpiry,
	})
	if err != nil {
		switch err {
		case admin.ErrNotFound:
			httputils.WriteAPIError(w, r, constants.ErrLinkNotFound)
		case admin.ErrInvalidURL:
			httputils.WriteAPIError(w, r, constants.ErrInvalidURL)
		default:
			logger.Error("failed to update link", zap.Error(err), zap.String("code", code))
			httputils.WriteAPIError(w, r, constants.ErrInternalError)
		}
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessLinkUpdated, map[string]string{"code": code})
}

func (h *LinksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	if err := h.svc.DeleteLink(r.Context(), code); err != nil {
		switch err {
		case admin.ErrNotFound:
			httputils.WriteAPIError(w, r, constants.ErrLinkNotFound)
		default:
			logger.Error("failed to delete link", zap.Error(err), zap.String("code", code))
			httputils.WriteAPIError(w, r, constants.ErrInternalError)
		}
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessLinkDeleted, map[string]string{"code": code})
}

func (h *LinksHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	links, err := h.svc.ListLinks(r.Context(), limit, offset)
	if err != nil {
		logger.Error("failed to list links", zap.Error(err))
		httputils.WriteAPIError(w, r, constants.ErrInternalError)
		return
	}

	out := make([]linkResponse, 0, len(links))
	for _, link := range links {
		out = append(out, h.toResponse(link))
	}
	httputils.WriteAPISuccess(w, r, constants.SuccessLinksFound, out)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
