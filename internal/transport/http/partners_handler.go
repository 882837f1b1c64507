package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gatelink/gatelink/internal/constants"
	"github.com/gatelink/gatelink/internal/infrastructure/logger"
	appvalidation "github.com/gatelink/gatelink/internal/infrastructure/validation"
	"github.com/gatelink/gatelink/internal/processing/admin"
	"github.com/gatelink/gatelink/pkg/httputils"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// PartnersHandler serves the management endpoints for referrer partners.
type PartnersHandler struct {
	svc *admin.Service
}

func NewPartnersHandler(svc *admin.Service) *PartnersHandler {
	return &PartnersHandler{svc: svc}
}

type createPartnerRequest struct {
	Name   string `json:"name" validate:"required,notblank"`
	Domain string `json:"domain" validate:"required,bare_domain"`
}

type partnerResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

func (h *PartnersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPartnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody)
		return
	}
	if err := appvalidation.Validate(req); err != nil {
		apiErr := constants.ErrInvalidRequestBody
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			apiErr = constants.ErrInvalidPartner
		}
		httputils.WriteAPIError(w, r, apiErr)
		return
	}

	partner, err := h.svc.CreatePartner(r.Context(), req.Name, req.Domain)
	if err != nil {
		switch err {
		case admin.ErrInvalidDomain:
			httputils.WriteAPIError(w, r, constants.ErrInvalidPartner)
		default:
			logger.Error("failed to create partner", zap.Error(err))
			httputils.WriteAPIError(w, r, constants.ErrInternalError)
		}
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessPartnerCreated, partnerResponse{
		ID:     partner.ID,
		Name:   partner.Name,
		Domain: partner.Domain,
	})
}

func (h *PartnersHandler) List(w http.ResponseWriter, r *http.Request) {
	partners, err := h.svc.ListPartners(r.Context())
	if err != nil {
		logger.Error("failed to list partners", zap.Error(err))
		httputils.WriteAPIError(w, r, constants.ErrInternalError)
		return
	}

	out := make([]partnerResponse, 0, len(partners))
	for _, p := range partners {
		out = append(out, partnerResponse{ID: p.ID, Name: p.Name, Domain: p.Domain})
	}
	httputils.WriteAPISuccess(w, r, constants.SuccessPartnersFound, out)
}

func (h *PartnersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httputils.WriteAPIError(w, r, constants.ErrInvalidRequestBody.WithMessage("invalid partner id"))
		return
	}

	if err := h.svc.DeletePartner(r.Context(), id); err != nil {
		switch err {
		case admin.ErrPartnerNotFound:
			httputils.WriteAPIError(w, r, constants.ErrPartnerNotFound)
		default:
			logger.Error("failed to delete partner", zap.Error(err), zap.Int64("partner_id", id))
			httputils.WriteAPIError(w, r, constants.ErrInternalError)
		}
		return
	}

	httputils.WriteAPISuccess(w, r, constants.SuccessPartnerDeleted, map[string]int64{"id": id})
}
