package constants

import "net/http"

// APISuccess represents a standardized API success response with code and HTTP status.
type APISuccess struct {
	Code   string
	Status int
}

// Link-related success responses
var (
	SuccessLinkCreated = APISuccess{
		Code:   CodeLinkCreated,
		Status: http.StatusCreated,
	}
	SuccessLinkUpdated = APISuccess{
		Code:   CodeLinkUpdated,
		Status: http.StatusOK,
	}
	SuccessLinkDeleted = APISuccess{
		Code:   CodeLinkDeleted,
		Status: http.StatusOK,
	}
	SuccessLinksFound = APISuccess{
		Code:   CodeLinksFound,
		Status: http.StatusOK,
	}
)

// Partner-related success responses
var (
	SuccessPartnerCreated = APISuccess{
		Code:   CodePartnerCreated,
		Status: http.StatusCreated,
	}
	SuccessPartnerDeleted = APISuccess{
		Code:   CodePartnerDeleted,
		Status: http.StatusOK,
	}
	SuccessPartnersFound = APISuccess{
		Code:   CodePartnersFound,
		Status: http.StatusOK,
	}
)
