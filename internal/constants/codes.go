package constants

// Error codes used in API responses.
// These are the machine-readable codes returned in the "error" field.
const (
	// Common error codes
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternalError  = "INTERNAL_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeRateLimited    = "RATE_LIMITED"

	// Link-specific codes
	CodeInvalidURL      = "INVALID_URL"
	CodeInvalidCode     = "INVALID_CODE"
	CodeCodeTaken       = "CODE_TAKEN"
	CodeLinkNotFound    = "LINK_NOT_FOUND"
	CodePartnerNotFound = "PARTNER_NOT_FOUND"
	CodeInvalidPartner  = "INVALID_PARTNER"

	// Success codes
	CodeLinkCreated    = "LINK_CREATED"
	CodeLinkUpdated    = "LINK_UPDATED"
	CodeLinkDeleted    = "LINK_DELETED"
	CodeLinksFound     = "LINKS_FOUND"
	CodePartnerCreated = "PARTNER_CREATED"
	CodePartnerDeleted = "PARTNER_DELETED"
	CodePartnersFound  = "PARTNERS_FOUND"
)
