package constants

// Error messages used in API responses.
// These are the human-readable messages returned in the "message" field.
const (
	// Common messages
	MsgInvalidRequestBody = "Invalid request body"
	MsgInternalError      = "An internal error occurred"
	MsgUnauthorized       = "Unauthorized"
	MsgRateLimited        = "Too many requests"

	// Link-specific messages
	MsgInvalidURL      = "Invalid URL (must be http or https)"
	MsgInvalidCode     = "Invalid code (1-50 chars, letters, digits, - and _)"
	MsgCodeTaken       = "Code is already in use"
	MsgLinkNotFound    = "Link not found"
	MsgPartnerNotFound = "Partner not found"
	MsgInvalidPartner  = "Invalid partner name or domain"
)
