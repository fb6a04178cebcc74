package errors

// Error code constants returned in the errorCode field of error envelopes.
// The tablet frontend maps these to localized messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthzForbidden         = "AUTHZ_FORBIDDEN"

	// ==================== Validation ====================
	ValidationError = "VALIDATION_ERROR"
	InvalidLocale   = "INVALID_LOCALE"

	// ==================== SOP resources ====================
	CategoryExists      = "CATEGORY_EXISTS"
	SortOrderExists     = "SORT_ORDER_EXISTS"
	CategoryNotFound    = "CATEGORY_NOT_FOUND"
	DocumentNotFound    = "DOCUMENT_NOT_FOUND"
	TranslationNotFound = "TRANSLATION_NOT_FOUND"

	// ==================== Uploads ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"

	// ==================== Internal ====================
	DatabaseError = "DATABASE_ERROR"
	InternalError = "INTERNAL_ERROR"
)
