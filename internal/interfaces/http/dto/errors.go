package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidName is used when a category or product name is rejected
	ErrCodeInvalidName = "ERR_INVALID_NAME"
	// ErrCodeInvalidSlug is used when a name yields an empty slug
	ErrCodeInvalidSlug     = "ERR_INVALID_SLUG"
	ErrCodeInvalidPrice    = "ERR_INVALID_PRICE"
	ErrCodeInvalidQuantity = "ERR_INVALID_QUANTITY"
	// ErrCodeMaxDepthExceeded is used when a create or move would nest too deep
	ErrCodeMaxDepthExceeded = "ERR_MAX_DEPTH_EXCEEDED"
	ErrCodeInvalidTitle     = "ERR_INVALID_TITLE"
	ErrCodeInvalidImage     = "ERR_INVALID_IMAGE"
	ErrCodeInvalidSchedule  = "ERR_INVALID_SCHEDULE"
	ErrCodeInvalidFolder    = "ERR_INVALID_FOLDER"
	ErrCodeInvalidFile      = "ERR_INVALID_FILE"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks the admin role
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	// ErrCodeHasChildren is used when deleting a category that still has children
	ErrCodeHasChildren = "ERR_HAS_CHILDREN"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeCircularReference is used when a move would put a category under itself
	ErrCodeCircularReference = "ERR_CIRCULAR_REFERENCE"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeFileTooLarge is used when an upload exceeds the configured size
	ErrCodeFileTooLarge = "ERR_FILE_TOO_LARGE"
	// ErrCodeRequestTooLarge is used when a request body exceeds the limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeInvalidName:      http.StatusBadRequest,
	ErrCodeInvalidSlug:      http.StatusBadRequest,
	ErrCodeInvalidPrice:     http.StatusBadRequest,
	ErrCodeInvalidQuantity:  http.StatusBadRequest,
	ErrCodeMaxDepthExceeded: http.StatusBadRequest,
	ErrCodeInvalidTitle:     http.StatusBadRequest,
	ErrCodeInvalidImage:     http.StatusBadRequest,
	ErrCodeInvalidSchedule:  http.StatusBadRequest,
	ErrCodeInvalidFolder:    http.StatusBadRequest,
	ErrCodeInvalidFile:      http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeHasChildren:         http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeCircularReference: http.StatusUnprocessableEntity,

	// Input errors
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeFileTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the API codes above
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"CONFLICT":             ErrCodeConflict,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,
	"INVALID_NAME":         ErrCodeInvalidName,
	"INVALID_SLUG":         ErrCodeInvalidSlug,
	"INVALID_PRICE":        ErrCodeInvalidPrice,
	"INVALID_QUANTITY":     ErrCodeInvalidQuantity,
	"MAX_DEPTH_EXCEEDED":   ErrCodeMaxDepthExceeded,
	"CIRCULAR_REFERENCE":   ErrCodeCircularReference,
	"HAS_CHILDREN":         ErrCodeHasChildren,
	"INVALID_TITLE":        ErrCodeInvalidTitle,
	"INVALID_IMAGE":        ErrCodeInvalidImage,
	"INVALID_SCHEDULE":     ErrCodeInvalidSchedule,
	"INVALID_FOLDER":       ErrCodeInvalidFolder,
	"INVALID_FILE":         ErrCodeInvalidFile,
	"FILE_TOO_LARGE":       ErrCodeFileTooLarge,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
