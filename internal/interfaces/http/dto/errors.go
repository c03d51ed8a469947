package dto

import "net/http"

// Transport-level error codes. Domain error codes pass through unchanged;
// these cover failures that never reach a domain service.
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeRateLimited  = "RATE_LIMITED"
)

// errorCodeHTTPStatus maps domain and transport error codes to HTTP status
// codes. Unknown codes default to 500 so a missing entry surfaces loudly.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Validation of input values
	"INVALID_INPUT":            http.StatusBadRequest,
	"INVALID_AMOUNT":           http.StatusBadRequest,
	"INVALID_CATEGORY_NAME":    http.StatusBadRequest,
	"INVALID_COST":             http.StatusBadRequest,
	"INVALID_CUSTOMER_NAME":    http.StatusBadRequest,
	"INVALID_CUSTOMER_PHONE":   http.StatusBadRequest,
	"INVALID_DATE":             http.StatusBadRequest,
	"INVALID_DELIVERY_FEE":     http.StatusBadRequest,
	"INVALID_DESCRIPTION":      http.StatusBadRequest,
	"INVALID_DISCOUNT":         http.StatusBadRequest,
	"INVALID_DISPLAY_NAME":     http.StatusBadRequest,
	"INVALID_EXPIRY":           http.StatusBadRequest,
	"INVALID_FEE":              http.StatusBadRequest,
	"INVALID_GOVERNORATE":      http.StatusBadRequest,
	"INVALID_OFFERS":           http.StatusBadRequest,
	"INVALID_ORDER_NUMBER":     http.StatusBadRequest,
	"INVALID_PASSWORD":         http.StatusBadRequest,
	"INVALID_PERIOD":           http.StatusBadRequest,
	"INVALID_PHONE":            http.StatusBadRequest,
	"INVALID_PLATFORM_NAME":    http.StatusBadRequest,
	"INVALID_PRICE":            http.StatusBadRequest,
	"INVALID_PRODUCT_NAME":     http.StatusBadRequest,
	"INVALID_QUANTITY":         http.StatusBadRequest,
	"INVALID_REASON":           http.StatusBadRequest,
	"INVALID_ROLE":             http.StatusBadRequest,
	"INVALID_SOURCE":           http.StatusBadRequest,
	"INVALID_STATUS":           http.StatusBadRequest,
	"INVALID_STOCK":            http.StatusBadRequest,
	"INVALID_SUBDOMAIN":        http.StatusBadRequest,
	"INVALID_THRESHOLD":        http.StatusBadRequest,
	"INVALID_TRANSACTION_TYPE": http.StatusBadRequest,
	"INVALID_USERNAME":         http.StatusBadRequest,
	"INVALID_VARIANT_KIND":     http.StatusBadRequest,
	"INVALID_VARIANT_NAME":     http.StatusBadRequest,

	// Authentication and authorization
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	"INVALID_CREDENTIALS":  http.StatusUnauthorized,
	"INVALID_TOKEN":        http.StatusUnauthorized,
	"TOKEN_EXPIRED":        http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	"ACCOUNT_DEACTIVATED":  http.StatusForbidden,
	"PLATFORM_INACTIVE":    http.StatusForbidden,
	"PLATFORM_SUSPENDED":   http.StatusForbidden,
	"SUBSCRIPTION_EXPIRED": http.StatusForbidden,

	// Missing resources
	ErrCodeNotFound:      http.StatusNotFound,
	"CATEGORY_NOT_FOUND": http.StatusNotFound,
	"PRODUCT_NOT_FOUND":  http.StatusNotFound,
	"ITEM_NOT_FOUND":     http.StatusNotFound,
	"FEE_NOT_FOUND":      http.StatusNotFound,

	// Conflicts
	"ALREADY_EXISTS":         http.StatusConflict,
	"SUBDOMAIN_TAKEN":        http.StatusConflict,
	"USERNAME_TAKEN":         http.StatusConflict,
	"DUPLICATE_SUBMISSION":   http.StatusConflict,
	"OPTIMISTIC_LOCK_FAILED": http.StatusConflict,
	"CONCURRENCY_CONFLICT":   http.StatusConflict,
	"CATEGORY_IN_USE":        http.StatusConflict,
	"PRODUCT_IN_USE":         http.StatusConflict,

	// Business rule violations
	"INVALID_STATE":          http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":     http.StatusUnprocessableEntity,
	"INVALID_VARIANT":        http.StatusUnprocessableEntity,
	"DUPLICATE_VARIANT":      http.StatusUnprocessableEntity,
	"INVALID_PRODUCT":        http.StatusUnprocessableEntity,
	"NO_ITEMS":               http.StatusUnprocessableEntity,
	"OFFER_NOT_FOUND":        http.StatusUnprocessableEntity,
	"OFFER_FIXED_QUANTITY":   http.StatusUnprocessableEntity,
	"PRODUCT_INACTIVE":       http.StatusUnprocessableEntity,
	"CANNOT_DEACTIVATE_SELF": http.StatusUnprocessableEntity,
	"ACCOUNT_MISMATCH":       http.StatusUnprocessableEntity,
	"INSUFFICIENT_FUNDS":     http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not mapped.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
