package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned by the API.
const (
	ErrCodeInvalidRequest     = "ERR_INVALID_REQUEST"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeInternalError      = "ERR_INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"

	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeAlreadyRegistered  = "ERR_ALREADY_REGISTERED"
	ErrCodeAccountSuspended   = "ERR_ACCOUNT_SUSPENDED"
	ErrCodeAccountDeactivated = "ERR_ACCOUNT_DEACTIVATED"
	ErrCodeNotVerified        = "ERR_NOT_VERIFIED"
	ErrCodeAlreadyVerified    = "ERR_ALREADY_VERIFIED"
	ErrCodeInvalidToken       = "ERR_INVALID_TOKEN"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeSessionExpired     = "ERR_SESSION_EXPIRED"
	ErrCodeInvalidAction      = "ERR_INVALID_ACTION"
	ErrCodeMailDelivery       = "ERR_MAIL_DELIVERY"
	ErrCodeAccountNotFound    = "ERR_ACCOUNT_NOT_FOUND"
)

// APIError is the uniform error response body.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse writes a uniform error response.
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden writes a 403 response.
func Forbidden(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusForbidden, code, message)
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusNotFound, code, message)
}

// InternalError writes a 500 response.
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// InvalidPayload writes a 400 response for malformed request bodies.
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}
