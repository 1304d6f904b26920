package account

import (
	"errors"
	"fmt"
)

// Failure taxonomy of the account service. Handlers map these onto HTTP
// responses; repository and driver errors never cross this boundary.
var (
	ErrNotFound          = errors.New("account not found")
	ErrConflict          = errors.New("identity already registered")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrExpired           = errors.New("token has expired")
	ErrSuspended         = errors.New("account suspended")
	ErrDeactivated       = errors.New("account deactivated")
	ErrAlreadyVerified   = errors.New("account already verified")
	ErrMailDelivery      = errors.New("failed to send email")
	ErrInvalidAction     = errors.New("invalid action")
)

// NotVerifiedError signals a login attempt against an unverified account. It
// carries the account email so the client can offer a resend.
type NotVerifiedError struct {
	Email string
}

func (e *NotVerifiedError) Error() string {
	return fmt.Sprintf("account not verified: %s", e.Email)
}
