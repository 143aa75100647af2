package domain

import "errors"

// Error kinds. Handlers map these to transport status codes; specific errors
// below wrap exactly one of them.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

var (
	ErrAirportNotFound    = kindError(ErrNotFound, "Airport not found")
	ErrCartNotFound       = kindError(ErrNotFound, "Cart not found!")
	ErrCartItemNotFound   = kindError(ErrNotFound, "cart item not found")
	ErrPaymentNotFound    = kindError(ErrNotFound, "payment not found")
	ErrInvalidQuantity    = kindError(ErrInvalidInput, "Invalid cart or quantity")
	ErrInvalidSeatClass   = kindError(ErrInvalidInput, "ticket type must be ECONOMY or BUSINESS")
	ErrPasswordMismatch   = kindError(ErrInvalidInput, "passwords do not match")
	ErrPasswordTooLong    = kindError(ErrInvalidInput, "password must be at most 72 bytes")
	ErrDOBRequired        = kindError(ErrInvalidInput, "date of birth is required")
	ErrInvalidDOB         = kindError(ErrInvalidInput, "date of birth must use the YYYY-MM-DD format")
	ErrCartEmpty          = kindError(ErrInvalidInput, "cart is empty")
	ErrInvalidSearchDate  = kindError(ErrInvalidInput, "departure_date must use the YYYY-MM-DD format")
	ErrInvalidPassengers  = kindError(ErrInvalidInput, "passenger counts must not be negative and at least one seat is needed")
	ErrUsernameTaken      = kindError(ErrConflict, "username is already taken")
	ErrSoldOut            = kindError(ErrConflict, "not enough seats left")
	ErrPaymentExpired     = kindError(ErrConflict, "payment has expired")
	ErrPaymentNotPending  = kindError(ErrConflict, "payment is no longer pending")
	ErrInvalidCredentials = kindError(ErrUnauthorized, "invalid username or password")
	ErrLoginRequired      = kindError(ErrUnauthorized, "login required")
	ErrAdminRequired      = kindError(ErrForbidden, "admin role required")
)

type domainError struct {
	kind error
	msg  string
}

func kindError(kind error, msg string) error {
	return &domainError{kind: kind, msg: msg}
}

// Invalid reports a validation failure with a caller supplied message.
func Invalid(msg string) error {
	return kindError(ErrInvalidInput, msg)
}

func (e *domainError) Error() string { return e.msg }

func (e *domainError) Unwrap() error { return e.kind }
