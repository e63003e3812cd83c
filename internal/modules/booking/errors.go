package booking

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("booking not found")
	ErrForbidden       = errors.New("booking belongs to another user")
	ErrInvalidStatus   = errors.New("booking cannot be approved in its current status")
	ErrAlreadyApproved = errors.New("booking already approved")
)
