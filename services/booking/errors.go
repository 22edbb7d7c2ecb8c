package booking

import "fmt"

// ValidationError reports malformed or missing intake input. The caller
// must correct and resubmit.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// UnavailableError rejects a well-formed request whose slot cannot be
// booked. Reason is one of the availability package's rejection reasons and
// is shown to the client verbatim.
type UnavailableError struct {
	Reason string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("slot unavailable: %s", e.Reason)
}
