package user

import (
	"errors"
	"fmt"
)

// ErrIncorrectLogin is returned for every authentication failure. It is
// deliberately identical for unknown usernames and wrong passwords so the
// login form cannot be used to enumerate accounts.
var ErrIncorrectLogin = errors.New("incorrect login")

// ValidationError reports a single bad signup field so the caller can
// re-render the form with the message next to the offending input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
