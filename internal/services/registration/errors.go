package registration

import (
	"errors"
	"fmt"
)

// Remote failures that abort the registration. All classify as critical;
// none are retried inline.
var (
	ErrCreateUser         = errors.New("unable to create remote user")
	ErrCreateWallet       = errors.New("unable to create remote wallet")
	ErrCreateRegistration = errors.New("unable to open card registration")
)

// ValidationError names the first missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}
