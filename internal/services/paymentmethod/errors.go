package paymentmethod

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("payment method not found")
	ErrNotOwner  = errors.New("payment method does not belong to account")
	ErrBadExpiry = errors.New("invalid expiration date")
)

// ArgumentError names the first missing commit key. Commit callers are
// programs, not people, so a missing key is a contract violation rather than
// a user-input problem.
type ArgumentError struct {
	Key string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("commit details must contain the %s key", e.Key)
}
