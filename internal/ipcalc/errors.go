package ipcalc

import (
	"errors"
	"fmt"
)

// ErrEmptyAllowed is returned by Calculate when the allowed input yields no
// networks. An empty disallowed input is fine; an empty allowed input leaves
// nothing to compute.
var ErrEmptyAllowed = errors.New("allowed list is empty")

// ParseError reports an input token that is not a valid address or CIDR
// network for either family.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid IP/CIDR %q", e.Token)
}
