package google

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by Lookup when no credential exists for the
// requested account, in memory or on disk.
var ErrNotConfigured = errors.New("account not configured")

// CorruptCredentialError is returned by Lookup when a token file exists for
// the account but cannot be parsed or fails validation. GetAccount collapses
// this to nil; callers that care about the distinction use Lookup.
type CorruptCredentialError struct {
	Account string
	Err     error
}

func (e *CorruptCredentialError) Error() string {
	return fmt.Sprintf("credential file for account %q is corrupt: %v", e.Account, e.Err)
}

func (e *CorruptCredentialError) Unwrap() error {
	return e.Err
}
