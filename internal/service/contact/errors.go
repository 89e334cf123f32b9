package contact

import (
	"errors"
	"fmt"
)

var (
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrRelayPanic       = errors.New("relay panicked")
)

// ErrSend wraps a relay failure with the driver that produced it.
type ErrSend struct {
	Provider string
	Err      error
}

func (e ErrSend) Error() string { return fmt.Sprintf("contact relay failed (%s): %v", e.Provider, e.Err) }
func (e ErrSend) Unwrap() error { return e.Err }
