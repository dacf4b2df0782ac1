package objsync

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition is returned when an upload source does not live below a
	// directory named after the bucket, so no key can be derived from it.
	ErrPrecondition = errors.New("precondition failed")
	// ErrConfiguration is returned when an endpoint filter matches nothing,
	// which almost always means a mistyped filter.
	ErrConfiguration = errors.New("configuration error")
	// ErrRetriesExhausted matches a *TransferError.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// TransferError reports a transfer that kept failing transiently until the
// attempt budget ran out. Err is the last failure.
type TransferError struct {
	Direction Direction
	Bucket    string
	Source    string
	Attempts  int
	Err       error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s %s (bucket %s) failed after %d attempts: %v", e.Direction, e.Source, e.Bucket, e.Attempts, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

func (e *TransferError) Is(target error) bool {
	return target == ErrRetriesExhausted
}
