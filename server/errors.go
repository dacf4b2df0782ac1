package server

import (
	"errors"
	"fmt"
)

// Kind classifies a store failure for retry decisions.
type Kind int

const (
	// KindOther is any failure that must not be retried.
	KindOther Kind = iota
	// KindTransient marks failures worth another attempt (connection drops,
	// throttling, SDK retry budget exhausted).
	KindTransient
	// KindNotFound means the object or bucket does not exist.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindNotFound:
		return "not found"
	default:
		return "other"
	}
}

var (
	// ErrObjectNotFound matches any *Error of KindNotFound via errors.Is.
	ErrObjectNotFound = errors.New("object not found")
	// ErrTransient matches any *Error of KindTransient via errors.Is.
	ErrTransient = errors.New("transient store failure")
)

// Error is a store failure with the operation and object it concerns.
type Error struct {
	Op     string
	Bucket string
	Key    string
	Kind   Kind
	Err    error
}

func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrObjectNotFound:
		return e.Kind == KindNotFound
	case ErrTransient:
		return e.Kind == KindTransient
	}
	return false
}

func NewObjectError(op, bucket, key string, kind Kind, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Kind:   kind,
		Err:    err,
	}
}

func NewBucketError(op, bucket string, kind Kind, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Kind:   kind,
		Err:    err,
	}
}

// KindOf returns the Kind of the first *Error in err's chain, KindOther if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

func IsTransient(err error) bool {
	return KindOf(err) == KindTransient
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
