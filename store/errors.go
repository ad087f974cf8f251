package store

import (
	errs "errors"
	"fmt"
)

// Kind classifies a gateway failure.
type Kind int

const (
	Unknown Kind = iota
	// StorageUnavailable means the database file could not be opened or the
	// schema could not be created.
	StorageUnavailable
	WriteFailed
	ReadFailed
)

func (k Kind) String() string {
	switch k {
	case StorageUnavailable:
		return "storage unavailable"
	case WriteFailed:
		return "write failed"
	case ReadFailed:
		return "read failed"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var storeErr *Error
	if errs.As(err, &storeErr) {
		return storeErr.Kind
	}
	return Unknown
}
