package sources

import (
	"fmt"

	"github.com/pkg/errors"
)

// Failure is the single error type a source is allowed to return. It names
// the source and carries a human-readable cause for the aggregator's log
// line.
type Failure struct {
	Source string
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("source %s: %v", f.Source, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Fail wraps err with a message and tags it with the source name.
func Fail(source string, err error, msg string) error {
	return &Failure{Source: source, Err: errors.Wrap(err, msg)}
}

// Failf builds a Failure from a fresh error.
func Failf(source, format string, args ...interface{}) error {
	return &Failure{Source: source, Err: errors.Errorf(format, args...)}
}
