// Package failure classifies the errors that can occur while migrating a
// single legacy object. None of them is fatal to a batch run; the migrator
// decides whether to record or to abort based on debug mode.
package failure

import (
	"errors"
	"fmt"
)

// Kind is the class of a migration failure.
type Kind int

const (
	// KindUnknown is anything not produced by this package.
	KindUnknown Kind = iota
	// KindParse is an expression using unsupported tokens or an operator
	// without enough operands.
	KindParse
	// KindUnresolvedReference is a name pointing at a metric that is not
	// part of the loaded metric infos.
	KindUnresolvedReference
	// KindSchemaMismatch is a legacy record missing or misusing a field.
	KindSchemaMismatch
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse_failure"
	case KindUnresolvedReference:
		return "unresolved_reference"
	case KindSchemaMismatch:
		return "schema_mismatch"
	default:
		return "unknown"
	}
}

var (
	ErrParse                = errors.New("parse failure")
	ErrUnresolved           = errors.New("unresolved reference")
	ErrSchemaMismatch       = errors.New("schema mismatch")
	ErrUnsupportedToken     = fmt.Errorf("%w: unsupported token", ErrParse)
	ErrInsufficientOperands = fmt.Errorf("%w: insufficient operands", ErrParse)
)

// Error is a classified failure. Op names the step that failed and Subject
// the offending input (an expression, a field name, a metric name).
type Error struct {
	Kind    Kind
	Op      string
	Subject string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Subject != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Subject)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match the class sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrParse:
		return e.Kind == KindParse
	case ErrUnresolved:
		return e.Kind == KindUnresolvedReference
	case ErrSchemaMismatch:
		return e.Kind == KindSchemaMismatch
	}
	return false
}

// Parse wraps err as a parse failure.
func Parse(op, subject string, err error) error {
	return &Error{Kind: KindParse, Op: op, Subject: subject, Err: err}
}

// Parsef builds a parse failure from a message.
func Parsef(op, subject, format string, args ...any) error {
	return Parse(op, subject, fmt.Errorf(format, args...))
}

// Unresolved reports a reference to an unknown metric.
func Unresolved(op, metricName string) error {
	return &Error{Kind: KindUnresolvedReference, Op: op, Subject: metricName}
}

// Schema reports a legacy record that does not have the expected shape.
func Schema(op, field string, err error) error {
	return &Error{Kind: KindSchemaMismatch, Op: op, Subject: field, Err: err}
}

// Schemaf builds a schema mismatch from a message.
func Schemaf(op, field, format string, args ...any) error {
	return Schema(op, field, fmt.Errorf(format, args...))
}

// KindOf returns the class of err, KindUnknown if it is not classified.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

func IsParse(err error) bool          { return errors.Is(err, ErrParse) }
func IsUnresolved(err error) bool     { return errors.Is(err, ErrUnresolved) }
func IsSchemaMismatch(err error) bool { return errors.Is(err, ErrSchemaMismatch) }
