// Package errors defines the failure kinds reported by symlinker. Every
// failure that reaches the user carries a Kind, the offending path and a
// one-line message.
package errors

import (
	"errors"
	"fmt"
	"syscall"
)

// Kind classifies a failure so callers can branch on it without string
// matching.
type Kind string

const (
	Unknown                Kind = "UNKNOWN"
	InvalidInput           Kind = "INVALID_INPUT"
	ConfigLoad             Kind = "CONFIG_LOAD"
	PathUnavailable        Kind = "PATH_UNAVAILABLE"
	DestinationUnavailable Kind = "DESTINATION_UNAVAILABLE"
	AlreadyExists          Kind = "ALREADY_EXISTS"
	NotASymlink            Kind = "NOT_A_SYMLINK"
	SymlinkMissing         Kind = "SYMLINK_MISSING"
	PermissionDenied       Kind = "PERMISSION_DENIED"
	OSFailure              Kind = "OS_FAILURE"
)

// Error is a failure of a known Kind, optionally wrapping the OS error that
// caused it.
type Error struct {
	Kind    Kind
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

func New(kind Kind, path, message string) *Error {
	return &Error{Kind: kind, Path: path, Message: message}
}

func Newf(kind Kind, path, format string, args ...interface{}) *Error {
	return New(kind, path, fmt.Sprintf(format, args...))
}

// Wrap returns nil when err is nil.
func Wrap(err error, kind Kind, path, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Path: path, Message: message, Err: err}
}

func Wrapf(err error, kind Kind, path, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, kind, path, fmt.Sprintf(format, args...))
}

// KindOf returns the Kind of err, or Unknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Errno extracts the OS error number wrapped somewhere in err.
func Errno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}

// Message returns the user-facing line for err: the Message of an *Error,
// without the wrapped OS detail, or err.Error() otherwise.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
