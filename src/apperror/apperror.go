package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP layer can pick a status code without
// looking at message text.
type Kind int

const (
	KindUnexpected Kind = iota
	KindInvalidID
	KindStudentNotFound
	KindAttendanceNotFound
	KindRatingNotFound
	KindBadgeNotFound
	KindValidation
	KindDuplicateAttendance
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInvalidID:
		return "InvalidIdFormat"
	case KindStudentNotFound:
		return "StudentNotFound"
	case KindAttendanceNotFound:
		return "AttendanceNotFound"
	case KindRatingNotFound:
		return "RatingNotFound"
	case KindBadgeNotFound:
		return "BadgeNotFound"
	case KindValidation:
		return "ValidationError"
	case KindDuplicateAttendance:
		return "DuplicateAttendanceError"
	case KindConflict:
		return "Conflict"
	default:
		return "Unexpected"
	}
}

// IsNotFound reports whether the kind belongs to the "not found" class.
func (k Kind) IsNotFound() bool {
	switch k {
	case KindInvalidID, KindStudentNotFound, KindAttendanceNotFound, KindRatingNotFound, KindBadgeNotFound:
		return true
	}
	return false
}

// IsBadInput reports whether the kind belongs to the "bad input" class.
func (k Kind) IsBadInput() bool {
	switch k {
	case KindValidation, KindDuplicateAttendance, KindConflict:
		return true
	}
	return false
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches kind sentinels, so errors.Is(err, apperror.ErrStudentNotFound)
// holds for any StudentNotFound error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrUnexpected          = &Error{Kind: KindUnexpected}
	ErrInvalidID           = &Error{Kind: KindInvalidID}
	ErrStudentNotFound     = &Error{Kind: KindStudentNotFound}
	ErrAttendanceNotFound  = &Error{Kind: KindAttendanceNotFound}
	ErrRatingNotFound      = &Error{Kind: KindRatingNotFound}
	ErrBadgeNotFound       = &Error{Kind: KindBadgeNotFound}
	ErrValidation          = &Error{Kind: KindValidation}
	ErrDuplicateAttendance = &Error{Kind: KindDuplicateAttendance}
	ErrConflict            = &Error{Kind: KindConflict}
)

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags err with kind. The message of err is kept.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Unexpected wraps an infrastructure failure unless it is already classified.
func Unexpected(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindUnexpected, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, KindUnexpected otherwise.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnexpected
}
