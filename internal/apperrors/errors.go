package apperrors

import "errors"

// User-facing messages.
const (
	MsgInvalidArguments = "Invalid command arguments. See /help for usage."
	MsgNotFound         = "No exchange rate data is available for the selected currency."
	MsgConnection       = "No exchange rate data is available. Please, try again later."
	MsgInternal         = "Whoops. Something goes wrong, please try again later."
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindInvalidArgument
	KindAPI
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindAPI:
		return "api_error"
	case KindNotFound:
		return "not_found"
	default:
		return "unexpected"
	}
}

// Error is a failure whose Message is safe to show to the user.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func InvalidArgument(message string) error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func API(message string) error {
	return &Error{Kind: KindAPI, Message: message}
}

// Unavailable reports a transport failure talking to the origin.
func Unavailable(cause error) error {
	return &Error{Kind: KindAPI, Message: MsgConnection, Err: cause}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf returns KindUnexpected for nil and for errors that are not *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// UserMessage is the text shown for err. Unexpected errors never leak details.
func UserMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindUnexpected {
		return appErr.Message
	}
	return MsgInternal
}
