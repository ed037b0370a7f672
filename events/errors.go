package events

import "fmt"

// Kind distinguishes the failures reported through an ERROR event.
type Kind string

const (
	KindTransport            Kind = "TransportError"
	KindInsufficientBalance  Kind = "NotEnoughTokens"
	KindInsufficientApproval Kind = "NotEnoughApprovedTokens"
	KindLedgerTransaction    Kind = "LedgerTransactionError"
	KindInvalidRequest       Kind = "InvalidRequest"
)

// Error is the payload of an ERROR event.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, if any
}

// Kind-only sentinels for use with errors.Is.
var (
	ErrTransport            = &Error{Kind: KindTransport}
	ErrInsufficientBalance  = &Error{Kind: KindInsufficientBalance}
	ErrInsufficientApproval = &Error{Kind: KindInsufficientApproval}
	ErrLedgerTransaction    = &Error{Kind: KindLedgerTransaction}
	ErrInvalidRequest       = &Error{Kind: KindInvalidRequest}
)

// NewError creates an Error with a formatted message.
func NewError(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// Name returns the kind as the error name callers match on.
func (e *Error) Name() string { return string(e.Kind) }

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
