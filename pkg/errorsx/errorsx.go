package errorsx

import "errors"

// ReasonCode is a short machine-readable failure reason. The client never
// surfaces errors to callers, so reasons exist to make the logged failures
// greppable and countable.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	// Transport resolution failures; the client degrades to the no-op
	// sender when one of these is hit.
	ReasonConfigInvalid ReasonCode = "config_invalid"
	ReasonResolve       ReasonCode = "resolve_failed"
	ReasonSocketOpen    ReasonCode = "socket_open_failed"

	// Per-send failure; logged and dropped, the sender stays live.
	ReasonSend ReasonCode = "send_failed"
)

// ReasonedError wraps an error with a reason code.
type ReasonedError struct {
	Err    error
	Reason ReasonCode
}

func (e ReasonedError) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return e.Err.Error()
}

func (e ReasonedError) Unwrap() error {
	return e.Err
}

// Wrap attaches a reason code to an error (no-op if err is nil or already
// reasoned).
func Wrap(err error, reason ReasonCode) error {
	if err == nil {
		return nil
	}
	var re ReasonedError
	if errors.As(err, &re) {
		return err
	}
	return ReasonedError{Err: err, Reason: reason}
}

// Reason extracts a reason code from an error, if present.
func Reason(err error) ReasonCode {
	if err == nil {
		return ReasonUnknown
	}
	var re ReasonedError
	if errors.As(err, &re) {
		return re.Reason
	}
	return ReasonUnknown
}

// HasReason returns true if err carries the given reason code.
func HasReason(err error, reason ReasonCode) bool {
	return Reason(err) == reason
}
