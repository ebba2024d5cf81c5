package dfu

import (
	"errors"
	"fmt"
)

// ErrArgument is returned when a caller-supplied path or payload exceeds
// the wire format's size limits.
var ErrArgument = errors.New("dfu: argument out of range")

// ErrProtocolViolation is the sentinel every *ProtocolError matches via
// errors.Is. Test against it rather than type-asserting *ProtocolError
// unless the extra fields are needed.
var ErrProtocolViolation = errors.New("dfu: protocol violation")

// ProtocolError reports a malformed or unexpected response frame: a status
// byte other than 1, a response command that does not match the request,
// or a declared length/offset/entry-number that disagrees with what was
// actually received. None of these are retried; by convention a Session
// that returns a *ProtocolError should be discarded.
type ProtocolError struct {
	// Op names the operation in progress, e.g. "list_dir" or "read_file".
	Op string

	// WantCommand and GotCommand are the expected and actual response
	// command bytes. WantCommand is set only when the command byte was
	// wrong; GotCommand is also set when the status was bad. Both are zero
	// for other violations (e.g. a truncated frame).
	WantCommand, GotCommand byte

	// Status is the raw status byte from the response, preserved for
	// diagnostics. The Session's own checks set it to 1 when the violation
	// is not a bad status; the body decoders in wire.go leave it zero.
	Status int8

	// Detail is a short human-readable description of what was wrong.
	Detail string
}

func (e *ProtocolError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("dfu: %s: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("dfu: %s", e.Detail)
}

func (e *ProtocolError) Is(target error) bool {
	return target == ErrProtocolViolation
}

func errBadStatus(op string, got byte, status int8) *ProtocolError {
	return &ProtocolError{
		Op:         op,
		GotCommand: got,
		Status:     status,
		Detail:     fmt.Sprintf("status %d, want 1", status),
	}
}

func errBadCommand(op string, want, got byte) *ProtocolError {
	return &ProtocolError{
		Op:          op,
		WantCommand: want,
		GotCommand:  got,
		Status:      statusOK,
		Detail:      fmt.Sprintf("response command 0x%02x, want 0x%02x", got, want),
	}
}

func errShortFrame(op string, detail string) *ProtocolError {
	return &ProtocolError{Op: op, Status: statusOK, Detail: detail}
}
