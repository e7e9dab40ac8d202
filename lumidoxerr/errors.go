// Package lumidoxerr defines the unified error type shared by every layer of
// the controller: transport, protocol, discovery, and device session.
//
// The original control software (a Rust codebase) split failures into deeply
// nested category enums per concern (connection/timeout/state/firmware/...),
// each carrying no behavior beyond formatting a string. Those collapse here
// into a single sum type with six kinds and constructor helpers, per the
// re-architecture called for by the wire protocol this package backs.
package lumidoxerr

import "fmt"

// Kind classifies a failure so callers can decide whether to retry,
// reconnect, or surface the error to a human unchanged.
type Kind int

const (
	// Serial covers OS/driver-level port errors: open, configure, close.
	Serial Kind = iota
	// Io covers read/write/timeout failures on an already-open port.
	Io
	// InvalidInput covers caller precondition violations (stage out of
	// range, current out of range).
	InvalidInput
	// Device covers device-reported or device-derived failures (unexpected
	// state, no candidate ports, auto-connect exhausted).
	Device
	// Config covers configuration/file/environment issues.
	Config
	// Protocol covers framing, length, or decoding failures.
	Protocol
)

func (k Kind) String() string {
	switch k {
	case Serial:
		return "serial"
	case Io:
		return "io"
	case InvalidInput:
		return "invalid input"
	case Device:
		return "device"
	case Config:
		return "config"
	case Protocol:
		return "protocol"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ExitCode returns the process exit code the CLI surface assigns to each
// kind (spec §6): protocol=2, device=3, invalid input=4, config=5, io=6.
// Serial errors share the io code since both name an unavailable link.
func (k Kind) ExitCode() int {
	switch k {
	case Protocol:
		return 2
	case Device:
		return 3
	case InvalidInput:
		return 4
	case Config:
		return 5
	case Io, Serial:
		return 6
	default:
		return 1
	}
}

// Error is the single failure type produced by every package in this module.
type Error struct {
	Kind Kind
	Msg  string
	// Err is the underlying cause, if any (a driver error, an os.PathError,
	// etc). It is never nil for Serial/Io kinds produced by a wrapped
	// library call.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a Kind-tagged error with a formatted message and no wrapped
// cause.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a Kind-tagged error that carries an underlying cause. The
// message is prefixed to the cause's own text, mirroring the
// `ErrorContext::with_context` pattern from the original protocol handler:
// add a human-facing label without losing the low-level detail.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// SerialError reports an OS/driver-level port failure, e.g. `serial port
// "COM3" error: port in use`.
func SerialError(port string, err error) *Error {
	return Wrap(Serial, err, "serial port %q error", port)
}

// IoError reports a read/write/timeout failure on an open transport.
func IoError(err error) *Error {
	return Wrap(Io, err, "io error")
}

// InvalidInputError reports a caller precondition violation.
func InvalidInputError(format string, args ...any) *Error {
	return New(InvalidInput, format, args...)
}

// DeviceErrorf reports a device-reported or device-derived failure.
func DeviceErrorf(format string, args ...any) *Error {
	return New(Device, format, args...)
}

// ConfigErrorf reports a configuration/file/environment failure.
func ConfigErrorf(format string, args ...any) *Error {
	return New(Config, format, args...)
}

// ProtocolErrorf reports a framing, length, or decode failure. "Protocol
// command 0x02 failed: expected firmware version, received timeout" is the
// user-visible shape named in spec §7.
func ProtocolErrorf(format string, args ...any) *Error {
	return New(Protocol, format, args...)
}

// Is reports whether err is a *Error of the given Kind. It lets callers
// write `if lumidoxerr.Is(err, lumidoxerr.Protocol) { reconnect() }` without
// a type assertion at every call site.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if le, ok := err.(*Error); ok {
			e = le
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
