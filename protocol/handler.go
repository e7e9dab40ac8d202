package protocol

import "github.com/lumidox/lumidox-ii-controller/lumidoxerr"

// Transport is the capability contract a protocol Engine needs from the
// underlying link: write the full request frame, and read bytes until the
// response terminator (or the link's own timeout) is reached.
//
// The original Rust implementation modeled this as `Box<dyn SerialPort>`; in
// Go the equivalent is a small interface, implemented by serialio.Port for a
// real OS serial handle (any concrete serial library may back it).
type Transport interface {
	WriteAll(data []byte) error
	ReadUntilMarker(marker byte) ([]byte, error)
}

// Engine sequences one logical transaction: encode a request, write it,
// read the framed reply, and decode it. It performs no retry — a transient
// failure surfaces to the caller unchanged, because masking it risks a
// silently repeated SET_MODE(Remote) (spec §7).
type Engine struct {
	Transport Transport
}

// NewEngine wraps transport in a protocol Engine.
func NewEngine(transport Transport) *Engine {
	return &Engine{Transport: transport}
}

// Send builds the frame for (opcode, arg), writes it, reads the response,
// and returns the decoded signed 16-bit value.
func (e *Engine) Send(opcode []byte, arg uint16) (int32, error) {
	frame := EncodeFrame(opcode, arg)
	if err := e.Transport.WriteAll(frame); err != nil {
		return 0, lumidoxerr.IoError(err)
	}
	response, err := e.Transport.ReadUntilMarker(responseEnd)
	if err != nil {
		return 0, err // already a *lumidoxerr.Error from the transport
	}
	return DecodeFrame(response), nil
}
