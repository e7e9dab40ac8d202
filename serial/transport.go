// Package serial owns the OS serial handle: opening it with the right
// framing, enforcing read/write timeouts, and delivering raw bytes to the
// protocol layer. It also implements port enumeration/scoring (C7) and baud
// probing (C8), since both need the same low-level port-open primitives
// this file provides.
//
// Grounded on the original tooling's own serial package: the same
// open-8N1-with-ReadTimeout configuration, and the same byte-at-a-time
// read-until-terminator loop, adapted from a CRLF-terminated ASCII protocol
// to the Lumidox frame protocol's single '^' terminator byte.
package serial

import (
	"time"

	"github.com/lumidox/lumidox-ii-controller/lumidoxerr"
	goserial "github.com/tarm/serial"
)

// DefaultTimeout is the default per-transaction read timeout (spec §4.2).
const DefaultTimeout = time.Second

// Port wraps an open OS serial handle and implements protocol.Transport.
//
// A Port is exclusively owned by the device session built on top of it;
// there is no shared mutation of the handle across goroutines (spec §3
// invariants, §5 concurrency model).
type Port struct {
	name string
	conn *goserial.Port
}

// Open opens name at baud, 8N1, with the given read timeout, and returns a
// ready-to-use Port.
func Open(name string, baud int, timeout time.Duration) (*Port, error) {
	cfg := &goserial.Config{
		Name:        name,
		Baud:        baud,
		Parity:      goserial.ParityNone,
		Size:        8,
		StopBits:    goserial.Stop1,
		ReadTimeout: timeout,
	}
	conn, err := goserial.OpenPort(cfg)
	if err != nil {
		return nil, lumidoxerr.SerialError(name, err)
	}
	return &Port{name: name, conn: conn}, nil
}

// Close releases the OS serial handle.
func (p *Port) Close() error {
	if err := p.conn.Close(); err != nil {
		return lumidoxerr.SerialError(p.name, err)
	}
	return nil
}

// Name returns the port name this handle was opened with.
func (p *Port) Name() string { return p.name }

// WriteAll writes the full request frame to the port.
func (p *Port) WriteAll(data []byte) error {
	if _, err := p.conn.Write(data); err != nil {
		return lumidoxerr.IoError(err)
	}
	return nil
}

// ReadUntilMarker reads one byte at a time into a growing buffer until
// marker is seen or the OS read returns zero bytes (EOF on the link,
// typically the configured read timeout firing).
//
// Byte-at-a-time is deliberate: device replies are short (<=16 bytes) and
// the terminator is in-band, so a buffered reader would need its own
// demultiplexer for marginal gain (spec §4.2).
func (p *Port) ReadUntilMarker(marker byte) ([]byte, error) {
	buf := make([]byte, 0, 16)
	tmp := make([]byte, 1)
	for {
		n, err := p.conn.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[0])
			if tmp[0] == marker {
				return buf, nil
			}
			continue
		}
		if err != nil {
			return buf, lumidoxerr.IoError(err)
		}
		break
	}
	if len(buf) == 0 {
		return nil, lumidoxerr.ProtocolErrorf("no response")
	}
	return buf, nil
}
