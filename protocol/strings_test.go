package protocol

import (
	"testing"

	"github.com/lumidox/lumidox-ii-controller/lumidoxerr"
)

// fakeTransport replays a fixed sequence of responses, one per Send call, so
// ReadString can be tested without a real serial link.
type fakeTransport struct {
	responses [][]byte
	i         int
}

func (f *fakeTransport) WriteAll(data []byte) error { return nil }

func (f *fakeTransport) ReadUntilMarker(marker byte) ([]byte, error) {
	if f.i >= len(f.responses) {
		return nil, lumidoxerr.ProtocolErrorf("no response")
	}
	r := f.responses[f.i]
	f.i++
	return r, nil
}

func frameResponse(v int32) []byte {
	arg := uint16(int16(v))
	frame := EncodeFrame(SetCurrent, arg)
	resp := append([]byte{'*'}, frame[3:7]...)
	return append(resp, '^')
}

func TestReadStringTrimsTrailingNulsAndSkipsOutOfRange(t *testing.T) {
	transport := &fakeTransport{responses: [][]byte{
		frameResponse('A'),
		frameResponse('B'),
		frameResponse('C'),
		frameResponse(0),   // skipped: not in 1..=255
		frameResponse(300), // skipped: not in 1..=255
		frameResponse(0),
	}}
	engine := NewEngine(transport)
	got, err := ReadString(engine, [][]byte{
		[]byte("00"), []byte("01"), []byte("02"), []byte("03"), []byte("04"), []byte("05"),
	})
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}
	if got != "ABC" {
		t.Fatalf("ReadString = %q, want %q", got, "ABC")
	}
}

func TestReadStringAllOutOfRangeYieldsEmptyString(t *testing.T) {
	transport := &fakeTransport{responses: [][]byte{
		frameResponse(0),
		frameResponse(256),
	}}
	engine := NewEngine(transport)
	got, err := ReadString(engine, [][]byte{[]byte("00"), []byte("01")})
	if err != nil {
		t.Fatalf("ReadString error: %v", err)
	}
	if got != "" {
		t.Fatalf("ReadString = %q, want empty string", got)
	}
}
