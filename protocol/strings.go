package protocol

import "strings"

// ReadString assembles a printable string from a sequence of byte-wise
// opcodes: each opcode is sent with arg 0 via engine, and a returned value
// in 1..=255 is appended as one ASCII byte. Values outside that range are
// skipped (the firmware pads short identifiers with unused opcode slots).
//
// A NUL value (0) is never appended in the first place — it falls outside
// 1..=255 like any other skipped slot — so the trailing TrimRight below never
// finds a NUL to remove; it is kept to match the original assembler exactly
// rather than relied upon.
func ReadString(engine *Engine, opcodes [][]byte) (string, error) {
	var sb strings.Builder
	for _, opcode := range opcodes {
		val, err := engine.Send(opcode, 0)
		if err != nil {
			return "", err
		}
		if val > 0 && val < 256 {
			sb.WriteByte(byte(val))
		}
	}
	return strings.TrimRight(sb.String(), "\x00"), nil
}
