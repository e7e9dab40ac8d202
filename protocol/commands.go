package protocol

// Compile-time opcode tables. These carry no runtime state; they are the Go
// equivalent of the original protocol module's per-category command
// constant files (device_info.rs, device_control.rs, device_state.rs,
// stage_parameters.rs).

// FirmwareVersion reads the device firmware version as a single decoded
// value (opcode 0x02).
var FirmwareVersion = []byte("02")

// ModelCommands reads the 8-byte model number, one byte per opcode
// (0x6c..0x73).
var ModelCommands = [][]byte{
	[]byte("6c"), []byte("6d"), []byte("6e"), []byte("6f"),
	[]byte("70"), []byte("71"), []byte("72"), []byte("73"),
}

// SerialCommands reads the 12-byte serial number, one byte per opcode
// (0x60..0x6b).
var SerialCommands = [][]byte{
	[]byte("60"), []byte("61"), []byte("62"), []byte("63"),
	[]byte("64"), []byte("65"), []byte("66"), []byte("67"),
	[]byte("68"), []byte("69"), []byte("6a"), []byte("6b"),
}

// WavelengthCommands reads the 5-byte wavelength string.
//
// Opcodes 0x81, 0x82, 0x89, 0x8a overlap with StageVoltLimits/StageVoltStarts
// for stages 2 and 3. The device evidently disambiguates by session state;
// this package treats the two tables as independent logical operations and
// does not attempt to merge or reinterpret them (spec §9, Open Question 1).
var WavelengthCommands = [][]byte{
	[]byte("76"), []byte("81"), []byte("82"), []byte("89"), []byte("8a"),
}

// SetMode writes the device operating mode (opcode 0x15); arg is the
// DeviceMode value.
var SetMode = []byte("15")

// SetCurrent sets the firing current for subsequent fire operations
// (opcode 0x41); arg is milliamps.
var SetCurrent = []byte("41")

// ReadRemoteMode reads the current remote-mode/readiness state (opcode
// 0x13).
var ReadRemoteMode = []byte("13")

// ReadArmCurrent reads the configured arm current (opcode 0x20).
var ReadArmCurrent = []byte("20")

// ReadFireCurrent reads the configured fire current (opcode 0x21).
var ReadFireCurrent = []byte("21")

// SetArmCurrent sets the arm current (opcode 0x40); arg is milliamps.
var SetArmCurrent = []byte("40")

// StageCurrents reads a stage's fire current: index by Stage.Index().
var StageCurrents = [][]byte{
	[]byte("78"), []byte("80"), []byte("88"), []byte("90"), []byte("98"),
}

// StageArmCurrents reads a stage's arm current: index by Stage.Index().
var StageArmCurrents = [][]byte{
	[]byte("77"), []byte("7f"), []byte("87"), []byte("8f"), []byte("97"),
}

// StageVoltLimits reads a stage's voltage limit: index by Stage.Index().
// See the WavelengthCommands comment above re: opcode overlap.
var StageVoltLimits = [][]byte{
	[]byte("79"), []byte("81"), []byte("89"), []byte("91"), []byte("99"),
}

// StageVoltStarts reads a stage's voltage start: index by Stage.Index().
var StageVoltStarts = [][]byte{
	[]byte("7a"), []byte("82"), []byte("8a"), []byte("92"), []byte("9a"),
}
