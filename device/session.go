// Package device implements the Lumidox II session state machine (C6) and
// the auto-connect orchestration (C9) built on top of it.
//
// Grounded on the original tooling's Leo485 device wrapper: a struct holding
// one open transport plus typed operations built on send/receive helpers,
// adapted from the load-cell ADC protocol to the Lumidox frame protocol and
// its mode/stage/current command surface.
package device

import (
	"strconv"
	"time"

	"github.com/lumidox/lumidox-ii-controller/models"
	"github.com/lumidox/lumidox-ii-controller/protocol"
	serialio "github.com/lumidox/lumidox-ii-controller/serial"
)

// portHandle is the subset of *serialio.Port a Session needs: the frame
// transport plus lifecycle/identity. Accepting this interface rather than
// the concrete type lets tests wire in a fake transport without opening a
// real OS serial handle.
type portHandle interface {
	protocol.Transport
	Close() error
	Name() string
}

// Session is a live, authenticated connection to one Lumidox II device over
// one serial port at a known baud. It exclusively owns its transport; a
// Session is not safe for concurrent use from multiple goroutines without an
// external mutex (spec §5).
type Session struct {
	port   portHandle
	engine *protocol.Engine
}

// NewSession wraps an already-open port in a Session.
func NewSession(port portHandle) *Session {
	return &Session{port: port, engine: protocol.NewEngine(port)}
}

// Connect opens portName at baud with a read timeout and returns a ready
// Session.
func Connect(portName string, baud int, timeout time.Duration) (*Session, error) {
	if timeout <= 0 {
		timeout = serialio.DefaultTimeout
	}
	port, err := serialio.Open(portName, baud, timeout)
	if err != nil {
		return nil, err
	}
	return NewSession(port), nil
}

// Close releases the underlying transport.
func (s *Session) Close() error {
	return s.port.Close()
}

// PortName returns the name of the serial port this session is bound to.
func (s *Session) PortName() string { return s.port.Name() }

// ReadFirmwareVersion sends the firmware-version opcode and returns the
// decoded value (callers interpret its meaning; the device encodes it as a
// small integer, not a dotted version string).
func (s *Session) ReadFirmwareVersion() (int32, error) {
	return s.engine.Send(protocol.FirmwareVersion, 0)
}

// ReadModelNumber assembles the 8-character model number string.
func (s *Session) ReadModelNumber() (string, error) {
	return protocol.ReadString(s.engine, protocol.ModelCommands)
}

// ReadSerialNumber assembles the 12-character serial number string.
func (s *Session) ReadSerialNumber() (string, error) {
	return protocol.ReadString(s.engine, protocol.SerialCommands)
}

// ReadWavelength assembles the 5-character wavelength string.
func (s *Session) ReadWavelength() (string, error) {
	return protocol.ReadString(s.engine, protocol.WavelengthCommands)
}

// Identify reads firmware/model/serial/wavelength and returns a DeviceInfo.
// maxCurrentMA is a host-configured value, not read from the device.
func (s *Session) Identify(maxCurrentMA uint16) (*models.DeviceInfo, error) {
	firmware, err := s.ReadFirmwareVersion()
	if err != nil {
		return nil, err
	}
	model, err := s.ReadModelNumber()
	if err != nil {
		return nil, err
	}
	serialNum, err := s.ReadSerialNumber()
	if err != nil {
		return nil, err
	}
	wavelength, err := s.ReadWavelength()
	if err != nil {
		return nil, err
	}
	return &models.DeviceInfo{
		FirmwareVersion: strconv.Itoa(int(firmware)),
		ModelNumber:     model,
		SerialNumber:    serialNum,
		Wavelength:      wavelength,
		MaxCurrentMA:    maxCurrentMA,
	}, nil
}

// ReadRemoteMode reads the device's current mode/readiness state.
func (s *Session) ReadRemoteMode() (int32, error) {
	return s.engine.Send(protocol.ReadRemoteMode, 0)
}

// SetMode transitions the device to mode via a single SET_MODE opcode. The
// session does not enforce that transitions follow the documented diagram
// (Local -> Standby -> Armed -> Remote) — the device does; the session only
// issues the write (spec §4.6).
func (s *Session) SetMode(mode models.DeviceMode) error {
	_, err := s.engine.Send(protocol.SetMode, uint16(mode))
	return err
}

// Arm transitions to Armed.
func (s *Session) Arm() error { return s.SetMode(models.Armed) }

// Standby transitions to Standby.
func (s *Session) Standby() error { return s.SetMode(models.Standby) }

// Off transitions to Standby: de-energizes stage outputs ("On, Output Off")
// while leaving the host in control, rather than Local which hands control
// back to the device's own panel. See SPEC_FULL.md §6 (Open Question
// resolution) for the rationale.
func (s *Session) Off() error { return s.SetMode(models.Standby) }

// ReadArmCurrent reads the configured arm current, in mA.
func (s *Session) ReadArmCurrent() (int32, error) {
	return s.engine.Send(protocol.ReadArmCurrent, 0)
}

// ReadFireCurrent reads the configured fire current, in mA.
func (s *Session) ReadFireCurrent() (int32, error) {
	return s.engine.Send(protocol.ReadFireCurrent, 0)
}

// SetArmCurrent sets the arm current, in mA.
func (s *Session) SetArmCurrent(mA uint16) error {
	_, err := s.engine.Send(protocol.SetArmCurrent, mA)
	return err
}

// SetCurrent sets the firing current used by subsequent fire operations, in
// mA.
func (s *Session) SetCurrent(mA uint16) error {
	_, err := s.engine.Send(protocol.SetCurrent, mA)
	return err
}

// FireStage programs stage's fire current and then transitions the device
// to Remote mode. Order is: current first, then mode — see SPEC_FULL.md §6
// (Open Question resolution) — because arming the device before the target
// current is loaded risks firing at whatever current was last configured.
func (s *Session) FireStage(stage models.Stage) error {
	if err := s.SetCurrent(stage.CurrentMA); err != nil {
		return err
	}
	return s.SetMode(models.Remote)
}

// ReadStageFireCurrent reads stage's configured fire current.
func (s *Session) ReadStageFireCurrent(stage models.Stage) (int32, error) {
	return s.engine.Send(protocol.StageCurrents[stage.Index()], 0)
}

// ReadStageArmCurrent reads stage's configured arm current.
func (s *Session) ReadStageArmCurrent(stage models.Stage) (int32, error) {
	return s.engine.Send(protocol.StageArmCurrents[stage.Index()], 0)
}

// ReadStageVoltLimit reads stage's voltage limit, in raw device units.
func (s *Session) ReadStageVoltLimit(stage models.Stage) (int32, error) {
	return s.engine.Send(protocol.StageVoltLimits[stage.Index()], 0)
}

// ReadStageVoltStart reads stage's voltage start, in raw device units.
func (s *Session) ReadStageVoltStart(stage models.Stage) (int32, error) {
	return s.engine.Send(protocol.StageVoltStarts[stage.Index()], 0)
}
