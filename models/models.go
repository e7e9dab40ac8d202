// Package models defines the domain data structures shared across the
// controller: device identity/power readings, stage values, operating mode,
// and the records produced by port/baud discovery.
//
// These types mirror the shape of the device's identity/state model
// (firmware version, model/serial/wavelength strings, per-stage currents)
// with no UI state attached — a CLI or GUI caller reconstructs its own
// presentation state around these plain structs.
package models

import (
	"fmt"

	"github.com/lumidox/lumidox-ii-controller/lumidoxerr"
)

// DeviceMode is the device's operational state, written via the SET_MODE
// opcode with the mode number as the frame argument.
type DeviceMode int

const (
	Local DeviceMode = iota
	Standby
	Armed
	Remote
)

// String implements fmt.Stringer.
func (m DeviceMode) String() string {
	switch m {
	case Local:
		return "Local"
	case Standby:
		return "Standby"
	case Armed:
		return "Armed"
	case Remote:
		return "Remote"
	default:
		return fmt.Sprintf("DeviceMode(%d)", int(m))
	}
}

// NumStages is the number of independently programmable firing channels the
// Lumidox II family exposes.
const NumStages = 5

// Stage is a value object identifying one of the device's five firing
// channels (1..=5) and the current, in mA, it is to be (or was) programmed
// with. Stage numbers are validated at construction so an out-of-range
// number can never reach a table lookup.
type Stage struct {
	Number    int
	CurrentMA uint16
}

// NewStage validates number and returns a zero-current Stage.
func NewStage(number int) (Stage, error) {
	if number < 1 || number > NumStages {
		return Stage{}, lumidoxerr.InvalidInputError("invalid stage number %d: must be 1-%d", number, NumStages)
	}
	return Stage{Number: number}, nil
}

// Index returns the zero-based table index for this stage, for callers
// indexing the per-stage opcode tables directly.
func (s Stage) Index() int { return s.Number - 1 }

// DeviceInfo is the device's read-only identity: the firmware version (the
// decimal text of a single decoded value), the model/serial/wavelength
// strings assembled byte-wise from opcode sequences, and the
// host-configured max current.
type DeviceInfo struct {
	FirmwareVersion string
	ModelNumber     string
	SerialNumber    string
	Wavelength      string
	MaxCurrentMA    uint16
}

// PowerInfo is a power measurement reading: aggregate and per-stage power
// with their unit labels.
type PowerInfo struct {
	TotalPower float32
	TotalUnits string
	PerPower   float32
	PerUnits   string
}

// PortCandidate is one OS serial port scored (and optionally probed) by the
// port detector (C7).
type PortCandidate struct {
	PortName           string
	Descriptor         string // vendor/product/name info used to derive the score
	CompatibilityScore int    // 0-100
	ScoreReason        string
	Probed             bool
	DeviceDetails      *DeviceInfo // non-nil only when Probed succeeded
}

// BaudResult is the outcome of testing one candidate baud rate against a
// port (C8).
type BaudResult struct {
	BaudRate            int
	Success             bool
	QualityScore        float64
	SuccessfulResponses int
	TotalAttempts       int
}

// ConnectionMethod records how an auto-connect run found its device.
type ConnectionMethod int

const (
	DescriptorMatch ConnectionMethod = iota
	BaudProbe
	Fallback
)

// String implements fmt.Stringer.
func (m ConnectionMethod) String() string {
	switch m {
	case DescriptorMatch:
		return "DescriptorMatch"
	case BaudProbe:
		return "BaudProbe"
	case Fallback:
		return "Fallback"
	default:
		return fmt.Sprintf("ConnectionMethod(%d)", int(m))
	}
}
