package serial

import (
	"strconv"
	"time"

	"github.com/lumidox/lumidox-ii-controller/models"
	"github.com/lumidox/lumidox-ii-controller/protocol"
	"gonum.org/v1/gonum/stat"
)

// probeIdentity opens name at baud and attempts a firmware-version read
// within timeoutMs. On success it returns a minimal DeviceInfo (firmware
// version only — full identity requires the device session's string
// assembly, which the detector does not perform).
func probeIdentity(name string, baud int, timeoutMs int) (*models.DeviceInfo, bool) {
	if baud == 0 {
		baud = 19200
	}
	if timeoutMs <= 0 {
		timeoutMs = 300
	}
	port, err := Open(name, baud, time.Duration(timeoutMs)*time.Millisecond)
	if err != nil {
		return nil, false
	}
	defer func() { _ = port.Close() }()

	engine := protocol.NewEngine(port)
	val, err := engine.Send(protocol.FirmwareVersion, 0)
	if err != nil {
		return nil, false
	}
	return &models.DeviceInfo{FirmwareVersion: strconv.Itoa(int(val))}, true
}

// TestAllBaudRates tests each baud in cfg.BaudRates against port, running
// cfg.AttemptsPerRate identifying transactions per rate and scoring the
// result. Results are returned in input order; the caller picks the best by
// QualityScore, breaking ties toward the first (default) entry (C8).
//
// The quality score blends the success ratio with a latency term: for the
// successful attempts, the mean and standard deviation of round-trip time
// are folded in via gonum/stat so that a baud that succeeds but is slow or
// erratic scores lower than one that succeeds quickly and consistently.
func TestAllBaudRates(portName string, cfg BaudProbeConfig) []models.BaudResult {
	rates := cfg.BaudRates
	if len(rates) == 0 {
		rates = models.DefaultBaudRates
	}
	attempts := cfg.AttemptsPerRate
	if attempts <= 0 {
		attempts = 2
	}
	timeout := cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = 300 * time.Millisecond
	}

	results := make([]models.BaudResult, 0, len(rates))
	for _, baud := range rates {
		successes := 0
		latencies := make([]float64, 0, attempts)
		port, err := Open(portName, baud, timeout)
		if err == nil {
			engine := protocol.NewEngine(port)
			for i := 0; i < attempts; i++ {
				start := time.Now()
				if _, err := engine.Send(protocol.FirmwareVersion, 0); err == nil {
					successes++
					latencies = append(latencies, time.Since(start).Seconds())
				}
			}
			_ = port.Close()
		}

		quality := (float64(successes) / float64(attempts)) * 100
		if len(latencies) > 0 {
			mean := stat.Mean(latencies, nil)
			var stdDev float64
			if len(latencies) > 1 {
				stdDev = stat.StdDev(latencies, nil)
			}
			// Faster, more consistent responses earn a bonus of up to 20
			// points; slow or jittery ones earn less.
			bonus := 20 - (mean*1000 + stdDev*1000)
			if bonus < 0 {
				bonus = 0
			}
			if bonus > 20 {
				bonus = 20
			}
			quality += bonus
		}

		results = append(results, models.BaudResult{
			BaudRate:            baud,
			Success:             successes > 0,
			QualityScore:        quality,
			SuccessfulResponses: successes,
			TotalAttempts:       attempts,
		})
	}
	return results
}

// BaudProbeConfig tunes TestAllBaudRates.
type BaudProbeConfig struct {
	BaudRates       []int
	AttemptsPerRate int
	ProbeTimeout    time.Duration
}
