package device

import (
	"strconv"
	"time"

	"github.com/lumidox/lumidox-ii-controller/lumidoxerr"
	"github.com/lumidox/lumidox-ii-controller/models"
	serialio "github.com/lumidox/lumidox-ii-controller/serial"
)

// TestBaudRates exposes the baud prober (C8) to callers outside the serial
// package (e.g. the CLI's `test-baud` command) without requiring them to
// depend on serialio's lower-level config type directly.
func TestBaudRates(portName string, rates []int, attemptsPerRate int, probeTimeout time.Duration) []models.BaudResult {
	return serialio.TestAllBaudRates(portName, serialio.BaudProbeConfig{
		BaudRates:       rates,
		AttemptsPerRate: attemptsPerRate,
		ProbeTimeout:    probeTimeout,
	})
}

// ConnectionReport describes how an auto-connect run found its device:
// chosen port, chosen baud, elapsed time, and the method used.
type ConnectionReport struct {
	PortName   string
	Baud       int
	Elapsed    time.Duration
	Method     models.ConnectionMethod
	Candidates []models.PortCandidate
}

// AutoConnect orchestrates port detection (C7), baud probing (C8), and
// session construction (C6) into one ready Session, grounded on the
// original tool's AutoDetectPortTrace: walk each enumerated candidate in
// score order, falling back to a full baud sweep only when descriptor trust
// doesn't pan out. cfg.Port is not consulted; only enumerated ports are
// tried.
func AutoConnect(cfg *models.Config) (*Session, *ConnectionReport, error) {
	start := time.Now()

	detectCfg := serialio.DetectConfig{
		ProbeTimeout:    int(cfg.Discovery.ProbeTimeout / time.Millisecond),
		ProbeBaud:       cfg.Baud,
		DescriptorOnly:  cfg.Discovery.ProbeDescriptorOnly,
		ExcludePatterns: cfg.Discovery.ExcludePatterns,
	}
	candidates := serialio.DetectPorts(detectCfg)
	if len(candidates) == 0 {
		return nil, nil, lumidoxerr.DeviceErrorf("no candidate ports")
	}

	for _, cand := range candidates {
		if cfg.Discovery.TrustDescriptor && cand.Probed {
			baud := cfg.Baud
			if baud == 0 {
				baud = 19200
			}
			session, err := Connect(cand.PortName, baud, cfg.Timeout)
			if err == nil {
				return session, &ConnectionReport{
					PortName:   cand.PortName,
					Baud:       baud,
					Elapsed:    time.Since(start),
					Method:     models.DescriptorMatch,
					Candidates: candidates,
				}, nil
			}
		}

		results := serialio.TestAllBaudRates(cand.PortName, serialio.BaudProbeConfig{
			BaudRates:       cfg.Discovery.BaudRates,
			AttemptsPerRate: cfg.Discovery.AttemptsPerRate,
			ProbeTimeout:    cfg.Discovery.ProbeTimeout,
		})
		best, ok := bestBaudResult(results, cfg.Discovery.QualityThreshold)
		if !ok {
			continue
		}

		session, err := Connect(cand.PortName, best.BaudRate, cfg.Timeout)
		if err != nil {
			continue
		}
		if _, err := session.ReadFirmwareVersion(); err != nil {
			_ = session.Close()
			continue
		}
		return session, &ConnectionReport{
			PortName:   cand.PortName,
			Baud:       best.BaudRate,
			Elapsed:    time.Since(start),
			Method:     models.BaudProbe,
			Candidates: candidates,
		}, nil
	}

	return nil, nil, lumidoxerr.DeviceErrorf("auto-connect exhausted")
}

// bestBaudResult picks the highest-quality result at or above threshold,
// breaking ties in favor of whichever appears first (the configured
// default baud, since DefaultBaudRates lists it first).
func bestBaudResult(results []models.BaudResult, threshold float64) (models.BaudResult, bool) {
	var best models.BaudResult
	found := false
	for _, r := range results {
		if !r.Success || r.QualityScore < threshold {
			continue
		}
		if !found || r.QualityScore > best.QualityScore {
			best = r
			found = true
		}
	}
	return best, found
}

// PortDiagnostics returns human-readable lines describing enumerated ports,
// their scores, and probe results — feeds the CLI's `port-diagnostics`
// surface (spec §6), grounded on the original demo's diagnostics loop.
func PortDiagnostics(cfg *models.Config) []string {
	detectCfg := serialio.DetectConfig{
		ProbeTimeout:    int(cfg.Discovery.ProbeTimeout / time.Millisecond),
		ProbeBaud:       cfg.Baud,
		DescriptorOnly:  cfg.Discovery.ProbeDescriptorOnly,
		ExcludePatterns: cfg.Discovery.ExcludePatterns,
	}
	candidates := serialio.DetectPorts(detectCfg)
	lines := make([]string, 0, len(candidates)+1)
	if len(candidates) == 0 {
		return append(lines, "no serial ports enumerated")
	}
	for _, c := range candidates {
		line := c.PortName + ": score=" + strconv.Itoa(c.CompatibilityScore) + " (" + c.ScoreReason + ")"
		if c.Probed && c.DeviceDetails != nil {
			line += " firmware=" + c.DeviceDetails.FirmwareVersion
		}
		lines = append(lines, line)
	}
	return lines
}
