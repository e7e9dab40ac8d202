package serial

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/lumidox/lumidox-ii-controller/models"
	"go.bug.st/serial/enumerator"
)

// compatibilityKeywords are descriptor substrings (vendor/product names,
// USB IDs) that suggest a port is a Lumidox-class device. Matching bumps the
// score; matching one of misfitKeywords instead drops it sharply.
var compatibilityKeywords = []string{
	"lumidox", "ftdi", "usb-serial", "usb serial", "ch340", "cp210", "prolific",
}

var misfitKeywords = []string{
	"mouse", "keyboard", "modem", "bluetooth", "printer",
}

// ListPorts returns the OS's best-effort list of serial port device names,
// preferring the cross-platform enumerator and falling back to filesystem
// globs when it returns nothing.
//
// Supported fallbacks: Linux /dev/ttyUSB*, /dev/ttyACM*; macOS /dev/cu.*,
// /dev/tty.*. Windows relies entirely on the enumerator (COM-port brute
// force scanning is not attempted — spec's auto-connect must not hang per
// §8 scenario 7, and an unbounded COM1..COM64 sweep risks exactly that on
// slow drivers).
func ListPorts() []*enumerator.PortDetails {
	if ports, err := enumerator.GetDetailedPortsList(); err == nil && len(ports) > 0 {
		out := make([]*enumerator.PortDetails, 0, len(ports))
		seen := make(map[string]struct{}, len(ports))
		for _, p := range ports {
			if p == nil || p.Name == "" {
				continue
			}
			if _, ok := seen[p.Name]; ok {
				continue
			}
			seen[p.Name] = struct{}{}
			out = append(out, p)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out
	}

	var names []string
	switch runtime.GOOS {
	case "darwin":
		names = listByGlob("/dev/cu.*", "/dev/tty.*")
	case "windows":
		names = nil
	default:
		names = listByGlob("/dev/ttyUSB*", "/dev/ttyACM*")
	}
	out := make([]*enumerator.PortDetails, 0, len(names))
	for _, n := range names {
		out = append(out, &enumerator.PortDetails{Name: n})
	}
	return out
}

// listByGlob expands filesystem glob patterns into a stable, de-duplicated
// list of existing paths.
func listByGlob(patterns ...string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, 16)
	for _, pat := range patterns {
		matches, _ := filepath.Glob(pat)
		for _, m := range matches {
			if m == "" {
				continue
			}
			if _, err := os.Stat(m); err != nil {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

// descriptorString builds the text a port's descriptor is scored against:
// its name plus whatever vendor/product strings the enumerator found.
func descriptorString(p *enumerator.PortDetails) string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	if p.IsUSB {
		sb.WriteByte(' ')
		sb.WriteString(p.VID)
		sb.WriteByte(' ')
		sb.WriteString(p.PID)
		sb.WriteByte(' ')
		sb.WriteString(p.Product)
		sb.WriteByte(' ')
		sb.WriteString(p.SerialNumber)
	}
	return sb.String()
}

// scorePort assigns a 0-100 compatibility score to a port's descriptor.
// Vendor keywords suggestive of the device class get a strong positive,
// generic COM/tty names get a neutral score, and obvious misfits (mouse,
// modem) get a strong negative.
func scorePort(descriptor string) (score int, reason string) {
	lower := strings.ToLower(descriptor)
	for _, kw := range misfitKeywords {
		if strings.Contains(lower, kw) {
			return 5, "descriptor matches known non-device keyword: " + kw
		}
	}
	for _, kw := range compatibilityKeywords {
		if strings.Contains(lower, kw) {
			return 80, "descriptor matches device-class keyword: " + kw
		}
	}
	return 50, "generic serial port, no descriptor match"
}

// matchesExclusion reports whether descriptor contains any of patterns
// (case-insensitive substring match).
func matchesExclusion(descriptor string, patterns []string) bool {
	lower := strings.ToLower(descriptor)
	for _, pat := range patterns {
		if pat == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(pat)) {
			return true
		}
	}
	return false
}

// DetectPorts enumerates OS serial ports, scores each by descriptor, and
// optionally probes the promising ones for a live firmware-version
// response. Candidates are returned sorted descending by score (C7).
func DetectPorts(cfg DetectConfig) []models.PortCandidate {
	ports := ListPorts()
	candidates := make([]models.PortCandidate, 0, len(ports))
	for _, p := range ports {
		descriptor := descriptorString(p)
		if matchesExclusion(descriptor, cfg.ExcludePatterns) {
			continue
		}
		score, reason := scorePort(descriptor)
		cand := models.PortCandidate{
			PortName:           p.Name,
			Descriptor:         descriptor,
			CompatibilityScore: score,
			ScoreReason:        reason,
		}
		if !cfg.DescriptorOnly && score > 10 {
			if info, ok := probeIdentity(p.Name, cfg.ProbeBaud, cfg.ProbeTimeout); ok {
				cand.Probed = true
				cand.DeviceDetails = info
				cand.CompatibilityScore += 15
				cand.ScoreReason += "; verified via firmware-version probe"
			}
		}
		candidates = append(candidates, cand)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CompatibilityScore > candidates[j].CompatibilityScore
	})
	return candidates
}

// DetectConfig tunes DetectPorts.
type DetectConfig struct {
	ProbeTimeout    int // milliseconds
	ProbeBaud       int
	DescriptorOnly  bool
	ExcludePatterns []string
}
