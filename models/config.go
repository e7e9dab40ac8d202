package models

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lumidox/lumidox-ii-controller/lumidoxerr"
)

// Config is the host-side connection configuration: either a known port/baud
// pair, or enough discovery tuning to let auto-connect find one. It mirrors
// the shape of the original tool's SERIAL block (PORT/BAUDRATE) plus the
// timeout and discovery knobs that block never carried.
type Config struct {
	Port    string        `json:"port" toml:"port"`
	Baud    int           `json:"baud" toml:"baud"`
	Timeout time.Duration `json:"timeout" toml:"timeout"`
	// MaxCurrentMA is a host-configured ceiling on firing current, in mA. The
	// device never reports this value itself (spec §3: DeviceInfo.max_current_ma
	// is "configured, not read") — it comes from here, mirroring the
	// teacher's config-driven models.PARAMETERS fields.
	MaxCurrentMA uint16 `json:"max_current_ma" toml:"max_current_ma"`

	Discovery DiscoveryConfig `json:"discovery" toml:"discovery"`
}

// DiscoveryConfig tunes the port detector (C7), baud prober (C8), and
// auto-connector (C9).
type DiscoveryConfig struct {
	// ProbeTimeout bounds a single identifying transaction during port
	// scoring or baud testing.
	ProbeTimeout time.Duration `json:"probe_timeout" toml:"probe_timeout"`
	// ProbeDescriptorOnly skips the identity probe and scores ports by
	// descriptor alone (faster, less certain).
	ProbeDescriptorOnly bool `json:"probe_descriptor_only" toml:"probe_descriptor_only"`
	// ExcludePatterns is a list of substrings; a port name/descriptor
	// containing any of them is dropped before scoring (e.g. "Bluetooth",
	// "modem").
	ExcludePatterns []string `json:"exclude_patterns" toml:"exclude_patterns"`
	// BaudRates is the set of bauds the prober tries, in order.
	BaudRates []int `json:"baud_rates" toml:"baud_rates"`
	// AttemptsPerRate is how many identifying transactions the prober runs
	// per candidate baud.
	AttemptsPerRate int `json:"attempts_per_rate" toml:"attempts_per_rate"`
	// QualityThreshold is the minimum BaudResult.QualityScore the
	// auto-connector accepts.
	QualityThreshold float64 `json:"quality_threshold" toml:"quality_threshold"`
	// TrustDescriptor lets the auto-connector skip baud probing when a
	// candidate was already verified during port detection.
	TrustDescriptor bool `json:"trust_descriptor" toml:"trust_descriptor"`
}

// DefaultBaudRates is the default set of baud rates the prober tests,
// default-first so the common case stays fast.
var DefaultBaudRates = []int{19200, 9600, 38400, 57600, 115200}

// DefaultConfig returns the baseline connection configuration: no fixed
// port (forces discovery), 1000ms transaction timeout per spec §4.2, and
// the standard baud/probe tuning.
func DefaultConfig() *Config {
	return &Config{
		Baud:    19200,
		Timeout: time.Second,
		Discovery: DiscoveryConfig{
			ProbeTimeout:     300 * time.Millisecond,
			BaudRates:        append([]int(nil), DefaultBaudRates...),
			AttemptsPerRate:  2,
			QualityThreshold: 50,
			TrustDescriptor:  true,
		},
	}
}

// QuickConfig returns a configuration tuned for fast interactive use: fewer
// baud attempts and a shorter per-probe timeout, mirroring the original
// tool's "quick_config" discovery preset.
func QuickConfig() *Config {
	c := DefaultConfig()
	c.Discovery.ProbeTimeout = 150 * time.Millisecond
	c.Discovery.AttemptsPerRate = 1
	c.Discovery.BaudRates = []int{19200, 9600, 38400}
	return c
}

// LoadConfig reads a connection configuration from path. JSON and TOML are
// both supported; the format is chosen by file extension (".toml" selects
// TOML, anything else is treated as JSON), matching how the original
// tooling kept its `config.json` loader format-agnostic about where the
// path came from.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lumidoxerr.ConfigErrorf("cannot read config %q: %v", path, err)
	}
	cfg := DefaultConfig()
	if strings.HasSuffix(strings.ToLower(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, lumidoxerr.ConfigErrorf("cannot parse TOML config %q: %v", path, err)
		}
		return cfg, nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, lumidoxerr.ConfigErrorf("cannot parse JSON config %q: %v", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as JSON, creating or overwriting the file. This is
// used only for persisting user-chosen connection defaults (port/baud); it
// never persists discovered-port state across runs (see spec Non-goals).
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return lumidoxerr.ConfigErrorf("cannot marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return lumidoxerr.ConfigErrorf("cannot write config %q: %v", path, err)
	}
	return nil
}
