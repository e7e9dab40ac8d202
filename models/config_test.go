package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumidox/lumidox-ii-controller/lumidoxerr"
)

func TestDefaultConfigMatchesSpecBaseline(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Baud != 19200 {
		t.Errorf("Baud = %d, want 19200", cfg.Baud)
	}
	if cfg.Timeout != time.Second {
		t.Errorf("Timeout = %v, want 1s", cfg.Timeout)
	}
	if len(cfg.Discovery.BaudRates) != len(DefaultBaudRates) {
		t.Errorf("BaudRates = %v, want %v", cfg.Discovery.BaudRates, DefaultBaudRates)
	}
	if !cfg.Discovery.TrustDescriptor {
		t.Errorf("TrustDescriptor = false, want true")
	}
}

func TestDefaultConfigBaudRatesAreIndependentSlices(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	a.Discovery.BaudRates[0] = 999999
	if b.Discovery.BaudRates[0] == 999999 {
		t.Fatalf("DefaultConfig shares backing array across calls")
	}
}

func TestQuickConfigIsFasterThanDefault(t *testing.T) {
	def := DefaultConfig()
	quick := QuickConfig()
	if quick.Discovery.ProbeTimeout >= def.Discovery.ProbeTimeout {
		t.Errorf("QuickConfig.ProbeTimeout = %v, want less than default %v", quick.Discovery.ProbeTimeout, def.Discovery.ProbeTimeout)
	}
	if quick.Discovery.AttemptsPerRate >= def.Discovery.AttemptsPerRate {
		t.Errorf("QuickConfig.AttemptsPerRate = %d, want less than default %d", quick.Discovery.AttemptsPerRate, def.Discovery.AttemptsPerRate)
	}
}

func TestLoadConfigJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lumidox.json")
	cfg := DefaultConfig()
	cfg.Port = "/dev/ttyUSB0"
	cfg.Baud = 9600
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Port != "/dev/ttyUSB0" || loaded.Baud != 9600 {
		t.Fatalf("LoadConfig = %+v, want port=/dev/ttyUSB0 baud=9600", loaded)
	}
}

func TestLoadConfigTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lumidox.toml")
	contents := "port = \"/dev/ttyACM0\"\nbaud = 38400\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Port != "/dev/ttyACM0" || loaded.Baud != 38400 {
		t.Fatalf("LoadConfig = %+v, want port=/dev/ttyACM0 baud=38400", loaded)
	}
}

func TestLoadConfigMissingFileIsConfigError(t *testing.T) {
	_, err := LoadConfig("/nonexistent/lumidox.json")
	if err == nil {
		t.Fatalf("LoadConfig: expected error for missing file")
	}
	if !lumidoxerr.Is(err, lumidoxerr.Config) {
		t.Fatalf("LoadConfig: error kind = %v, want Config", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	cfg := DefaultConfig()
	cfg.Port = "COM3"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig after Save: %v", err)
	}
	if loaded.Port != "COM3" {
		t.Fatalf("round trip Port = %q, want COM3", loaded.Port)
	}
}
