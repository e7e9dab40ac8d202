package models

import (
	"testing"

	"github.com/lumidox/lumidox-ii-controller/lumidoxerr"
)

func TestNewStageAcceptsFullRange(t *testing.T) {
	for n := 1; n <= NumStages; n++ {
		stage, err := NewStage(n)
		if err != nil {
			t.Fatalf("NewStage(%d): unexpected error: %v", n, err)
		}
		if stage.Number != n {
			t.Fatalf("NewStage(%d).Number = %d", n, stage.Number)
		}
		if got := stage.Index(); got != n-1 {
			t.Fatalf("NewStage(%d).Index() = %d, want %d", n, got, n-1)
		}
	}
}

func TestNewStageRejectsOutOfRange(t *testing.T) {
	for _, n := range []int{-1, 0, 6, 100} {
		if _, err := NewStage(n); err == nil {
			t.Fatalf("NewStage(%d): expected error, got nil", n)
		} else if !lumidoxerr.Is(err, lumidoxerr.InvalidInput) {
			t.Fatalf("NewStage(%d): error kind = %v, want InvalidInput", n, err)
		}
	}
}

func TestDeviceModeString(t *testing.T) {
	cases := map[DeviceMode]string{
		Local:          "Local",
		Standby:        "Standby",
		Armed:          "Armed",
		Remote:         "Remote",
		DeviceMode(99): "DeviceMode(99)",
	}
	for mode, want := range cases {
		if got := mode.String(); got != want {
			t.Errorf("DeviceMode(%d).String() = %q, want %q", int(mode), got, want)
		}
	}
}

func TestConnectionMethodString(t *testing.T) {
	cases := map[ConnectionMethod]string{
		DescriptorMatch:       "DescriptorMatch",
		BaudProbe:             "BaudProbe",
		Fallback:              "Fallback",
		ConnectionMethod(42):  "ConnectionMethod(42)",
	}
	for method, want := range cases {
		if got := method.String(); got != want {
			t.Errorf("ConnectionMethod(%d).String() = %q, want %q", int(method), got, want)
		}
	}
}
