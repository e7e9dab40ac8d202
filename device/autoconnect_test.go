package device

import (
	"testing"

	"github.com/lumidox/lumidox-ii-controller/models"
)

func TestBestBaudResultPicksHighestQualityAboveThreshold(t *testing.T) {
	results := []models.BaudResult{
		{BaudRate: 9600, Success: true, QualityScore: 40},
		{BaudRate: 19200, Success: true, QualityScore: 95},
		{BaudRate: 38400, Success: false, QualityScore: 99},
		{BaudRate: 57600, Success: true, QualityScore: 60},
	}
	best, ok := bestBaudResult(results, 50)
	if !ok {
		t.Fatalf("bestBaudResult: expected a result above threshold")
	}
	if best.BaudRate != 19200 {
		t.Fatalf("bestBaudResult = %d baud, want 19200 (highest quality, success=true)", best.BaudRate)
	}
}

func TestBestBaudResultNoneAboveThreshold(t *testing.T) {
	results := []models.BaudResult{
		{BaudRate: 9600, Success: true, QualityScore: 10},
		{BaudRate: 19200, Success: true, QualityScore: 20},
	}
	if _, ok := bestBaudResult(results, 50); ok {
		t.Fatalf("bestBaudResult: expected no result above threshold")
	}
}

func TestBestBaudResultIgnoresFailedAttempts(t *testing.T) {
	results := []models.BaudResult{
		{BaudRate: 9600, Success: false, QualityScore: 100},
	}
	if _, ok := bestBaudResult(results, 0); ok {
		t.Fatalf("bestBaudResult: a failed attempt must never be selected regardless of score")
	}
}

// AutoConnect must return promptly from a single OS enumeration pass rather
// than retrying or blocking when no candidate ports are found. This test
// environment has no serial hardware attached, so the call is expected to
// fail with a Device error; the real assertion is that it returns at all
// (the surrounding test runner's own timeout would catch a hang).
func TestAutoConnectWithNoPortsReturnsPromptly(t *testing.T) {
	cfg := models.DefaultConfig()
	session, _, err := AutoConnect(cfg)
	if err == nil {
		_ = session.Close()
		t.Skip("a serial port is present in this environment; nothing to assert")
	}
}
