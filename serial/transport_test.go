package serial

import (
	"testing"
	"time"

	"github.com/lumidox/lumidox-ii-controller/lumidoxerr"
)

func TestOpenNonexistentPortIsSerialError(t *testing.T) {
	_, err := Open("/dev/lumidox-does-not-exist-0", 19200, 50*time.Millisecond)
	if err == nil {
		t.Fatalf("Open: expected error for a nonexistent port")
	}
	if !lumidoxerr.Is(err, lumidoxerr.Serial) {
		t.Fatalf("Open: error kind = %v, want Serial", err)
	}
}
