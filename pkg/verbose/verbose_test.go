package verbose

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEnableDisable tests the behavior of the enabled flag.
//
// It verifies:
//   - Enable turns verbose logging on
//   - Disable turns verbose logging off
func TestEnableDisable(t *testing.T) {
	defer Disable()

	Enable()
	assert.True(t, IsEnabled())

	Disable()
	assert.False(t, IsEnabled())
}

// TestInfof tests the behavior of formatted verbose output.
//
// It verifies:
//   - Messages are written with the [DEBUG] prefix when enabled
//   - Nothing is written when disabled
func TestInfof(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)
	defer Disable()

	Infof("fetching namespace %q", "acme")
	assert.Empty(t, buf.String())

	Enable()
	Infof("fetching namespace %q", "acme")
	assert.Equal(t, "[DEBUG] fetching namespace \"acme\"\n", buf.String())

	buf.Reset()
	Info("done")
	assert.Equal(t, "[DEBUG] done\n", buf.String())
}

// TestSetWriterNil tests the behavior of SetWriter with a nil writer.
//
// It verifies:
//   - A nil writer does not replace the current writer
func TestSetWriterNil(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)
	defer Disable()

	SetWriter(nil)
	Enable()
	Info("still here")
	assert.Contains(t, buf.String(), "still here")
}
