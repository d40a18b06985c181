package warnings

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestWarnf tests the behavior of warning output.
//
// It verifies:
//   - Warnings are written to the configured writer
//   - The restore function puts the previous writer back
func TestWarnf(t *testing.T) {
	var buf bytes.Buffer
	restore := SetWarningWriter(&buf)

	Warnf("unknown software reference %q\n", "extra")
	assert.Equal(t, "unknown software reference \"extra\"\n", buf.String())

	restore()
	assert.NotEqual(t, &buf, WarningWriter())
}

// TestSetWarningWriterNil tests the behavior of SetWarningWriter with nil.
//
// It verifies:
//   - A nil writer resets output to os.Stderr
func TestSetWarningWriterNil(t *testing.T) {
	restore := SetWarningWriter(nil)
	defer restore()

	assert.Equal(t, os.Stderr, WarningWriter())
}
