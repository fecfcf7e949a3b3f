package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestConsole_WritesCursorSequences(t *testing.T) {
	vt := filepath.Join(t.TempDir(), "tty")
	require.NoError(t, os.WriteFile(vt, nil, 0o600))

	c := NewConsole(zaptest.NewLogger(t))
	c.Paths = []string{filepath.Join(t.TempDir(), "missing"), vt}

	// A regular file rejects KDSETMODE, so both calls report an error but
	// the cursor sequences still land in the first writable path.
	assert.Error(t, c.EnterGraphics())
	assert.Error(t, c.Restore())

	got, err := os.ReadFile(vt)
	require.NoError(t, err)
	assert.Equal(t, showCursorSeq, string(got), "writes start at offset 0")
}

func TestConsole_NoPaths(t *testing.T) {
	c := NewConsole(nil)
	c.Paths = nil
	err := c.writeVT(hideCursorSeq)
	assert.ErrorContains(t, err, "no console paths")
}

func TestRedirectStdIO_EmptyPath(t *testing.T) {
	assert.NoError(t, RedirectStdIO(""))
}
