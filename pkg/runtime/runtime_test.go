package runtime

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFileIsNamespaced(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	xdg.Reload()

	p, err := LogFile()
	require.NoError(t, err)
	assert.Equal(t, LogName, filepath.Base(p))
	assert.Equal(t, filepath.Join(dir, XDGName, LogName), p)
}
