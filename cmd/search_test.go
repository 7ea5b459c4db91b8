package cmd

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/byxorna/sieve/pkg/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "contacts.yaml"), []byte(`
items:
  - id: "@carl:example.org"
    displayName: Carl
  - id: "@dora:example.org"
    displayName: Dora
`), 0600))

	cfgPath := filepath.Join(t.TempDir(), "sieve.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("directory: "+dataDir+"\n"), 0600))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"search", "--config", cfgPath, "ca"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "Carl")
	assert.NotContains(t, out.String(), "Dora")
	assert.Contains(t, out.String(), `1 matches for "ca"`)
}

func TestDebugLogIsClosed(t *testing.T) {
	// runs after the environment is restored
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	xdg.Reload()

	flags.Debug = true
	t.Cleanup(func() { flags.Debug = false })

	require.NoError(t, setupLogging())
	require.NotNil(t, logFile)
	f := logFile
	log.Print("hello")

	require.NoError(t, closeLog())
	assert.Nil(t, logFile)
	_, err := f.WriteString("after close")
	assert.Error(t, err)

	path, err := runtime.LogFile()
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello")

	assert.NoError(t, closeLog(), "closing twice is fine")
}
