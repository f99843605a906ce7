package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "kayotsaha v"+version+"\n", out.String())
}

func TestServeFlagsExportEnvironment(t *testing.T) {
	t.Setenv("APP_ADDR", "")
	t.Setenv("API_BASE_URL", "")
	serveFlags.addr = ":9090"
	serveFlags.apiBaseURL = "http://api.internal"
	t.Cleanup(func() { serveFlags.addr, serveFlags.apiBaseURL = "", "" })

	applyServeFlags()

	assert.Equal(t, ":9090", os.Getenv("APP_ADDR"))
	assert.Equal(t, "http://api.internal", os.Getenv("API_BASE_URL"))
}
