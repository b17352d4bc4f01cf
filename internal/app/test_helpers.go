package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/radioedit/internal/hcl"
	"github.com/vk/radioedit/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing. It returns the
// app, the buffer receiving its results and the buffer receiving its logs.
func SetupAppTest(t *testing.T, appConfig *Config) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	t.Helper()

	outBuffer := &testutil.SafeBuffer{}
	logBuffer := &testutil.SafeBuffer{}
	if appConfig.LogLevel == "" {
		appConfig.LogLevel = "debug"
	}
	testApp, err := NewApp(outBuffer, logBuffer, appConfig, hcl.NewLoader())
	require.NoError(t, err, "NewApp failed")

	t.Cleanup(func() {
		if os.Getenv("RADIOEDIT_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
