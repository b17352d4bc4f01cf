package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/radioedit/internal/config"
	"github.com/vk/radioedit/internal/radioerr"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.SettingsFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeSettings(t, `
log_level   = "debug"
dump_format = "yaml"
color       = false
`)
	s, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "", s.LogFormat)
	assert.Equal(t, "yaml", s.DumpFormat)
	require.NotNil(t, s.Color)
	assert.False(t, *s.Color)
}

func TestLoader_Missing(t *testing.T) {
	s, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "none.hcl"))
	require.NoError(t, err)
	assert.Equal(t, config.Settings{}, s)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		wantLine int
	}{
		{"syntax", "log_level = = \"debug\"", 1},
		{"unknown attribute", "log_level = \"info\"\nvolume = 11\n", 2},
		{"wrong type", "\ncolor = \"maybe\"\n", 2},
		{"invalid value", "log_format = \"xml\"\n", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSettings(t, tc.content)
			_, err := NewLoader().Load(context.Background(), path)
			require.Error(t, err)

			var pe *radioerr.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, path, pe.File)
			assert.Equal(t, tc.wantLine, pe.Line)
		})
	}
}
