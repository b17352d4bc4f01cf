package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/radioedit/internal/fieldref"
	"github.com/vk/radioedit/internal/radioerr"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("full command line", func(t *testing.T) {
		t.Parallel()
		out := &bytes.Buffer{}
		cfg, exit, err := Parse([]string{
			"-configdir", "/tmp/conf",
			"-log-level", "DEBUG",
			"-format", "yaml",
			"-set", "Settings.Beep=0",
			"-set", "Memories.Name[3]=HOME",
			"-o", "out.img",
			"in.img",
		}, out)

		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "in.img", cfg.ImagePath)
		assert.Equal(t, "/tmp/conf", cfg.ConfigDir)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "yaml", cfg.DumpFormat)
		assert.Equal(t, "out.img", cfg.OutputPath)
		assert.Equal(t, []fieldref.Assignment{
			{Ref: fieldref.Ref{Section: "Settings", Field: "Beep", Row: fieldref.NoRow}, Value: "0"},
			{Ref: fieldref.Ref{Section: "Memories", Field: "Name", Row: 3}, Value: "HOME"},
		}, cfg.Sets)
	})

	t.Run("help exits cleanly", func(t *testing.T) {
		t.Parallel()
		out := &bytes.Buffer{}
		cfg, exit, err := Parse([]string{"-h"}, out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("no image prints usage", func(t *testing.T) {
		t.Parallel()
		out := &bytes.Buffer{}
		_, exit, err := Parse([]string{"-configdir", "/c"}, out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Contains(t, out.String(), "IMAGE_PATH")
	})

	t.Run("list radios needs no image", func(t *testing.T) {
		t.Parallel()
		cfg, exit, err := Parse([]string{"-configdir", "/c", "-list-radios"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.False(t, exit)
		assert.True(t, cfg.ListRadios)
	})
}

func TestParse_UsageErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"-bogus", "a.img"}, wantMsg: "bogus"},
		{name: "bad assignment", args: []string{"-set", "Beep", "a.img"}, wantMsg: "invalid assignment"},
		{name: "bad reference", args: []string{"-set", "Beep=1", "a.img"}, wantMsg: "invalid field reference"},
		{name: "bad log level", args: []string{"-log-level", "loud", "a.img"}, wantMsg: "log level"},
		{name: "bad format", args: []string{"-format", "xml", "a.img"}, wantMsg: "dump format"},
		{name: "two images", args: []string{"a.img", "b.img"}, wantMsg: "one image path"},
		{name: "identify and set", args: []string{"-identify", "-set", "A.B=1", "a.img"}, wantMsg: "-identify"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, exit, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.False(t, exit)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, ExitUsage, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}

func TestFromRunError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, FromRunError(nil))

	testCases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "unrecognized image", err: fmt.Errorf("a.img: %w", radioerr.ErrNotFound), wantCode: ExitUnrecognized},
		{name: "runtime failure", err: errors.New("disk full"), wantCode: ExitRuntime},
		{name: "already an exit error", err: &ExitError{Code: ExitUsage, Message: "x"}, wantCode: ExitUsage},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var exitErr *ExitError
			require.ErrorAs(t, FromRunError(tc.err), &exitErr)
			assert.Equal(t, tc.wantCode, exitErr.Code)
			assert.Equal(t, tc.err.Error(), exitErr.Message)
		})
	}
}
