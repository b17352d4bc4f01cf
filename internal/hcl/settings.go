package hcl

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/radioedit/internal/config"
	"github.com/vk/radioedit/internal/ctxlog"
	"github.com/vk/radioedit/internal/radioerr"
)

// settingsFile is the structure of radioedit.hcl for decoding.
type settingsFile struct {
	LogLevel   string `hcl:"log_level,optional"`
	LogFormat  string `hcl:"log_format,optional"`
	DumpFormat string `hcl:"dump_format,optional"`
	Color      *bool  `hcl:"color,optional"`
}

// Loader is the HCL implementation of config.Loader.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL settings loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads the settings file at path. A missing file is not an error.
func (l *Loader) Load(ctx context.Context, path string) (config.Settings, error) {
	logger := ctxlog.FromContext(ctx)

	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("No settings file, using defaults.", "path", path)
		return config.Settings{}, nil
	}
	if err != nil {
		return config.Settings{}, &radioerr.IOError{Op: "read", Path: path, Err: err}
	}

	file, diags := l.parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return config.Settings{}, diagError(path, diags)
	}

	var parsed settingsFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return config.Settings{}, diagError(path, diags)
	}

	s := config.Settings{
		LogLevel:   parsed.LogLevel,
		LogFormat:  parsed.LogFormat,
		DumpFormat: parsed.DumpFormat,
		Color:      parsed.Color,
	}
	if err := s.Validate(); err != nil {
		return config.Settings{}, radioerr.Parsef(path, 0, "%v", err)
	}
	logger.Debug("Loaded settings file.", "path", path)
	return s, nil
}
