package app

import (
	"errors"

	"github.com/vk/radioedit/internal/config"
	"github.com/vk/radioedit/internal/fieldref"
)

// Config holds all the necessary configuration for an App instance to run.
// Empty log and format fields fall back to the settings file.
type Config struct {
	ImagePath string
	ConfigDir string

	LogFormat  string
	LogLevel   string
	DumpFormat string
	NoColor    bool

	Identify   bool
	ListRadios bool
	Section    string
	Sets       []fieldref.Assignment
	ImportPath string
	ExportPath string // "-" is the output writer
	OutputPath string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigDir == "" {
		return nil, errors.New("ConfigDir is a required configuration field and cannot be empty")
	}

	flags := config.Settings{LogLevel: cfg.LogLevel, LogFormat: cfg.LogFormat, DumpFormat: cfg.DumpFormat}
	if err := flags.Validate(); err != nil {
		return nil, err
	}

	if cfg.ListRadios {
		if cfg.ImagePath != "" || cfg.Identify || cfg.Modifies() || cfg.ExportPath != "" {
			return nil, errors.New("-list-radios takes no image and no other command")
		}
		return &cfg, nil
	}
	if cfg.ImagePath == "" {
		return nil, errors.New("an image path is required")
	}
	if cfg.Identify && (cfg.Modifies() || cfg.ExportPath != "" || cfg.OutputPath != "" || cfg.Section != "") {
		return nil, errors.New("-identify cannot be combined with other commands")
	}
	return &cfg, nil
}

// Modifies reports whether the run changes the image.
func (c *Config) Modifies() bool {
	return len(c.Sets) > 0 || c.ImportPath != ""
}
