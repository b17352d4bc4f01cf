package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/vk/radioedit/internal/config"
	"github.com/vk/radioedit/internal/ctxlog"
	"github.com/vk/radioedit/internal/hcl"
	"github.com/vk/radioedit/internal/yamldump"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	settings config.Settings
	formats  map[string]config.DumpFormat
}

// coreFormats are the dump formats used when NewApp is given none.
func coreFormats() []config.DumpFormat {
	return []config.DumpFormat{hcl.NewDumpFormat(), yamldump.New()}
}

// NewApp is the constructor for the main application. Results go to outW and
// logs to logW. Settings are read from the config directory through loader
// and sit between the command line and the built-in defaults.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader, formats ...config.DumpFormat) (*App, error) {
	flags := config.Settings{
		LogLevel:   appConfig.LogLevel,
		LogFormat:  appConfig.LogFormat,
		DumpFormat: appConfig.DumpFormat,
	}
	if appConfig.NoColor {
		color := false
		flags.Color = &color
	}

	// Until the settings file is read only the flags can shape the logger.
	boot := flags.Merge(config.Defaults())
	bootLogger := newLogger(boot.LogLevel, boot.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), bootLogger)

	fileSettings, err := loader.Load(ctx, filepath.Join(appConfig.ConfigDir, config.SettingsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	settings := flags.Merge(fileSettings).Merge(config.Defaults())
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(settings.LogLevel, settings.LogFormat, logW)
	logger.Debug("Logger configured successfully.", "level", settings.LogLevel, "format", settings.LogFormat)

	if !*settings.Color {
		pterm.DisableStyling()
	}

	if len(formats) == 0 {
		formats = coreFormats()
	}
	byName := make(map[string]config.DumpFormat, len(formats))
	for _, f := range formats {
		byName[f.Name()] = f
	}
	if _, ok := byName[settings.DumpFormat]; !ok {
		return nil, fmt.Errorf("dump format %q is not available", settings.DumpFormat)
	}
	logger.Debug("Dump formats registered.", "count", len(byName), "default", settings.DumpFormat)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		settings: settings,
		formats:  byName,
	}, nil
}

// Settings returns the merged settings in effect. This is primarily for testing.
func (a *App) Settings() config.Settings {
	return a.settings
}
