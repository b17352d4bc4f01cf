package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/radioedit/internal/config"
	"github.com/vk/radioedit/internal/ctxlog"
	"github.com/vk/radioedit/internal/dump"
	"github.com/vk/radioedit/internal/radioerr"
	"github.com/vk/radioedit/internal/session"
)

// Run executes the command selected by the configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	switch {
	case a.config.ListRadios:
		return a.listRadios(ctx)
	case a.config.Identify:
		return a.identify(ctx)
	}

	s, err := session.Open(ctx, a.config.ImagePath, a.config.ConfigDir)
	if err != nil {
		if errors.Is(err, radioerr.ErrNotFound) {
			a.logger.Warn("Image was not recognized by any radio in the catalog.", "path", a.config.ImagePath, "configdir", a.config.ConfigDir)
		}
		return err
	}
	a.logger.Info("Opened image.", "radio", s.Radio().Name, "path", s.Path(), "sections", len(s.Sections()))

	if a.config.ImportPath != "" {
		if err := a.importDump(ctx, s); err != nil {
			return err
		}
	}
	for _, set := range a.config.Sets {
		if err := s.SetText(set.Ref.Section, set.Ref.Field, set.Ref.RowOrZero(), set.Value); err != nil {
			return fmt.Errorf("-set %s: %w", set.Ref, err)
		}
		a.logger.Debug("Field set.", "field", set.Ref.String(), "value", set.Value)
	}

	if a.config.ExportPath != "" {
		if err := a.exportDump(ctx, s); err != nil {
			return err
		}
	}

	if a.config.OutputPath != "" || (a.config.Modifies() && s.Dirty()) {
		if err := s.Save(ctx, a.config.OutputPath); err != nil {
			return err
		}
	} else if a.config.Modifies() {
		a.logger.Info("Image unchanged, nothing to save.", "path", s.Path())
	}

	if !a.config.Modifies() && a.config.ExportPath == "" {
		return a.show(ctx, s)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) identify(ctx context.Context) error {
	radio, err := session.Identify(ctx, a.config.ImagePath, a.config.ConfigDir)
	if err != nil {
		if errors.Is(err, radioerr.ErrNotFound) {
			a.logger.Warn("Image was not recognized by any radio in the catalog.", "path", a.config.ImagePath)
		}
		return err
	}
	_, err = fmt.Fprintln(a.outW, radio.Name)
	return err
}

func (a *App) importDump(ctx context.Context, s *session.Session) error {
	format := a.formatFor(a.config.ImportPath)
	f, err := os.Open(a.config.ImportPath)
	if err != nil {
		return &radioerr.IOError{Op: "open", Path: a.config.ImportPath, Err: err}
	}
	defer f.Close()

	doc, err := format.Decode(ctx, a.config.ImportPath, f)
	if err != nil {
		return err
	}
	report, err := dump.Apply(ctx, s, doc)
	if err != nil {
		return fmt.Errorf("%s: %w", a.config.ImportPath, err)
	}
	a.logger.Info("Imported dump.", "path", a.config.ImportPath, "format", format.Name(), "values", report.Values, "changed", report.Changed)
	return nil
}

func (a *App) exportDump(ctx context.Context, s *session.Session) error {
	var only []string
	if a.config.Section != "" {
		only = append(only, a.config.Section)
	}
	doc, err := dump.Build(ctx, s, only...)
	if err != nil {
		return err
	}

	format := a.formatFor(a.config.ExportPath)
	if a.config.ExportPath == "-" {
		return format.Encode(ctx, a.outW, doc)
	}

	f, err := os.Create(a.config.ExportPath)
	if err != nil {
		return &radioerr.IOError{Op: "create", Path: a.config.ExportPath, Err: err}
	}
	if err := format.Encode(ctx, f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return &radioerr.IOError{Op: "close", Path: a.config.ExportPath, Err: err}
	}
	a.logger.Info("Exported dump.", "path", a.config.ExportPath, "format", format.Name(), "values", doc.Count())
	return nil
}

// formatFor picks the dump format from the file extension, falling back to
// the configured one.
func (a *App) formatFor(path string) config.DumpFormat {
	name := a.settings.DumpFormat
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		name = "hcl"
	case ".yaml", ".yml":
		name = "yaml"
	}
	if f, ok := a.formats[name]; ok {
		return f
	}
	return a.formats[a.settings.DumpFormat]
}
