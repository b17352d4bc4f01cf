package app

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/vk/radioedit/internal/catalog"
	"github.com/vk/radioedit/internal/dump"
	"github.com/vk/radioedit/internal/fsutil"
	"github.com/vk/radioedit/internal/rad"
	"github.com/vk/radioedit/internal/session"
)

// show prints the sections of s as tables.
func (a *App) show(ctx context.Context, s *session.Session) error {
	var only []string
	if a.config.Section != "" {
		only = append(only, a.config.Section)
	}
	doc, err := dump.Build(ctx, s, only...)
	if err != nil {
		return err
	}
	return renderDocument(a.outW, doc)
}

func renderDocument(w io.Writer, doc *dump.Document) error {
	for _, sec := range doc.Sections {
		var data pterm.TableData
		if sec.Repeated {
			data = rowsTable(sec)
		} else {
			data = fieldsTable(sec)
		}
		if err := renderTable(w, sec.Name, data); err != nil {
			return err
		}
	}
	return nil
}

func fieldsTable(sec *dump.Section) pterm.TableData {
	data := pterm.TableData{{"Field", "Value"}}
	for _, f := range sec.Fields {
		data = append(data, []string{f.Name, f.Value.String()})
	}
	return data
}

// rowsTable lays a repeated section out with one column per field. Columns
// follow the first row; every row of a section has the same fields.
func rowsTable(sec *dump.Section) pterm.TableData {
	header := []string{"#"}
	if len(sec.Rows) > 0 {
		for _, f := range sec.Rows[0].Fields {
			header = append(header, f.Name)
		}
	}
	data := pterm.TableData{header}
	for _, row := range sec.Rows {
		line := []string{strconv.Itoa(row.Index)}
		for _, f := range row.Fields {
			line = append(line, f.Value.String())
		}
		data = append(data, line)
	}
	return data
}

func renderTable(w io.Writer, title string, data pterm.TableData) error {
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", title, err)
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", pterm.DefaultSection.Sprint(title), table)
	return err
}

// listRadios prints the catalog, marking radios without a description file.
func (a *App) listRadios(ctx context.Context) error {
	cat, err := catalog.Load(ctx, a.config.ConfigDir)
	if err != nil {
		return err
	}
	paths, err := fsutil.FindFilesByExtension(a.config.ConfigDir, rad.Extension)
	if err != nil {
		return err
	}
	described := make(map[string]bool)
	for _, stem := range fsutil.Stems(paths, rad.Extension) {
		described[stem] = true
	}
	a.logger.Debug("Listed descriptions.", "configdir", a.config.ConfigDir, "radios", cat.Len(), "descriptions", len(described))

	data := pterm.TableData{{"Radio", "Signature", "File size", "Description"}}
	for _, r := range cat.Radios() {
		size := "any"
		if r.FileSize != 0 {
			size = strconv.Itoa(r.FileSize)
		}
		desc := "missing"
		if described[r.Name] {
			desc = r.Name + rad.Extension
		}
		data = append(data, []string{r.Name, hexSignature(r.Signature), size, desc})
	}
	return renderTable(a.outW, "Radios", data)
}

func hexSignature(sig []byte) string {
	parts := make([]string, len(sig))
	for i, b := range sig {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}
