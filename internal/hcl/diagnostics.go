package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/radioedit/internal/radioerr"
)

// diagError turns the first error diagnostic into a ParseError so callers
// see the same error type as for every other configuration file.
func diagError(file string, diags hcl.Diagnostics) error {
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		line := 0
		if d.Subject != nil {
			line = d.Subject.Start.Line
		}
		msg := d.Summary
		if d.Detail != "" {
			msg = fmt.Sprintf("%s; %s", d.Summary, d.Detail)
		}
		return radioerr.Parsef(file, line, "%s", msg)
	}
	return nil
}

func rangeError(file string, rng hcl.Range, format string, args ...any) error {
	return radioerr.Parsef(file, rng.Start.Line, format, args...)
}
