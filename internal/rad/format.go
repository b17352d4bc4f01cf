package rad

import (
	"fmt"
	"strings"
)

// String renders the schema back in description syntax.
func (s *Schema) String() string {
	var sb strings.Builder
	for _, c := range s.Enums() {
		fmt.Fprintf(&sb, "%s %s\n", kwEnum, c.Name)
		for _, e := range c.Enum.Entries() {
			fmt.Fprintf(&sb, "\t0x%X %s\n", e.Value, quote(e.Label))
			for _, alt := range e.Alternates {
				fmt.Fprintf(&sb, "\t%s %s\n", kwAltName, quote(alt))
			}
		}
		fmt.Fprintf(&sb, "%s\n", kwEndEnum)
	}
	for _, sec := range s.Sections {
		switch {
		case sec.Kind == Repeated && sec.RowBytes > 0:
			fmt.Fprintf(&sb, "%s %s %d %d\n", kwList, quote(sec.Name), sec.Rows, sec.RowBytes)
		case sec.Kind == Repeated:
			fmt.Fprintf(&sb, "%s %s %d\n", kwList, quote(sec.Name), sec.Rows)
		default:
			fmt.Fprintf(&sb, "%s %s\n", kwTab, quote(sec.Name))
		}
		for _, f := range sec.Fields {
			fmt.Fprintf(&sb, "\t%s %s %s\n", quote(f.Name), f.Addr, f.Codec.Name)
		}
		if sec.Kind == Repeated {
			fmt.Fprintf(&sb, "%s\n", kwEndList)
		} else {
			fmt.Fprintf(&sb, "%s\n", kwEndTab)
		}
	}
	return sb.String()
}

func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"\\#") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}
