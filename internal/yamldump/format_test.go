package yamldump

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/radioedit/internal/codec"
	"github.com/vk/radioedit/internal/dump"
	"github.com/vk/radioedit/internal/radioerr"
)

var valueOpt = cmp.Comparer(func(a, b codec.Value) bool { return a == b })

func sampleDocument() *dump.Document {
	return &dump.Document{
		Radio: "FT-60",
		Sections: []*dump.Section{
			{
				Name: "Settings",
				Fields: []dump.Field{
					{Name: "Squelch", Value: codec.IntValue(50)},
					{Name: "Beep", Value: codec.IntValue(1)},
					{Name: "Serial", Value: codec.TextValue("0x1234")},
					{Name: "Owner", Value: codec.TextValue("W1AW  ")},
				},
			},
			{
				Name:     "Memories",
				Repeated: true,
				Rows: []dump.Row{
					{Index: 1, Fields: []dump.Field{
						{Name: "Freq", Value: codec.TextValue("446.000")},
						{Name: "Comment", Value: codec.TextValue("yes")},
					}},
				},
			},
		},
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := New()
	assert.Equal(t, "yaml", f.Name())

	var buf bytes.Buffer
	require.NoError(t, f.Encode(ctx, &buf, sampleDocument()))
	out := buf.String()
	assert.Contains(t, out, "radio: FT-60\n")
	assert.Contains(t, out, "Squelch: 50\n")
	assert.Contains(t, out, `Freq: "446.000"`)
	assert.Contains(t, out, `Comment: "yes"`)
	assert.Less(t, strings.Index(out, "Squelch"), strings.Index(out, "Beep"), "schema order kept")

	got, err := f.Decode(ctx, "dump.yaml", strings.NewReader(out))
	require.NoError(t, err)
	if diff := cmp.Diff(sampleDocument(), got, valueOpt); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s\n%s", diff, out)
	}
}

func TestFormat_DecodeHandWritten(t *testing.T) {
	src := `
sections:
  - name: Settings
    kind: tab
    fields:
      Lock: true
      Backlight: 7
  - name: Memories
    kind: list
    rows:
      - index: 2
        fields:
          Freq: 145.500
          Name: SIMPLX
`
	got, err := New().Decode(context.Background(), "hand.yaml", strings.NewReader(src))
	require.NoError(t, err)

	want := &dump.Document{
		Sections: []*dump.Section{
			{Name: "Settings", Fields: []dump.Field{
				{Name: "Lock", Value: codec.IntValue(1)},
				{Name: "Backlight", Value: codec.IntValue(7)},
			}},
			{Name: "Memories", Repeated: true, Rows: []dump.Row{
				{Index: 2, Fields: []dump.Field{
					{Name: "Freq", Value: codec.TextValue("145.500")},
					{Name: "Name", Value: codec.TextValue("SIMPLX")},
				}},
			}},
		},
	}
	if diff := cmp.Diff(want, got, valueOpt); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestFormat_DecodeFieldsNamedLikeKeys(t *testing.T) {
	src := `
radio: FT-60
sections:
  - name: Settings
    kind: tab
    fields:
      name: "HOME"
      index: 3
      kind: "FM"
`
	got, err := New().Decode(context.Background(), "keys.yaml", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, got.Sections, 1)
	assert.Equal(t, []dump.Field{
		{Name: "name", Value: codec.TextValue("HOME")},
		{Name: "index", Value: codec.IntValue(3)},
		{Name: "kind", Value: codec.TextValue("FM")},
	}, got.Sections[0].Fields)
}

func TestFormat_DecodeErrors(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		wantLine int
	}{
		{"empty", "", 0},
		{"syntax", "sections:\n  - name: [\n", 0},
		{"unknown key", "sections:\n  - name: A\n    kind: tab\n    colour: red\n", 4},
		{"bad kind", "sections:\n  - name: A\n    kind: bank\n", 0},
		{"negative", "sections:\n  - name: A\n    kind: tab\n    fields:\n      X: -1\n", 5},
		{"nested value", "sections:\n  - name: A\n    kind: tab\n    fields:\n      X: [1, 2]\n", 5},
		{"fields on list", "sections:\n  - name: L\n    kind: list\n    fields:\n      X: 1\n", 5},
		{"duplicate section", "sections:\n  - name: A\n    kind: tab\n  - name: A\n    kind: tab\n", 4},
		{"unknown top-level key", "radio: FT-60\nbanks: []\n", 2},
		{"unknown row key", "sections:\n  - name: L\n    kind: list\n    rows:\n      - index: 0\n        values: {}\n", 6},
		{"row without index", "sections:\n  - name: L\n    kind: list\n    rows:\n      - fields:\n          X: 1\n", 5},
		{"repeated row", "sections:\n  - name: L\n    kind: list\n    rows:\n      - index: 0\n      - index: 0\n", 6},
		{"duplicate field", "sections:\n  - name: A\n    kind: tab\n    fields:\n      X: 1\n      X: 2\n", 6},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().Decode(context.Background(), "bad.yaml", strings.NewReader(tc.src))
			require.Error(t, err)

			var pe *radioerr.ParseError
			require.ErrorAs(t, err, &pe)
			if tc.wantLine > 0 {
				assert.Equal(t, tc.wantLine, pe.Line)
			}
		})
	}
}
