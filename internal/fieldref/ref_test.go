package fieldref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  Ref
	}{
		{"flat", "Settings.Beep", Ref{Section: "Settings", Field: "Beep", Row: NoRow}},
		{"indexed", "Memories.Freq[12]", Ref{Section: "Memories", Field: "Freq", Row: 12}},
		{"zero index", "Memories.Name[0]", Ref{Section: "Memories", Field: "Name", Row: 0}},
		{"spaces in names", "Key Setup.Long Press", Ref{Section: "Key Setup", Field: "Long Press", Row: NoRow}},
		{"dashes", "DTMF-Memory.Code-1[3]", Ref{Section: "DTMF-Memory", Field: "Code-1", Row: 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{"", "Settings", "Settings.", ".Beep", "a.b.c", "a.b[-1]", "a.b[x]", "a.b[1", "a.b[1][2]", " .b"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.Error(t, err)
		})
	}
}

func TestRef_RoundTrip(t *testing.T) {
	for _, s := range []string{"Settings.Beep", "Memories.Freq[7]"} {
		ref, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, ref.String())
	}
}

func TestRef_RowOrZero(t *testing.T) {
	assert.Equal(t, 0, Ref{Row: NoRow}.RowOrZero())
	assert.Equal(t, 4, Ref{Row: 4}.RowOrZero())
}

func TestParseAssignment(t *testing.T) {
	a, err := ParseAssignment("Memories.Name[2]=A=B C")
	require.NoError(t, err)
	assert.Equal(t, Ref{Section: "Memories", Field: "Name", Row: 2}, a.Ref)
	assert.Equal(t, "A=B C", a.Value)

	a, err = ParseAssignment("Settings.Owner=")
	require.NoError(t, err)
	assert.Equal(t, "", a.Value)

	_, err = ParseAssignment("Settings.Owner")
	assert.Error(t, err)

	_, err = ParseAssignment("Owner=x")
	assert.Error(t, err)
}
