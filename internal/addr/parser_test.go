package addr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name         string
		raw          string
		expectErr    bool
		expectedSpec Spec
	}{
		{
			name:         "three numbers",
			raw:          "(0x10,3,4)",
			expectedSpec: NewSpec(Entry{ByteOffset: 0x10, BitOffset: 3, BitWidth: 4}),
		},
		{
			name:         "two numbers means byte aligned",
			raw:          "(0x248, 48)",
			expectedSpec: NewSpec(Entry{ByteOffset: 0x248, BitWidth: 48}),
		},
		{
			name: "split field",
			raw:  "( 0x20, 7, 1 : 0x21, 0, 8 )",
			expectedSpec: NewSpec(
				Entry{ByteOffset: 0x20, BitOffset: 7, BitWidth: 1},
				Entry{ByteOffset: 0x21, BitOffset: 0, BitWidth: 8},
			),
		},
		{
			name:         "leading zeros are decimal",
			raw:          "(010,0,08)",
			expectedSpec: NewSpec(Entry{ByteOffset: 10, BitWidth: 8}),
		},
		{name: "error - empty", raw: "", expectErr: true},
		{name: "error - no entries", raw: "()", expectErr: true},
		{name: "error - missing open paren", raw: "0,0,8)", expectErr: true},
		{name: "error - missing close paren", raw: "(0,0,8", expectErr: true},
		{name: "error - one number", raw: "(5)", expectErr: true},
		{name: "error - four numbers", raw: "(1,2,3,4)", expectErr: true},
		{name: "error - empty group", raw: "(1,0,8:)", expectErr: true},
		{name: "error - parentheses per group", raw: "(0x11,0,4) : (0x12,0,4)", expectErr: true},
		{name: "error - too many groups", raw: "(0,1:1,1:2,1:3,1:4,1)", expectErr: true},
		{name: "error - bit offset", raw: "(0,8,1)", expectErr: true},
		{name: "error - zero width", raw: "(0,0,0)", expectErr: true},
		{name: "error - not a number", raw: "(a,0,8)", expectErr: true},
		{name: "error - negative", raw: "(-1,0,8)", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := Parse(tc.raw)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tc.expectedSpec.Equal(spec), "got %s, want %s", spec, tc.expectedSpec)
		})
	}
}

func TestParseNumber(t *testing.T) {
	testCases := []struct {
		tok       string
		want      uint64
		expectErr bool
	}{
		{tok: "0", want: 0},
		{tok: "000", want: 0},
		{tok: "42", want: 42},
		{tok: "0042", want: 42},
		{tok: "0x2A", want: 42},
		{tok: "0X2a", want: 42},
		{tok: "0x", expectErr: true},
		{tok: "x10", expectErr: true},
		{tok: "", expectErr: true},
		{tok: "12ab", expectErr: true},
		{tok: "+1", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.tok, func(t *testing.T) {
			got, err := ParseNumber(tc.tok)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
