package hcl

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/radioedit/internal/codec"
	"github.com/zclconf/go-cty/cty"
)

func TestFromCty(t *testing.T) {
	tooBig := new(big.Float).SetInt(new(big.Int).Lsh(big.NewInt(1), 64))

	testCases := []struct {
		name    string
		in      cty.Value
		want    codec.Value
		wantErr string
	}{
		{name: "whole number", in: cty.NumberIntVal(7), want: codec.IntValue(7)},
		{name: "whole float", in: cty.NumberFloatVal(12), want: codec.IntValue(12)},
		{name: "true", in: cty.True, want: codec.IntValue(1)},
		{name: "false", in: cty.False, want: codec.IntValue(0)},
		{name: "text", in: cty.StringVal("146.520"), want: codec.TextValue("146.520")},
		{name: "fraction", in: cty.NumberFloatVal(1.5), wantErr: "1.5"},
		{name: "negative", in: cty.NumberIntVal(-1), wantErr: "non-negative"},
		{name: "too large", in: cty.NumberVal(tooBig), wantErr: "non-negative"},
		{name: "null", in: cty.NullVal(cty.Number), wantErr: "null"},
		{name: "list", in: cty.ListVal([]cty.Value{cty.NumberIntVal(1)}), wantErr: "cannot use"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := fromCty(tc.in)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
