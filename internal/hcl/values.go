package hcl

import (
	"fmt"

	"github.com/vk/radioedit/internal/codec"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// toCty converts a field value into its HCL representation.
func toCty(v codec.Value) (cty.Value, bool) {
	switch v.Kind() {
	case codec.ValueInt:
		return cty.NumberUIntVal(v.Int()), true
	case codec.ValueText:
		return cty.StringVal(v.Text()), true
	default:
		return cty.NilVal, false
	}
}

// fromCty converts an attribute value back into a field value. Numbers must
// be whole and non-negative; bools become 0 or 1; anything else that
// converts to a string is taken as text.
func fromCty(val cty.Value) (codec.Value, error) {
	if val.IsNull() {
		return codec.Value{}, fmt.Errorf("value is null")
	}
	if !val.IsWhollyKnown() {
		return codec.Value{}, fmt.Errorf("value is not known")
	}

	switch val.Type() {
	case cty.Number:
		bf := val.AsBigFloat()
		if !bf.IsInt() || bf.Sign() < 0 {
			return codec.Value{}, fmt.Errorf("number %s must be a whole, non-negative integer", bf.Text('g', -1))
		}
		var n uint64
		if err := gocty.FromCtyValue(val, &n); err != nil {
			return codec.Value{}, fmt.Errorf("number must be a whole, non-negative integer: %w", err)
		}
		return codec.IntValue(n), nil
	case cty.Bool:
		if val.True() {
			return codec.IntValue(1), nil
		}
		return codec.IntValue(0), nil
	}

	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return codec.Value{}, fmt.Errorf("cannot use %s as a field value: %w", val.Type().FriendlyName(), err)
	}
	return codec.TextValue(str.AsString()), nil
}
