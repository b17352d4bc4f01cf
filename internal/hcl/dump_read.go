package hcl

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/radioedit/internal/ctxlog"
	"github.com/vk/radioedit/internal/dump"
	"github.com/vk/radioedit/internal/radioerr"
	"github.com/zclconf/go-cty/cty"
)

var dumpSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: attrRadio},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: blockTab, LabelNames: []string{"name"}},
		{Type: blockList, LabelNames: []string{"name"}},
	},
}

var rowSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: blockRow, LabelNames: []string{"index"}},
	},
}

var fieldSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: attrValue, Required: true},
	},
}

// Decode reads an HCL dump.
func (f *DumpFormat) Decode(ctx context.Context, file string, r io.Reader) (*dump.Document, error) {
	logger := ctxlog.FromContext(ctx)

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, &radioerr.IOError{Op: "read", Path: file, Err: err}
	}

	parsed, diags := hclparse.NewParser().ParseHCL(src, file)
	if diags.HasErrors() {
		return nil, diagError(file, diags)
	}
	content, diags := parsed.Body.Content(dumpSchema)
	if diags.HasErrors() {
		return nil, diagError(file, diags)
	}

	doc := &dump.Document{}
	if attr, ok := content.Attributes[attrRadio]; ok {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diagError(file, diags)
		}
		if val.IsNull() || !val.IsKnown() || val.Type() != cty.String {
			return nil, rangeError(file, attr.Range, "radio must be a string")
		}
		doc.Radio = val.AsString()
	}

	seen := make(map[string]bool)
	for _, blk := range content.Blocks {
		name := blk.Labels[0]
		if seen[name] {
			return nil, rangeError(file, blk.DefRange, "section %q appears twice", name)
		}
		seen[name] = true

		sec := &dump.Section{Name: name, Repeated: blk.Type == blockList}
		if sec.Repeated {
			rows, err := readRows(file, blk.Body)
			if err != nil {
				return nil, err
			}
			sec.Rows = rows
		} else {
			fields, err := readFields(file, blk.Body)
			if err != nil {
				return nil, err
			}
			sec.Fields = fields
		}
		doc.Sections = append(doc.Sections, sec)
	}

	logger.Debug("Read HCL dump.", "path", file, "sections", len(doc.Sections), "values", doc.Count())
	return doc, nil
}

func readRows(file string, body hcl.Body) ([]dump.Row, error) {
	content, diags := body.Content(rowSchema)
	if diags.HasErrors() {
		return nil, diagError(file, diags)
	}

	var rows []dump.Row
	seen := make(map[int]bool)
	for _, blk := range content.Blocks {
		idx, err := strconv.Atoi(blk.Labels[0])
		if err != nil || idx < 0 {
			return nil, rangeError(file, blk.DefRange, "row label %q is not a row number", blk.Labels[0])
		}
		if seen[idx] {
			return nil, rangeError(file, blk.DefRange, "row %d appears twice", idx)
		}
		seen[idx] = true

		fields, err := readFields(file, blk.Body)
		if err != nil {
			return nil, err
		}
		rows = append(rows, dump.Row{Index: idx, Fields: fields})
	}
	return rows, nil
}

// readFields collects the attributes and field blocks of a body in source
// order.
func readFields(file string, body hcl.Body) ([]dump.Field, error) {
	syn, ok := body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("%s: unsupported HCL body %T", file, body)
	}

	type located struct {
		field dump.Field
		at    hcl.Pos
	}
	var out []located

	for name, attr := range syn.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diagError(file, diags)
		}
		v, err := fromCty(val)
		if err != nil {
			return nil, rangeError(file, attr.SrcRange, "%s: %v", name, err)
		}
		out = append(out, located{field: dump.Field{Name: name, Value: v}, at: attr.SrcRange.Start})
	}

	for _, blk := range syn.Blocks {
		if blk.Type != blockField || len(blk.Labels) != 1 {
			return nil, rangeError(file, blk.TypeRange, "unexpected block %q, expected attributes or field \"<name>\"", blk.Type)
		}
		content, diags := blk.Body.Content(fieldSchema)
		if diags.HasErrors() {
			return nil, diagError(file, diags)
		}
		attr := content.Attributes[attrValue]
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diagError(file, diags)
		}
		v, err := fromCty(val)
		if err != nil {
			return nil, rangeError(file, attr.Range, "%s: %v", blk.Labels[0], err)
		}
		out = append(out, located{field: dump.Field{Name: blk.Labels[0], Value: v}, at: blk.TypeRange.Start})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].at.Byte < out[j].at.Byte })
	fields := make([]dump.Field, 0, len(out))
	seen := make(map[string]bool, len(out))
	for _, l := range out {
		if seen[l.field.Name] {
			return nil, radioerr.Parsef(file, l.at.Line, "field %q appears twice", l.field.Name)
		}
		seen[l.field.Name] = true
		fields = append(fields, l.field)
	}
	return fields, nil
}
