package hcl

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/radioedit/internal/ctxlog"
	"github.com/vk/radioedit/internal/dump"
	"github.com/zclconf/go-cty/cty"
)

const (
	blockTab   = "tab"
	blockList  = "list"
	blockRow   = "row"
	blockField = "field"
	attrRadio  = "radio"
	attrValue  = "value"
)

// DumpFormat is the HCL implementation of config.DumpFormat.
type DumpFormat struct{}

// NewDumpFormat creates the HCL dump format.
func NewDumpFormat() *DumpFormat {
	return &DumpFormat{}
}

// Name implements config.DumpFormat.
func (f *DumpFormat) Name() string {
	return "hcl"
}

// Encode writes doc as HCL.
func (f *DumpFormat) Encode(ctx context.Context, w io.Writer, doc *dump.Document) error {
	logger := ctxlog.FromContext(ctx)

	file := hclwrite.NewEmptyFile()
	root := file.Body()
	if doc.Radio != "" {
		root.SetAttributeValue(attrRadio, cty.StringVal(doc.Radio))
	}

	for _, sec := range doc.Sections {
		root.AppendNewline()
		if !sec.Repeated {
			blk := root.AppendNewBlock(blockTab, []string{sec.Name})
			writeFields(blk.Body(), sec.Fields)
			continue
		}
		blk := root.AppendNewBlock(blockList, []string{sec.Name})
		for i, row := range sec.Rows {
			if i > 0 {
				blk.Body().AppendNewline()
			}
			rb := blk.Body().AppendNewBlock(blockRow, []string{strconv.Itoa(row.Index)})
			writeFields(rb.Body(), row.Fields)
		}
	}

	n, err := w.Write(hclwrite.Format(file.Bytes()))
	if err != nil {
		return fmt.Errorf("failed to write HCL dump: %w", err)
	}
	logger.Debug("Wrote HCL dump.", "radio", doc.Radio, "bytes", n)
	return nil
}

func writeFields(body *hclwrite.Body, fields []dump.Field) {
	for _, fld := range fields {
		val, ok := toCty(fld.Value)
		if !ok {
			continue
		}
		if hclsyntax.ValidIdentifier(fld.Name) {
			body.SetAttributeValue(fld.Name, val)
			continue
		}
		fb := body.AppendNewBlock(blockField, []string{fld.Name})
		fb.Body().SetAttributeValue(attrValue, val)
	}
}
