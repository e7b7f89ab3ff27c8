// Package encode renders the IR as YAML or JSON.
package encode

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/conftree/conftree/format"
	"github.com/conftree/conftree/ir"
)

// Encode writes node to w in the configured format (YAML unless
// EncodeFormat says otherwise). Key order is preserved.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	v := ToGo(node)
	var (
		d   []byte
		err error
	)
	if es.format.IsJSON() {
		d, err = yaml.MarshalWithOptions(v, yaml.JSON())
	} else {
		d, err = yaml.MarshalWithOptions(v, yaml.IndentSequence(es.indentSeq))
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", es.format, err)
	}
	_, err = w.Write(d)
	return err
}

// ToGo converts a tree to plain Go values, with objects rendered as
// yaml.MapSlice so field order survives marshalling.
func ToGo(node *ir.Node) any {
	switch node.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return node.Bool
	case ir.StringType:
		return node.String
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return node.Number
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = ToGo(v)
		}
		return res
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			res[i] = yaml.MapItem{Key: f.String, Value: ToGo(node.Values[i])}
		}
		return res
	default:
		panic(fmt.Sprintf("encode: unknown node type %d", node.Type))
	}
}

type EncState struct {
	format    format.Format
	indentSeq bool
}

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

func IndentSequences(v bool) EncodeOption {
	return func(es *EncState) { es.indentSeq = v }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}
