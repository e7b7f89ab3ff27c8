// Package parse decodes YAML and JSON documents into the IR.
package parse

import (
	"fmt"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/conftree/conftree/ir"
)

// Parse decodes d into a tree. JSON input parses through the same path,
// being a subset of YAML. Key order is preserved.
func Parse(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return FromGo(v)
}

// FromGo converts a decoded Go value into a tree. Mappings may be
// yaml.MapSlice (order-preserving) or plain maps (keys sorted).
func FromGo(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		if x > 1<<63-1 {
			return nil, fmt.Errorf("%w: integer overflow %d", ErrParse, x)
		}
		return ir.FromInt(int64(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	case time.Time:
		return ir.FromString(x.Format(time.RFC3339)), nil
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, 0, len(x))
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string key %v", ErrParse, item.Key)
			}
			val, err := FromGo(item.Value)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: ir.FromString(key), Val: val})
		}
		return ir.FromKeyVals(kvs), nil
	case map[string]any:
		m := make(map[string]*ir.Node, len(x))
		for k, vv := range x {
			val, err := FromGo(vv)
			if err != nil {
				return nil, err
			}
			m[k] = val
		}
		return ir.FromMap(m), nil
	case []any:
		elts := make([]*ir.Node, 0, len(x))
		for _, vv := range x {
			elt, err := FromGo(vv)
			if err != nil {
				return nil, err
			}
			elts = append(elts, elt)
		}
		return ir.FromSlice(elts), nil
	default:
		return nil, fmt.Errorf("%w: unsupported value type %T", ErrParse, v)
	}
}
