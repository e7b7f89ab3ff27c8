// Package ir contains the configuration tree representation.
package ir

import (
	"maps"
	"slices"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		dst.Fields[i] = dstI
	}
	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func FromString(v string) *Node {
	return FromStringAt(&Node{}, v)
}

func FromStringAt(p *Node, v string) *Node {
	p.Type = StringType
	p.String = v
	return p
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i].String] = node.Values[i]
	}
	return res
}

func FromMap(yMap map[string]*Node) *Node {
	res := &Node{}
	res.Type = ObjectType
	res.Fields = make([]*Node, len(yMap))
	res.Values = make([]*Node, len(yMap))
	keys := slices.Sorted(maps.Keys(yMap))
	for i, key := range keys {
		y := yMap[key]
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = key
		yField := &Node{
			Parent:      res,
			ParentIndex: i,
			ParentField: key,
			Type:        StringType,
			String:      key,
		}
		res.Fields[i] = yField
		res.Values[i] = y
	}
	return res
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{}
	return FromKeyValsAt(res, kvs)
}

func FromKeyValsAt(res *Node, kvs []KeyVal) *Node {
	res.Type = ObjectType
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		if kv.Key == nil {
			kv.Key = &Node{Type: NullType}
		} else if kv.Key.Type == StringType {
			kv.Key.ParentField = kv.Key.String
			kv.Val.ParentField = kv.Key.ParentField
		}
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Key.Parent = res
		kv.Key.ParentIndex = i
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Get returns the value at key, or nil if the node is not an object or the
// key is absent.
func (y *Node) Get(key string) *Node {
	if y.Type != ObjectType {
		return nil
	}
	return Get(y, key)
}

func (y *Node) Has(key string) bool {
	return y.Get(key) != nil
}

// Set replaces the value at key, appending a new field if the key is absent.
func (y *Node) Set(key string, v *Node) {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String != key {
			continue
		}
		v.Parent = y
		v.ParentIndex = i
		v.ParentField = key
		y.Values[i] = v
		return
	}
	yField := &Node{
		Parent:      y,
		ParentIndex: n,
		ParentField: key,
		Type:        StringType,
		String:      key,
	}
	v.Parent = y
	v.ParentIndex = n
	v.ParentField = key
	y.Fields = append(y.Fields, yField)
	y.Values = append(y.Values, v)
}

// Remove deletes the field at key, reporting whether it was present.
func (y *Node) Remove(key string) bool {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String != key {
			continue
		}
		y.Fields = append(y.Fields[:i], y.Fields[i+1:]...)
		y.Values = append(y.Values[:i], y.Values[i+1:]...)
		y.reindex()
		return true
	}
	return false
}

// OrderLike reorders y's fields so that keys o also has keep o's relative
// order; keys only y has follow, in their current order. No-op unless both
// nodes are objects.
func (y *Node) OrderLike(o *Node) {
	if y.Type != ObjectType || o.Type != ObjectType {
		return
	}
	fields := make([]*Node, 0, len(y.Fields))
	values := make([]*Node, 0, len(y.Values))
	taken := make(map[string]bool, len(y.Fields))
	for _, f := range o.Fields {
		key := f.String
		if taken[key] {
			continue
		}
		for i, yf := range y.Fields {
			if yf.String == key {
				taken[key] = true
				fields = append(fields, yf)
				values = append(values, y.Values[i])
				break
			}
		}
	}
	for i, f := range y.Fields {
		if !taken[f.String] {
			fields = append(fields, f)
			values = append(values, y.Values[i])
		}
	}
	y.Fields, y.Values = fields, values
	y.reindex()
}

// Clear drops all fields and values.
func (y *Node) Clear() {
	y.Fields = nil
	y.Values = nil
}

// CopyFrom replaces y's contents with a deep copy of src's contents.
func (y *Node) CopyFrom(src *Node) {
	y.Clear()
	y.Fields = make([]*Node, len(src.Fields))
	y.Values = make([]*Node, len(src.Values))
	for i, f := range src.Fields {
		cf := f.Clone()
		cf.Parent = y
		cf.ParentIndex = i
		y.Fields[i] = cf
	}
	for i, v := range src.Values {
		cv := v.Clone()
		cv.Parent = y
		cv.ParentIndex = i
		y.Values[i] = cv
	}
}

// SwapContents exchanges the full contents of y and o in place. The two
// nodes share no entries afterwards; children are re-parented to their new
// holder.
func (y *Node) SwapContents(o *Node) {
	y.Fields, o.Fields = o.Fields, y.Fields
	y.Values, o.Values = o.Values, y.Values
	y.reindex()
	o.reindex()
}

func (y *Node) reindex() {
	for i, f := range y.Fields {
		f.Parent = y
		f.ParentIndex = i
	}
	for i, v := range y.Values {
		v.Parent = y
		v.ParentIndex = i
		if i < len(y.Fields) {
			v.ParentField = y.Fields[i].String
		}
	}
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
