package conftree

import (
	"bytes"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/conftree/conftree/encode"
	"github.com/conftree/conftree/format"
	"github.com/conftree/conftree/ir"
	"github.com/conftree/conftree/parse"
)

// Patch applies an RFC 6902 JSON patch to a document and returns the
// patched tree. The document round-trips through its JSON encoding; the
// input tree is not modified.
func Patch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, err
	}
	d, err := marshalJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, err
	}
	res, err := parse.Parse(out)
	if err != nil {
		return nil, err
	}
	restoreOrder(res, doc)
	return res, nil
}

// MergePatch applies an RFC 7386 merge patch to a document.
func MergePatch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	d, err := marshalJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return nil, err
	}
	res, err := parse.Parse(out)
	if err != nil {
		return nil, err
	}
	restoreOrder(res, doc)
	return res, nil
}

// restoreOrder puts the patched tree's object keys back in the input
// document's order. json-patch works on Go maps, so the re-marshalled
// output comes back with every object sorted alphabetically; content
// hashes are key-order sensitive, so that would register as an edit on
// every unsorted node.
func restoreOrder(patched, orig *ir.Node) {
	if patched == nil || orig == nil {
		return
	}
	switch {
	case patched.Type == ir.ObjectType && orig.Type == ir.ObjectType:
		patched.OrderLike(orig)
		for i, f := range patched.Fields {
			restoreOrder(patched.Values[i], orig.Get(f.String))
		}
	case patched.Type == ir.ArrayType && orig.Type == ir.ArrayType:
		n := min(len(patched.Values), len(orig.Values))
		for i := 0; i < n; i++ {
			restoreOrder(patched.Values[i], orig.Values[i])
		}
	}
}

func marshalJSON(doc *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, buf, encode.EncodeFormat(format.JSONFormat)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
