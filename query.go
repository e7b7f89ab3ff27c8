package conftree

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/conftree/conftree/ir"
	"github.com/conftree/conftree/parse"
)

// Query evaluates an expr-lang expression against a document and returns
// the result as a tree. Top-level object fields are in scope as variables.
func Query(doc *ir.Node, src string) (*ir.Node, error) {
	if doc.Type != ir.ObjectType {
		return nil, fmt.Errorf("query needs an object document, got %s", doc.Type)
	}
	env := map[string]any{}
	for i, f := range doc.Fields {
		env[f.String] = toPlain(doc.Values[i])
	}
	prg, err := expr.Compile(src, expr.Env(env), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return nil, err
	}
	return parse.FromGo(res)
}

func toPlain(n *ir.Node) any {
	switch n.Type {
	case ir.ObjectType:
		res := make(map[string]any, len(n.Fields))
		for i, f := range n.Fields {
			res[f.String] = toPlain(n.Values[i])
		}
		return res
	case ir.ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = toPlain(v)
		}
		return res
	case ir.StringType:
		return n.String
	case ir.BoolType:
		return n.Bool
	case ir.NumberType:
		if n.Int64 != nil {
			return *n.Int64
		}
		if n.Float64 != nil {
			return *n.Float64
		}
		return n.Number
	default:
		return nil
	}
}
