package ir

import "testing"

func TestNodePath(t *testing.T) {
	root := obj(kv("a", obj(kv("list", FromSlice([]*Node{
		obj(kv("inner", FromInt(7))),
	})))))
	inner := root.Get("a").Get("list").Values[0].Get("inner")
	if got := inner.Path(); got != "$.a.list[0].inner" {
		t.Fatalf("Path() = %q", got)
	}
	if got := root.Path(); got != "$" {
		t.Fatalf("root Path() = %q", got)
	}
}

func TestRenderPath(t *testing.T) {
	tests := []struct {
		name string
		segs []Segment
		want string
	}{
		{"empty", nil, "$"},
		{"fields", []Segment{FieldSegment("a"), FieldSegment("b")}, "$.a.b"},
		{"index", []Segment{FieldSegment("a"), IndexSegment(3)}, "$.a[3]"},
		{"quoted", []Segment{FieldSegment("with.dot")}, "$.'with.dot'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderPath(tt.segs); got != tt.want {
				t.Errorf("RenderPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	root := obj(
		kv("a", obj(kv("b", FromSlice([]*Node{FromString("x"), FromString("y")})))),
		kv("with.dot", FromInt(5)),
	)

	tests := []struct {
		path    string
		want    *Node
		wantErr bool
	}{
		{"$", root, false},
		{"$.a.b[1]", FromString("y"), false},
		{"$.'with.dot'", FromInt(5), false},
		{"$.a.nope", nil, true},
		{"$.a.b[9]", nil, true},
		{"no-dollar", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := root.GetPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if Compare(got, tt.want) != 0 {
				t.Errorf("GetPath(%q) = %v", tt.path, got)
			}
		})
	}
}
