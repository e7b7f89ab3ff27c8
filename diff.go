package conftree

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/conftree/conftree/encode"
	"github.com/conftree/conftree/ir"
)

// Diff returns a line-based diff between the YAML encodings of two trees.
func Diff(from, to *ir.Node) []diffpatch.Diff {
	a := encode.MustString(from) + "\n"
	b := encode.MustString(to) + "\n"
	dmp := diffpatch.New()
	fromRunes, toRunes, lines := dmp.DiffLinesToRunes(a, b)
	diffs := dmp.DiffMainRunes(fromRunes, toRunes, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// DiffText renders a diff in unified-ish text form, one line per changed
// line with a -/+/space prefix.
func DiffText(diffs []diffpatch.Diff) string {
	buf := &strings.Builder{}
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

func splitLines(text string) []string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}
