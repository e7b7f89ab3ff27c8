package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Merge    bool
	Hash     bool
	Traverse bool
}

var d *debug

func init() {
	d = &debug{}
	d.Merge = boolEnv("CONFTREE_DEBUG_MERGE")
	d.Hash = boolEnv("CONFTREE_DEBUG_HASH")
	d.Traverse = boolEnv("CONFTREE_DEBUG_TRAVERSE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Merge() bool {
	return d.Merge
}
func Hash() bool {
	return d.Hash
}
func Traverse() bool {
	return d.Traverse
}
