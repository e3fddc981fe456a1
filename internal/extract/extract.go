// Package extract flattens arbitrarily nested data into its numeric leaves.
package extract

import (
	"encoding/json"
	"sort"
)

// Numbers walks v and returns every numeric leaf it contains, in traversal
// order. Objects are traversed in sorted key order so the result is
// deterministic, arrays in element order. Strings, booleans and nulls
// contribute nothing; booleans in particular are never treated as numbers.
//
// v is expected to be tree-shaped, as produced by decoding a JSON document.
func Numbers(v any) []float64 {
	return walk(v, nil)
}

func walk(v any, acc []float64) []float64 {
	switch x := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			acc = walk(x[k], acc)
		}
	case []any:
		for _, item := range x {
			acc = walk(item, acc)
		}
	case float64:
		acc = append(acc, x)
	case float32:
		acc = append(acc, float64(x))
	case int:
		acc = append(acc, float64(x))
	case int64:
		acc = append(acc, float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			acc = append(acc, f)
		}
	}
	return acc
}
