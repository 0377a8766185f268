// Package casing rewrites snake_case object keys to camelCase in decoded
// JSON values. It is the only place where inbound wire names are translated
// to the names used by the in-memory model.
package casing

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxDepth bounds the nesting SnakeToCamel will walk.
const DefaultMaxDepth = 64

// ErrTooDeep is returned when a value nests deeper than the allowed depth.
// Self-referential maps always end up here.
var ErrTooDeep = errors.New("value nested too deeply")

var snakeRun = regexp.MustCompile(`_([a-z])`)

// Key rewrites every "_x" (x an ASCII lowercase letter) in k to "X".
// The rewrite is a single left-to-right pass, so "a__b" becomes "a_B".
func Key(k string) string {
	return snakeRun.ReplaceAllStringFunc(k, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// SnakeToCamel returns a copy of v with every map key rewritten by Key.
// Slices are converted element by element; anything else, nil included,
// is returned unchanged. If v nests deeper than DefaultMaxDepth, v is
// returned as is.
func SnakeToCamel(v any) any {
	out, err := Convert(v, DefaultMaxDepth)
	if err != nil {
		return v
	}
	return out
}

// Convert is SnakeToCamel with an explicit nesting bound. Each map or
// slice level counts once.
func Convert(v any, maxDepth int) (any, error) {
	return convert(v, 0, maxDepth)
}

func convert(v any, depth, maxDepth int) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if depth >= maxDepth {
			return nil, ErrTooDeep
		}
		// Sorted so colliding keys ("a_b" and "aB") resolve the same way every time.
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make(map[string]any, len(t))
		for _, k := range keys {
			c, err := convert(t[k], depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[Key(k)] = c
		}
		return out, nil
	case []any:
		if depth >= maxDepth {
			return nil, ErrTooDeep
		}
		out := make([]any, len(t))
		for i, item := range t {
			c, err := convert(item, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	default:
		return v, nil
	}
}

// NormalizeJSON decodes raw JSON and converts its keys. Numbers are kept
// as json.Number so large integers survive the round trip.
func NormalizeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return Convert(v, DefaultMaxDepth)
}
