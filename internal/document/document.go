// Package document loads hand-authored relaxed-JSON game definition files
// (comments and trailing commas allowed) into generic values, and provides
// nil-safe accessors for pulling fields out of them.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/tailscale/hujson"
)

// ParseError reports a document whose text is not valid relaxed JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Read reads path and parses it into map[string]any, []any or a scalar.
func Read(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	v, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return v, nil
}

// utf8BOM is the byte-order mark some editors put in front of game files.
var utf8BOM = []byte("\xef\xbb\xbf")

// Parse parses relaxed JSON text. A leading UTF-8 byte-order mark is ignored.
func Parse(data []byte) (any, error) {
	ast, err := hujson.Parse(bytes.TrimPrefix(data, utf8BOM))
	if err != nil {
		return nil, err
	}
	ast.Standardize()
	var v any
	if err := json.Unmarshal(ast.Pack(), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Object returns v as an object, or nil when v is not one.
func Object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// Has reports whether v is an object with key present (even if null).
func Has(v any, key string) bool {
	_, ok := Object(v)[key]
	return ok
}

// Lookup walks nested object keys. Any missing key or non-object along the
// way yields nil.
func Lookup(v any, keys ...string) any {
	for _, k := range keys {
		m := Object(v)
		if m == nil {
			return nil
		}
		v = m[k]
	}
	return v
}

// String returns v as a non-empty string.
func String(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Strings returns the string elements of an array, skipping anything else.
func Strings(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := String(e); ok {
			out = append(out, s)
		}
	}
	return out
}

// Keys returns the keys of an object in sorted order.
func Keys(v any) []string {
	m := Object(v)
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
