// Package scrape declares extraction rules and runs the collect pipeline
// over them: match files, transform each, dedup, sort.
package scrape

import (
	"path"
	"strings"

	"bedrockgen/internal/document"
)

// Rule is either a PathRule or a DocumentRule.
type Rule interface {
	// Output is the rule's output name, e.g. "loot_table". It is unique
	// within one stage and names the generated file.
	Output() string
	// Glob is the doublestar pattern, relative to the source root.
	Glob() string

	isRule()
}

// PathRule derives an identifier from the matched file's slash path alone.
// The path is relative to the source root.
type PathRule struct {
	Name      string
	Pattern   string
	Transform func(path string) (string, bool)
}

func (r PathRule) Output() string { return r.Name }
func (r PathRule) Glob() string   { return r.Pattern }
func (PathRule) isRule()          {}

// DocumentRule derives zero or more identifiers from a parsed document.
// Transforms must tolerate absent fields by returning nil.
type DocumentRule struct {
	Name      string
	Pattern   string
	Transform func(doc any) []string
}

func (r DocumentRule) Output() string { return r.Name }
func (r DocumentRule) Glob() string   { return r.Pattern }
func (DocumentRule) isRule()          {}

// Kind returns "path" or "document".
func Kind(r Rule) string {
	if _, ok := r.(PathRule); ok {
		return "path"
	}
	return "document"
}

// RelativePath returns the part of a slash path that starts at the first
// segment equal to anchor, optionally without its final extension.
// It reports false when anchor is not a segment of p.
//
//	RelativePath("x/behavior_pack/loot_tables/chests/a.json", "loot_tables", false)
//	  -> "loot_tables/chests/a.json"
func RelativePath(p, anchor string, trimExt bool) (string, bool) {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		if s != anchor {
			continue
		}
		rel := strings.Join(segs[i:], "/")
		if trimExt {
			rel = strings.TrimSuffix(rel, path.Ext(rel))
		}
		return rel, rel != ""
	}
	return "", false
}

// One wraps a single optional identifier as a transform result.
func One(s string, ok bool) []string {
	if !ok || s == "" {
		return nil
	}
	return []string{s}
}

// DescriptionIdentifier returns a transform reading the common
// {"<key>": {"description": {"identifier": ...}}} definition shape.
func DescriptionIdentifier(key string) func(doc any) []string {
	return func(doc any) []string {
		return One(document.String(document.Lookup(doc, key, "description", "identifier")))
	}
}
