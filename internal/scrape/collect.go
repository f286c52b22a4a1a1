package scrape

import (
	"fmt"
	"path/filepath"

	"bedrockgen/internal/document"
	"bedrockgen/internal/identset"
	"bedrockgen/internal/pathmatch"
)

// Collect runs r against every file under root matching its pattern and
// returns the sorted, duplicate-free identifiers. Paths matching a deny
// pattern are skipped. A document that fails to parse aborts the run with a
// *document.ParseError in the chain.
func Collect(root string, r Rule, deny []string) ([]string, error) {
	files, err := pathmatch.Match(root, r.Glob(), deny)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Output(), err)
	}
	return Apply(r, root, files)
}

// Apply runs r over files already matched under root. Path rules see the
// slash path relative to root, so directories above root never reach a
// transform.
func Apply(r Rule, root string, files []string) ([]string, error) {
	set := identset.New()
	for _, f := range files {
		switch rule := r.(type) {
		case PathRule:
			rel, err := filepath.Rel(root, filepath.FromSlash(f))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", rule.Name, err)
			}
			if id, ok := rule.Transform(filepath.ToSlash(rel)); ok {
				set.Add(id)
			}
		case DocumentRule:
			doc, err := document.Read(f)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", rule.Name, err)
			}
			set.Add(rule.Transform(doc)...)
		default:
			return nil, fmt.Errorf("scrape: unsupported rule type %T", r)
		}
	}
	return set.Sorted(), nil
}
