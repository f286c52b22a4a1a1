// Package pathmatch expands doublestar glob patterns (with ** and {a,b})
// beneath a base directory.
package pathmatch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match returns every regular file under base whose slash-separated path
// relative to base matches pattern. Returned paths are base joined with the
// relative path, always using forward slashes. Order is discovery order.
//
// A base directory that does not exist yields no matches and no error.
// Relative paths matching any deny pattern are dropped.
func Match(base, pattern string, deny []string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("pathmatch: invalid pattern %q", pattern)
	}
	if err := ValidateDeny(deny); err != nil {
		return nil, err
	}

	info, err := os.Stat(base)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pathmatch: stat %s: %w", base, err)
	}
	if !info.IsDir() {
		return nil, nil
	}

	rels, err := doublestar.Glob(os.DirFS(base), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("pathmatch: glob %q: %w", pattern, err)
	}

	root := filepath.ToSlash(base)
	out := make([]string, 0, len(rels))
	for _, rel := range rels {
		if IsDenied(deny, rel) {
			continue
		}
		out = append(out, path.Join(root, rel))
	}
	return out, nil
}

// IsDenied reports whether the slash-separated relative path matches any of
// the deny patterns. A pattern of the form "dir/**" also matches dir itself.
func IsDenied(deny []string, rel string) bool {
	rel = strings.TrimPrefix(rel, "./")
	for _, pat := range deny {
		pat = strings.TrimPrefix(pat, "./")
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// ValidateDeny checks that every deny pattern is a valid doublestar pattern.
func ValidateDeny(deny []string) error {
	for _, pat := range deny {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("pathmatch: invalid deny pattern %q", pat)
		}
	}
	return nil
}
