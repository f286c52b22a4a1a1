// Package prefix applies the vanilla namespace policy to identifier lists.
package prefix

import (
	"fmt"
	"strings"
)

// Namespace is the literal prefix distinguishing vanilla identifiers.
const Namespace = "minecraft:"

// Policy selects how the namespace prefix is treated.
type Policy int

const (
	// ForcePrefixed adds the namespace to entries lacking it.
	ForcePrefixed Policy = iota
	// StripPrefix removes the namespace where present.
	StripPrefix
	// Both emits the stripped form (for prefixed entries) followed by the
	// original entry.
	Both
)

func (p Policy) String() string {
	switch p {
	case ForcePrefixed:
		return "yes"
	case StripPrefix:
		return "no"
	case Both:
		return "both"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Apply returns a new list with p applied to every item. Only a literal
// leading "minecraft:" counts as prefixed; "x:minecraft:y" does not.
// The result may contain duplicates and is not sorted.
func Apply(p Policy, items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch p {
		case StripPrefix:
			out = append(out, strings.TrimPrefix(it, Namespace))
		case ForcePrefixed:
			if strings.HasPrefix(it, Namespace) {
				out = append(out, it)
			} else {
				out = append(out, Namespace+it)
			}
		case Both:
			if rest, ok := strings.CutPrefix(it, Namespace); ok {
				out = append(out, rest)
			}
			out = append(out, it)
		}
	}
	return out
}
