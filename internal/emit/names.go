package emit

import (
	"regexp"
	"strings"
)

var (
	wordSep   = regexp.MustCompile(`_|-|\s+`)
	camelEdge = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	spaceDash = regexp.MustCompile(`[\s-]+`)
)

// PascalCase turns "block_id" into "BlockId". Each word keeps only its
// first letter upper case.
func PascalCase(s string) string {
	var b strings.Builder
	for _, w := range wordSep.Split(s, -1) {
		if w == "" {
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(strings.ToLower(w[1:]))
	}
	return b.String()
}

// SnakeCase turns "EquipmentSlot" into "equipment_slot".
func SnakeCase(s string) string {
	s = camelEdge.ReplaceAllString(s, "${1}_${2}")
	s = spaceDash.ReplaceAllString(s, "_")
	return strings.ToLower(s)
}
