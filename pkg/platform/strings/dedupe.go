// Package strings holds small string-slice helpers shared by the domain
// services for normalizing user-supplied tag lists (skills, target groups,
// transition pathways).
package strings

import "strings"

// DedupeAndTrim trims whitespace, drops empties, and removes duplicates while
// keeping first-seen order.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	out := values[:0:0]
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
