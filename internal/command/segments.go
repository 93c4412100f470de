package command

import "strings"

// SplitSegments splits text already stripped of labeled fields on '/',
// trims each piece, and drops empty pieces. Position 0 is the title,
// position 1 the when-phrase, position 2 the duration in minutes.
func SplitSegments(text string) []string {
	raw := strings.Split(text, "/")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
