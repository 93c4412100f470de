package command

import (
	"strings"

	"personal-ops-assistant/internal/model"
)

// Priority synonym lists. High is checked before low; first match wins.
var (
	highWords = []string{"high", "alta", "p1"}
	lowWords  = []string{"low", "baja", "p3"}
)

// NormalizePriority maps free text to a numeric priority level:
// 1 when it contains a high synonym, 3 for a low synonym, 2 otherwise.
// Matching is case-insensitive.
func NormalizePriority(text string) model.PriorityLevel {
	lower := strings.ToLower(text)
	for _, w := range highWords {
		if strings.Contains(lower, w) {
			return model.PriorityHigh
		}
	}
	for _, w := range lowWords {
		if strings.Contains(lower, w) {
			return model.PriorityLow
		}
	}
	return model.PriorityDefault
}
