package command

import "strings"

// classifier rules, in priority order. Prefixes are matched on the lowercased
// message; the payload is sliced from the original-case text so user
// formatting survives. First matching rule wins.
var prefixRules = []struct {
	prefix string
	kind   IntentKind
}{
	{"done:", IntentMarkDone},
	{"done ", IntentMarkDone},
	{"tarea:", IntentCreateTask},
	{"event:", IntentCreateEvent},
	{"/event", IntentCreateEvent},
}

// Classify inspects a raw chat message and returns exactly one Intent.
func Classify(message string) Intent {
	trimmed := strings.TrimSpace(message)
	lower := strings.ToLower(trimmed)

	switch lower {
	case "top":
		return Intent{Kind: IntentListTop}
	case "hoy", "today":
		return Intent{Kind: IntentListToday}
	}

	for _, rule := range prefixRules {
		if strings.HasPrefix(lower, rule.prefix) {
			payload := strings.TrimSpace(trimmed[len(rule.prefix):])
			return Intent{Kind: rule.kind, Payload: payload}
		}
	}

	return Intent{Kind: IntentHelp}
}
