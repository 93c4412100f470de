package usecase

import (
	"context"
	"fmt"
	"strings"

	"personal-ops-assistant/internal/model"
)

// ComposeBriefing builds the owner's daily briefing: the open-task top list
// plus today's calendar agenda.
func (uc *implUseCase) ComposeBriefing(ctx context.Context, sc model.Scope) (string, error) {
	top, err := uc.ListTop(ctx, sc)
	if err != nil {
		return "", fmt.Errorf("failed to list top tasks: %w", err)
	}

	today, err := uc.ListToday(ctx, sc)
	if err != nil {
		return "", fmt.Errorf("failed to build today view: %w", err)
	}

	now := uc.resolver.Now()

	var b strings.Builder
	fmt.Fprintf(&b, "🌅 Daily briefing — %s %s\n\n", now.Weekday(), now.Format("2006-01-02"))

	b.WriteString("*Top tasks*\n")
	if len(top) == 0 {
		b.WriteString("Nothing open. 🎉\n")
	}
	for _, t := range top {
		fmt.Fprintf(&b, "%d. %s (P%d)\n", t.Seq, t.Title, t.Priority)
	}

	b.WriteString("\n*Today*\n")
	if len(today.Events) == 0 {
		b.WriteString("No events scheduled.\n")
	}
	for _, ev := range today.Events {
		line := fmt.Sprintf("• %s %s", ev.Start, ev.Summary)
		if ev.Location != "" {
			line += fmt.Sprintf(" (%s)", ev.Location)
		}
		b.WriteString(line + "\n")
	}

	return b.String(), nil
}
