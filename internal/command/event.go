package command

import (
	"strconv"
	"strings"

	"personal-ops-assistant/internal/model"
	"personal-ops-assistant/pkg/timeparse"
)

// defaultDurationMinutes applies when the duration segment is missing or
// not a positive number.
const defaultDurationMinutes = 60

// ParseEventRequest turns event free text into a structured EventRequest.
// Pipeline: extract labeled fields → strip them → split positional segments →
// resolve the when-phrase against now in the reference timezone → add the
// duration. now must be read once per invocation, not memoized.
func ParseEventRequest(text string, resolver *timeparse.Resolver, now timeparse.Clock) (model.EventRequest, error) {
	if strings.TrimSpace(text) == "" {
		return model.EventRequest{}, ErrEmptyEvent
	}

	location := Field(text, FieldLocation)
	address := Field(text, FieldAddress)
	description := Field(text, FieldDescription)
	invite := Field(text, FieldInvite)
	linkedTask := Field(text, FieldTask)

	parts := SplitSegments(StripFields(text))
	if len(parts) < 2 {
		return model.EventRequest{}, ErrNoTime
	}

	title := parts[0]
	when := parts[1]

	duration := defaultDurationMinutes
	if len(parts) >= 3 {
		if n, err := strconv.Atoi(parts[2]); err == nil && n > 0 {
			duration = n
		}
	}

	start, err := resolver.Resolve(when, now())
	if err != nil {
		return model.EventRequest{}, err
	}
	end := timeparse.AddDuration(start, duration)

	return model.EventRequest{
		Title:           title,
		StartLocal:      start,
		EndLocal:        end,
		Location:        location,
		Address:         address,
		Description:     description,
		Invitees:        splitInvitees(invite),
		LinkedTaskTitle: linkedTask,
	}, nil
}

// splitInvitees splits a comma-separated invitee list, preserving order.
func splitInvitees(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}
