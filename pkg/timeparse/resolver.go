package timeparse

import (
	"fmt"
	"time"
)

// Clock supplies "now". Production code passes Resolver.Now; tests pass a
// fixed instant.
type Clock func() time.Time

// Resolver converts natural-language when-phrases to absolute time.Time
// values in a single fixed reference timezone.
type Resolver struct {
	location *time.Location
}

// NewResolver creates a resolver for the given IANA timezone string.
// e.g. "America/New_York"
func NewResolver(timezone string) (*Resolver, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Resolver{location: loc}, nil
}

// Location returns the resolver's reference timezone.
func (r *Resolver) Location() *time.Location {
	return r.location
}

// Now returns the current wall-clock time in the reference timezone.
// Read once per resolution, never cached across calls.
func (r *Resolver) Now() time.Time {
	return time.Now().In(r.location)
}

// Relative-day keywords. English and Spanish variants are accepted.
var (
	tomorrowWords = map[string]bool{"tomorrow": true, "mañana": true, "manana": true}
	todayWords    = map[string]bool{"today": true, "hoy": true}
)

// Resolve converts a when-phrase to an absolute timestamp, using now as the
// default date anchor. Precedence rules, in order:
//  1. An explicit YYYY-MM-DD token overrides the anchor entirely, including
//     any relative-day keyword in the same phrase.
//  2. A "tomorrow" keyword advances the anchor one calendar day; a "today"
//     keyword leaves it unchanged.
//  3. The LAST token that scans as H[:MM][am|pm] is the time; this keeps a
//     date's digit runs from being conflated with an hour.
//
// Seconds are always zero in the result.
func (r *Resolver) Resolve(phrase string, now time.Time) (time.Time, error) {
	tokens := scan(phrase)

	anchor := now.In(r.location)
	haveExplicitDate := false
	var clock *token

	for i := range tokens {
		t := tokens[i]
		switch t.kind {
		case tokenDate:
			anchor = t.date
			haveExplicitDate = true
		case tokenTime:
			clock = &tokens[i]
		case tokenWord:
			if haveExplicitDate {
				continue // explicit date wins over relative keywords
			}
			if tomorrowWords[t.text] {
				anchor = now.In(r.location).AddDate(0, 0, 1)
			}
			// today keywords leave the anchor unchanged
		}
	}

	if clock == nil {
		return time.Time{}, &ParseError{Phrase: phrase, Reason: "no time given (expected e.g. 9am, 15:30, 3:00pm)"}
	}

	hour, minute := clock.hour, clock.minute
	switch clock.meridiem {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 {
		return time.Time{}, &ValidationError{Phrase: phrase, Reason: fmt.Sprintf("hour %d out of range", hour)}
	}
	if minute > 59 {
		return time.Time{}, &ValidationError{Phrase: phrase, Reason: fmt.Sprintf("minute %d out of range", minute)}
	}

	return time.Date(anchor.Year(), anchor.Month(), anchor.Day(), hour, minute, 0, 0, r.location), nil
}

// AddDuration advances a resolved timestamp by the given number of minutes,
// rolling over day/month/year boundaries via the time package.
func AddDuration(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}
