package timeparse

import (
	"strings"
	"time"
)

// tokenKind classifies a whitespace-separated token of a when-phrase.
type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenDate           // explicit YYYY-MM-DD
	tokenTime           // H[:MM] with optional attached am/pm
	tokenMeridiem
)

type token struct {
	kind tokenKind
	text string

	// tokenDate
	date time.Time

	// tokenTime (raw values, before 12-hour conversion)
	hour     int
	minute   int
	meridiem string // "am", "pm", or ""
}

// scan splits a phrase into classified tokens. Classification is purely
// structural; range validation happens later so that an out-of-range hour
// still reads as a time token and fails loudly instead of being skipped.
func scan(phrase string) []token {
	fields := strings.Fields(strings.ToLower(phrase))
	tokens := make([]token, 0, len(fields))

	for _, f := range fields {
		f = strings.Trim(f, ",.;")
		if f == "" {
			continue
		}

		if d, ok := scanDate(f); ok {
			tokens = append(tokens, token{kind: tokenDate, text: f, date: d})
			continue
		}
		if f == "am" || f == "pm" {
			tokens = append(tokens, token{kind: tokenMeridiem, text: f, meridiem: f})
			continue
		}
		if h, m, mer, ok := scanClock(f); ok {
			tokens = append(tokens, token{kind: tokenTime, text: f, hour: h, minute: m, meridiem: mer})
			continue
		}
		tokens = append(tokens, token{kind: tokenWord, text: f})
	}

	// Fold a standalone trailing meridiem into the preceding time token
	// so "3 pm" and "3pm" scan identically.
	folded := tokens[:0]
	for _, t := range tokens {
		if t.kind == tokenMeridiem && len(folded) > 0 {
			last := &folded[len(folded)-1]
			if last.kind == tokenTime && last.meridiem == "" {
				last.meridiem = t.meridiem
				continue
			}
		}
		folded = append(folded, t)
	}
	return folded
}

// scanDate recognizes an explicit YYYY-MM-DD token.
func scanDate(s string) (time.Time, bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// scanClock recognizes H[:MM] with an optionally attached meridiem
// ("9", "9:30", "3pm", "9:30am"). A hour longer than two digits is not a
// clock token; this is what keeps a bare year fragment like "2025" from
// being mistaken for a time.
func scanClock(s string) (hour, minute int, meridiem string, ok bool) {
	if strings.HasSuffix(s, "am") || strings.HasSuffix(s, "pm") {
		meridiem = s[len(s)-2:]
		s = s[:len(s)-2]
	}
	if s == "" {
		return 0, 0, "", false
	}

	hourPart := s
	minutePart := ""
	if i := strings.IndexByte(s, ':'); i >= 0 {
		hourPart, minutePart = s[:i], s[i+1:]
	}

	if len(hourPart) < 1 || len(hourPart) > 2 || !allDigits(hourPart) {
		return 0, 0, "", false
	}
	if minutePart != "" && (len(minutePart) != 2 || !allDigits(minutePart)) {
		return 0, 0, "", false
	}

	hour = atoi(hourPart)
	minute = atoi(minutePart)
	return hour, minute, meridiem, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
