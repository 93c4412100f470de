package command

import "strings"

// Labeled field keys recognized in event free text.
const (
	FieldLocation    = "loc"
	FieldAddress     = "addr"
	FieldDescription = "desc"
	FieldInvite      = "invite"
	FieldTask        = "task"
)

var fieldKeys = []string{FieldLocation, FieldAddress, FieldDescription, FieldInvite, FieldTask}

// Field returns the trimmed value following "key:" up to the next segment
// delimiter ('/') or end of string. Lookup is case-insensitive and whole-word:
// "loc" never matches inside another word. Returns "" when absent.
func Field(text, key string) string {
	start, end := fieldSpan(text, key)
	if start < 0 {
		return ""
	}
	value := text[start:end]
	value = strings.TrimPrefix(value[len(key):], ":")
	return strings.TrimSpace(value)
}

// StripFields removes every recognized "key: value" span from the text,
// leaving only positional content, with whitespace collapsed.
func StripFields(text string) string {
	for _, key := range fieldKeys {
		for {
			start, end := fieldSpan(text, key)
			if start < 0 {
				break
			}
			text = text[:start] + text[end:]
		}
	}
	return strings.Join(strings.Fields(text), " ")
}

// fieldSpan locates the [start, end) byte span of "key: value" in text,
// where end is the next '/' or end of string. Returns start = -1 when the
// key is absent.
func fieldSpan(text, key string) (int, int) {
	lower := strings.ToLower(text)
	from := 0
	for {
		i := strings.Index(lower[from:], key+":")
		if i < 0 {
			return -1, -1
		}
		i += from

		// Whole-word check on the byte before the key.
		if i > 0 && isWordByte(lower[i-1]) {
			from = i + 1
			continue
		}

		end := strings.IndexByte(text[i:], '/')
		if end < 0 {
			end = len(text)
		} else {
			end += i
		}
		return i, end
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
