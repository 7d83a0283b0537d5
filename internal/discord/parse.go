package discord

import (
	"strings"
	"unicode"
)

// ParseCommand splits "<prefix><name> <rest>" into the lower-cased command
// name and the raw text after it. ok is false when content does not start with
// prefix or names no command.
func ParseCommand(content, prefix string) (name, rest string, ok bool) {
	content = strings.TrimSpace(content)
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", "", false
	}
	body := content[len(prefix):]
	end := strings.IndexFunc(body, unicode.IsSpace)
	if end < 0 {
		name, rest = body, ""
	} else {
		name, rest = body[:end], strings.TrimSpace(body[end:])
	}
	if name == "" {
		return "", "", false
	}
	return strings.ToLower(name), rest, true
}

// Tokenize splits s on whitespace. Text in double quotes is one token and the
// quotes are dropped. An unterminated quote runs to the end of s.
func Tokenize(s string) []string {
	var (
		tokens  []string
		current strings.Builder
		quoted  bool
		started bool
	)
	flush := func() {
		if started {
			tokens = append(tokens, current.String())
		}
		current.Reset()
		started = false
	}

	for _, r := range s {
		switch {
		case r == '"':
			if quoted {
				quoted = false
				flush()
				continue
			}
			flush()
			quoted = true
			started = true
		case unicode.IsSpace(r) && !quoted:
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	flush()
	return tokens
}

// isSelection reports whether content is a bare number, the only form a
// pending reply waiter accepts.
func isSelection(content string) bool {
	content = strings.TrimSpace(content)
	if content == "" {
		return false
	}
	for _, r := range content {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
