package manifest

import "strings"

// splitTopLevelCommas splits s on commas that are not inside a quoted
// string, trimming surrounding whitespace from each piece.
func splitTopLevelCommas(s string) []string {
	var out []string
	var buf strings.Builder
	var quote rune

	flush := func() {
		piece := strings.TrimSpace(buf.String())
		if piece != "" {
			out = append(out, piece)
		}
		buf.Reset()
	}

	for _, r := range s {
		switch {
		case quote != 0:
			buf.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			buf.WriteRune(r)
		case r == ',':
			flush()
		default:
			buf.WriteRune(r)
		}
	}
	flush()

	return out
}

// isQuotedString reports whether tok is a single- or double-quoted string
// literal.
func isQuotedString(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	first, last := tok[0], tok[len(tok)-1]
	return (first == '\'' && last == '\'') || (first == '"' && last == '"')
}

// unquote strips one layer of surrounding quotes, if present; otherwise it
// returns tok unchanged. Options may carry unquoted values (e.g. "ref:
// abc123"), so this is intentionally permissive.
func unquote(tok string) string {
	if isQuotedString(tok) {
		return tok[1 : len(tok)-1]
	}
	return tok
}

// splitOption reports whether tok has the "key: value" shape and, if so,
// returns the key and the (still possibly quoted) value.
func splitOption(tok string) (key, value string, ok bool) {
	idx := strings.Index(tok, ":")
	if idx <= 0 {
		return "", "", false
	}

	candidate := strings.TrimSpace(tok[:idx])
	if !isBareIdentifier(candidate) {
		return "", "", false
	}

	return candidate, tok[idx+1:], true
}

// isBareIdentifier reports whether s looks like an option key: letters,
// digits, and underscores only, not itself inside quotes.
func isBareIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}
