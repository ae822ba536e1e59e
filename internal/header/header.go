// Package header parses the raw header argument string of a request script
// into an ordered set of name/value pairs.
package header

import "strings"

// Pair is a single header name/value pair. Both fields are trimmed.
type Pair struct {
	Name  string
	Value string
}

// Parse turns a raw header argument like
//
//	Content-Type=application/json Authorization="Bearer abc def"
//
// into ordered pairs. Values keep embedded whitespace when grouped by double
// quotes, single quotes or parentheses; surrounding quotes are stripped.
// Tokens without a key=value shape are skipped rather than rejected, and an
// absent input yields an empty set. Duplicate names are preserved in order.
func Parse(raw string) []Pair {
	pairs := []Pair{}
	for _, tok := range splitBalanced(raw) {
		eq := strings.IndexByte(tok, '=')
		if eq <= 0 {
			continue
		}
		name := strings.TrimSpace(tok[:eq])
		if name == "" {
			continue
		}
		value := strings.TrimSpace(unquote(tok[eq+1:]))
		pairs = append(pairs, Pair{Name: name, Value: value})
	}
	return pairs
}

// ToMap flattens pairs for clients that need a map; later duplicates win.
// Use the slice form when duplicate headers must all be sent.
func ToMap(pairs []Pair) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p.Name] = p.Value
	}
	return m
}

// splitBalanced splits s on whitespace, except inside double quotes, single
// quotes or parentheses. Quote characters stay in the token so the caller can
// decide whether to strip them.
func splitBalanced(s string) []string {
	var tokens []string
	var cur strings.Builder
	var quote byte
	depth := 0

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			cur.WriteByte(c)
		case c == '(':
			depth++
			cur.WriteByte(c)
		case c == ')':
			if depth > 0 {
				depth--
			}
			cur.WriteByte(c)
		case (c == ' ' || c == '\t' || c == '\n' || c == '\r') && depth == 0:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return tokens
}

// unquote strips one layer of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
