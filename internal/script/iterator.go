package script

import (
	"regexp"
	"strings"
)

// Statement is one self-contained request unit inside a script body:
// an HTTP method, a target URL and the request body that follows the
// marker line. Statements are never mutated after creation.
type Statement struct {
	Method string
	URL    string
	Body   string
}

// markerRe matches a statement marker line: a known HTTP verb followed by a
// target, alone on its line.
var markerRe = regexp.MustCompile(`(?mi)^[ \t]*(GET|POST|PUT|PATCH|DELETE|HEAD|OPTIONS)[ \t]+(\S+)[ \t]*$`)

// Iterator walks a script body and yields successive statements. It owns the
// read cursor; exhaustion (including malformed trailing content) is a tagged
// outcome, not an error, so partial output already produced stays valid.
type Iterator struct {
	body   string
	cursor int
	first  int // offset of the first marker, or -1
}

// NewIterator prepares iteration over body. The text before the first marker
// is not consumed by Next; it belongs to the implicit first statement and is
// available via Rest.
func NewIterator(body string) *Iterator {
	it := &Iterator{body: body, first: -1}
	if loc := markerRe.FindStringIndex(body); loc != nil {
		it.first = loc[0]
		it.cursor = loc[0]
	} else {
		it.cursor = len(body)
	}
	return it
}

// Rest returns the body text preceding the first statement marker, or the
// whole body when no marker exists.
func (it *Iterator) Rest() string {
	if it.first < 0 {
		return strings.TrimSpace(it.body)
	}
	return strings.TrimSpace(it.body[:it.first])
}

// Next returns the next statement starting at the current cursor and true,
// or a zero Statement and false when no further statement markers exist.
func (it *Iterator) Next() (Statement, bool) {
	if it.cursor >= len(it.body) {
		return Statement{}, false
	}
	rest := it.body[it.cursor:]
	loc := markerRe.FindStringSubmatchIndex(rest)
	if loc == nil {
		it.cursor = len(it.body)
		return Statement{}, false
	}

	method := strings.ToUpper(rest[loc[2]:loc[3]])
	url := rest[loc[4]:loc[5]]

	// Body runs from the end of the marker line to the next marker or EOF.
	bodyStart := loc[1]
	tail := rest[bodyStart:]
	bodyEnd := len(tail)
	if next := markerRe.FindStringIndex(tail); next != nil {
		bodyEnd = next[0]
	}

	it.cursor += bodyStart + bodyEnd

	return Statement{
		Method: method,
		URL:    url,
		Body:   strings.TrimSpace(tail[:bodyEnd]),
	}, true
}
