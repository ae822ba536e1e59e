package header

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestParse_Basic(t *testing.T) {
	got := Parse("Content-Type=application/json X-Trace=on")
	want := []Pair{
		{Name: "Content-Type", Value: "application/json"},
		{Name: "X-Trace", Value: "on"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParse_QuotedValueKeepsWhitespace(t *testing.T) {
	got := Parse(`Authorization="Bearer abc def" X-Note='two words'`)
	if len(got) != 2 {
		t.Fatalf("expected 2 pairs, got %v", got)
	}
	if got[0].Value != "Bearer abc def" {
		t.Fatalf("double-quoted value mangled: %q", got[0].Value)
	}
	if got[1].Value != "two words" {
		t.Fatalf("single-quoted value mangled: %q", got[1].Value)
	}
}

func TestParse_ParenGrouping(t *testing.T) {
	got := Parse("X-Filter=(a AND b) Accept=*/*")
	if len(got) != 2 || got[0].Value != "(a AND b)" {
		t.Fatalf("paren-grouped value mangled: %v", got)
	}
}

func TestParse_LenientOnMalformedTokens(t *testing.T) {
	got := Parse("noequals =novalue X-Good=1")
	if len(got) != 1 || got[0] != (Pair{Name: "X-Good", Value: "1"}) {
		t.Fatalf("expected only the well-formed pair, got %v", got)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	if got := Parse(""); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
	if got := Parse("   \t "); len(got) != 0 {
		t.Fatalf("expected empty set for whitespace, got %v", got)
	}
}

func TestParse_DuplicatesPreservedInOrder(t *testing.T) {
	got := Parse("X-A=1 X-A=2")
	if len(got) != 2 || got[0].Value != "1" || got[1].Value != "2" {
		t.Fatalf("duplicates must be kept in order, got %v", got)
	}
	m := ToMap(got)
	if m["X-A"] != "2" {
		t.Fatalf("map form should keep the later value, got %q", m["X-A"])
	}
}

func TestParse_Idempotent(t *testing.T) {
	raw := "k=v k2=v2"
	first := Parse(raw)

	// reserialize and parse again
	parts := make([]string, 0, len(first))
	for _, p := range first {
		parts = append(parts, fmt.Sprintf("%s=%s", p.Name, p.Value))
	}
	second := Parse(strings.Join(parts, " "))

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parse is not idempotent: %v vs %v", first, second)
	}
}
