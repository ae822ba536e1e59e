package common

import (
	"strings"
	"testing"
)

func TestMasker_MaskHeader(t *testing.T) {
	m := NewMasker()
	if got := m.MaskHeader("Authorization", "Bearer secret"); got != "***MASKED***" {
		t.Fatalf("authorization header not masked: %q", got)
	}
	if got := m.MaskHeader("X-API-Key", "abc123"); got != "***MASKED***" {
		t.Fatalf("api key header not masked: %q", got)
	}
	if got := m.MaskHeader("Content-Type", "application/json"); got != "application/json" {
		t.Fatalf("plain header should pass through, got %q", got)
	}
}

func TestMasker_MaskString(t *testing.T) {
	m := NewMasker()
	out := m.MaskString(`{"password": "hunter2", "q": "ok"}`)
	if strings.Contains(out, "hunter2") {
		t.Fatalf("password leaked: %q", out)
	}
	out = m.MaskString("Authorization: Bearer abc.def.ghi")
	if strings.Contains(out, "abc.def.ghi") {
		t.Fatalf("bearer token leaked: %q", out)
	}
}

func TestMasker_Disabled(t *testing.T) {
	m := NewMasker()
	m.SetEnabled(false)
	if got := m.MaskHeader("Authorization", "Bearer x"); got != "Bearer x" {
		t.Fatalf("disabled masker must not mask, got %q", got)
	}
	if got := m.MaskString("token=abc"); got != "token=abc" {
		t.Fatalf("disabled masker must not rewrite strings, got %q", got)
	}
}
