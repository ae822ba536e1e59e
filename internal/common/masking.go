package common

import (
	"regexp"
	"strings"
)

const maskReplacement = "***MASKED***"

// sensitiveHeaderNames are header names whose values never appear in logs.
// Matching is case-insensitive.
var sensitiveHeaderNames = []string{
	"authorization",
	"x-api-key",
	"api-key",
	"cookie",
	"set-cookie",
}

// credentialPatterns catch credentials embedded in free-form text such as
// request bodies or URLs echoed into logs.
var credentialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-._~+/]+=*`),
	regexp.MustCompile(`(?i)Basic\s+[A-Za-z0-9+/]+=*`),
	regexp.MustCompile(`(?i)(password|api[_-]?key|token|secret)["'\s]*[:=]["'\s]*[^"',}\]\s]+`),
}

// Masker hides sensitive header values and embedded credentials in log output.
type Masker struct {
	enabled bool
}

// NewMasker creates a masker with masking enabled.
func NewMasker() *Masker {
	return &Masker{enabled: true}
}

// SetEnabled toggles masking.
func (m *Masker) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// Enabled reports whether masking is active.
func (m *Masker) Enabled() bool {
	return m != nil && m.enabled
}

// MaskHeader returns the value to log for a header. Sensitive header values
// are replaced entirely.
func (m *Masker) MaskHeader(name, value string) string {
	if !m.Enabled() {
		return value
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, s := range sensitiveHeaderNames {
		if lower == s {
			return maskReplacement
		}
	}
	return value
}

// MaskString scrubs embedded credentials from free-form text.
func (m *Masker) MaskString(s string) string {
	if !m.Enabled() {
		return s
	}
	for _, re := range credentialPatterns {
		s = re.ReplaceAllString(s, maskReplacement)
	}
	return s
}
