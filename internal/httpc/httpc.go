package httpc

import (
	"crypto/tls"
	"strings"

	"github.com/go-resty/resty/v2"
)

type Httpc struct {
	TlsConfig *tls.Config
}

// New returns a resty.Client configured according to the receiver's TLS settings.
// Defaults: MinVersion TLS1.3 when MinVersion is zero.
func (h *Httpc) New() *resty.Client {
	c := resty.New()
	// Search queries ride in GET request bodies; resty drops them otherwise.
	c.SetAllowGetMethodPayload(true)
	cfg := h.TlsConfig
	if cfg == nil {
		return c
	}
	if cfg.MinVersion == 0 {
		cfg.MinVersion = tls.VersionTLS13
	}
	c.SetTLSClientConfig(cfg)
	return c
}

// ParseTLSVersion maps a config string like "1.2", "tls1.2" or "TLS13" to the
// crypto/tls version constant. Unknown values return 0 (no bound).
func ParseTLSVersion(s string) uint16 {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "tls")
	v = strings.TrimSpace(v)
	switch v {
	case "1.0", "10":
		return tls.VersionTLS10
	case "1.1", "11":
		return tls.VersionTLS11
	case "1.2", "12":
		return tls.VersionTLS12
	case "1.3", "13":
		return tls.VersionTLS13
	default:
		return 0
	}
}

// FromOptions builds a *tls.Config from explicit client options.
// Returns nil when every option is at its zero value so callers can keep
// resty's default transport untouched.
func FromOptions(insecure bool, minVersion, maxVersion string) *tls.Config {
	minV := ParseTLSVersion(minVersion)
	maxV := ParseTLSVersion(maxVersion)
	if !insecure && minV == 0 && maxV == 0 {
		return nil
	}
	// #nosec G402 -- insecure mode is an explicit user opt-in for dev clusters
	return &tls.Config{
		InsecureSkipVerify: insecure,
		MinVersion:         minV,
		MaxVersion:         maxV,
	}
}
