package httpc

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHttpc_New_NoTLSConfig(t *testing.T) {
	h := &Httpc{}
	c := h.New()
	if c == nil {
		t.Fatalf("expected client")
	}
	tr, _ := c.GetClient().Transport.(*http.Transport)
	if tr != nil && tr.TLSClientConfig != nil {
		t.Fatalf("expected default transport without TLS config")
	}
}

func TestHttpc_New_AppliesTLSConfigAndDefaultMin(t *testing.T) {
	h := &Httpc{TlsConfig: &tls.Config{}}
	c := h.New()
	tr, _ := c.GetClient().Transport.(*http.Transport)
	if tr == nil || tr.TLSClientConfig == nil {
		t.Fatalf("expected TLS config on transport")
	}
	if tr.TLSClientConfig.MinVersion != tls.VersionTLS13 {
		t.Fatalf("expected default MinVersion TLS1.3, got %v", tr.TLSClientConfig.MinVersion)
	}
}

func TestHttpc_Insecure_AllowsSelfSigned(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	// default client should reject the self-signed certificate
	strict := &Httpc{}
	if _, err := strict.New().R().Get(srv.URL); err == nil {
		t.Fatalf("expected certificate error without insecure mode")
	}

	insecure := &Httpc{TlsConfig: FromOptions(true, "", "")}
	resp, err := insecure.New().R().Get(srv.URL)
	if err != nil {
		t.Fatalf("expected insecure mode to accept self-signed cert: %v", err)
	}
	if resp.StatusCode() != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode())
	}
}

func TestParseTLSVersion(t *testing.T) {
	cases := map[string]uint16{
		"":        0,
		"1.2":     tls.VersionTLS12,
		"tls1.3":  tls.VersionTLS13,
		"TLS12":   tls.VersionTLS12,
		"1.0":     tls.VersionTLS10,
		"1.1":     tls.VersionTLS11,
		"garbage": 0,
	}
	for in, want := range cases {
		if got := ParseTLSVersion(in); got != want {
			t.Fatalf("ParseTLSVersion(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestFromOptions(t *testing.T) {
	if cfg := FromOptions(false, "", ""); cfg != nil {
		t.Fatalf("all-zero options should yield nil config")
	}
	cfg := FromOptions(false, "1.2", "1.3")
	if cfg == nil || cfg.MinVersion != tls.VersionTLS12 || cfg.MaxVersion != tls.VersionTLS13 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !FromOptions(true, "", "").InsecureSkipVerify {
		t.Fatalf("expected InsecureSkipVerify for insecure mode")
	}
}

func FuzzParseTLSVersion(f *testing.F) {
	f.Add("")
	f.Add("1.2")
	f.Add("tls1.3")
	f.Add("TLS13")
	f.Add("weird-input!!")

	f.Fuzz(func(t *testing.T, s string) {
		v := ParseTLSVersion(s)
		if v != 0 && v != tls.VersionTLS10 && v != tls.VersionTLS11 && v != tls.VersionTLS12 && v != tls.VersionTLS13 {
			t.Fatalf("unexpected tls version: %v", v)
		}
	})
}
