package sink

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/esrun/esrun/internal/script"
)

// Tangle materializes a script body into a standalone file. A .sh target is
// rendered as a runnable shell script with one curl command per statement;
// any other target receives the raw body. Method and url provide the
// implicit first statement's request line.
func (s *Sink) Tangle(body, method, url, target string) error {
	content := body
	if strings.EqualFold(filepath.Ext(target), ".sh") {
		content = toShellScript(body, method, url)
	}
	if err := writeDurable(target, content); err != nil {
		return err
	}
	s.logger().Info("tangled script", "file", target)
	return nil
}

func toShellScript(body, method, url string) string {
	var b strings.Builder
	b.WriteString("#!/usr/bin/env bash\n\n")

	it := script.NewIterator(body)
	b.WriteString(curlCommand(method, url, it.Rest()))
	for {
		st, ok := it.Next()
		if !ok {
			break
		}
		b.WriteString(curlCommand(st.Method, st.URL, st.Body))
	}
	return b.String()
}

func curlCommand(method, url, body string) string {
	method = strings.ToUpper(strings.TrimSpace(method))
	if body == "" {
		return fmt.Sprintf("curl -X%s %s\n", method, shellQuote(url))
	}
	return fmt.Sprintf("curl -X%s %s -d %s\n", method, shellQuote(url), shellQuote(body))
}

// shellQuote single-quotes s, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
