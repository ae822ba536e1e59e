// Package sink routes the aggregated pipeline result either back to the
// caller or into a named file.
package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/esrun/esrun/internal/common"
	"gopkg.in/yaml.v3"
)

// Sink writes the aggregated text. With no output file the text is returned
// to the caller unchanged.
type Sink struct {
	Logger *common.Logger
}

// Write routes text. An empty outputFile returns the text directly. Otherwise
// the file's entire contents are replaced: a .yaml/.yml target gets the text
// decoded as a JSON document stream and re-encoded as YAML; any other target
// gets the raw text verbatim. The file is synced before return.
func (s *Sink) Write(text, outputFile string) (string, error) {
	if strings.TrimSpace(outputFile) == "" {
		return text, nil
	}

	content := text
	if isStructuredTarget(outputFile) {
		converted, err := jsonStreamToYAML(text)
		if err != nil {
			return "", fmt.Errorf("convert to yaml: %w", err)
		}
		content = converted
	}

	if err := writeDurable(outputFile, content); err != nil {
		return "", err
	}
	s.logger().Info("wrote pipeline result", "file", outputFile, "bytes", len(content))
	return "", nil
}

func (s *Sink) logger() *common.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return common.GetLogger().WithComponent("sink")
}

func isStructuredTarget(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// jsonStreamToYAML decodes text as a stream of JSON documents and re-encodes
// it as a "---"-separated YAML document stream.
func jsonStreamToYAML(text string) (string, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	decoded := false
	for dec.More() {
		var doc interface{}
		if err := dec.Decode(&doc); err != nil {
			return "", fmt.Errorf("decode json document: %w", err)
		}
		if err := enc.Encode(doc); err != nil {
			return "", fmt.Errorf("encode yaml document: %w", err)
		}
		decoded = true
	}
	if err := enc.Close(); err != nil && decoded {
		return "", err
	}
	return b.String(), nil
}

func writeDurable(path, content string) error {
	clean := filepath.Clean(path)
	// #nosec G304 -- the output path is user-supplied by design
	f, err := os.Create(clean)
	if err != nil {
		return fmt.Errorf("create %s: %w", clean, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", clean, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync %s: %w", clean, err)
	}
	return f.Close()
}
