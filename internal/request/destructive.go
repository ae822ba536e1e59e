package request

import (
	"fmt"
	"net/http"
	neturl "net/url"
	"strings"

	"github.com/charmbracelet/huh"
)

// IsDestructive reports whether the request would delete an entire index:
// a DELETE whose path targets an index root (no _api sub-resource) or the
// _all pseudo-index. DELETE on a document or other sub-resource does not
// count.
func IsDestructive(method, rawURL string) bool {
	if !strings.EqualFold(method, http.MethodDelete) {
		return false
	}
	return isIndexRoot(rawURL)
}

func isIndexRoot(rawURL string) bool {
	path := rawURL
	if u, err := neturl.Parse(rawURL); err == nil && u.Path != "" {
		path = u.Path
	}
	segments := make([]string, 0, 4)
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		// DELETE on the server root
		return true
	}
	for _, s := range segments {
		if s == "_all" || s == "*" {
			return true
		}
		if strings.HasPrefix(s, "_") {
			// an _api component means a narrower operation, e.g. /idx/_doc/1
			return false
		}
	}
	// bare index path such as /logs or /logs,metrics
	return len(segments) == 1
}

// ConfirmPrompt asks the user to approve a destructive request interactively.
func ConfirmPrompt(method, url string) (bool, error) {
	var confirm bool
	err := huh.Run(
		huh.NewConfirm().
			Title(fmt.Sprintf("%s %s removes an entire index.", method, url)).
			Description("Execute this destructive request?").
			Value(&confirm),
	)
	if err != nil {
		return false, err
	}
	return confirm, nil
}
