package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/esrun/esrun/internal/common"
	"github.com/esrun/esrun/internal/header"
	"github.com/esrun/esrun/internal/httpc"
	"github.com/go-resty/resty/v2"
)

// Response is the transient result of one executed statement. It is owned by
// the executor for the duration of a single call and discarded after
// post-processing.
type Response struct {
	StatusCode int
	Body       string
	Warning    string
	Size       int
}

// OK reports whether the response carried a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Output renders the text handed to the post-processing chain: the body,
// prefixed by the backend warning when one was reported. Non-2xx bodies are
// returned verbatim so the caller sees the error payload unmodified.
func (r *Response) Output() string {
	if r.Body == "" {
		return ""
	}
	if r.OK() && r.Warning != "" {
		return "// Warning: " + r.Warning + "\n" + r.Body
	}
	return r.Body
}

// ConfirmFunc decides whether a destructive request may proceed.
type ConfirmFunc func(method, url string) (bool, error)

// Executor performs one synchronous HTTP call per statement, guarded by a
// destructive-action confirmation gate.
type Executor struct {
	Client  *httpc.Httpc
	Confirm ConfirmFunc
	Logger  *common.Logger
}

// New builds an executor with the interactive confirmation prompt.
func New(client *httpc.Httpc, logger *common.Logger) *Executor {
	return &Executor{Client: client, Confirm: ConfirmPrompt, Logger: logger}
}

// Do issues one blocking HTTP call. A declined confirmation returns
// (nil, nil): the statement yields no output and no error, and later
// statements still execute. Network failures are returned as errors and are
// terminal for the run.
func (e *Executor) Do(ctx context.Context, method, url string, headers []header.Pair, body string) (*Response, error) {
	logger := e.logger().WithRequest(method, url)

	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return nil, fmt.Errorf("empty HTTP method")
	}
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("empty request URL")
	}

	if IsDestructive(method, url) {
		confirm := e.Confirm
		if confirm == nil {
			confirm = ConfirmPrompt
		}
		ok, err := confirm(method, url)
		if err != nil {
			return nil, fmt.Errorf("confirmation prompt: %w", err)
		}
		if !ok {
			logger.Info("destructive request declined, skipping statement")
			return nil, nil
		}
	}

	if len(headers) > 0 {
		logger.Debug("sending request headers", "headers", maskedHeaderMap(logger.Masker(), headers))
	}
	if body != "" {
		logger.Debug("sending request body", "size", len(body), "body", logger.Masker().MaskString(body))
	}

	req := e.buildRequest(ctx, headers, body)
	resp, err := execByMethod(req, method, url)
	if err != nil {
		logger.Error("HTTP request failed", "error", err)
		return nil, err
	}

	raw := resp.Body()
	out := &Response{
		StatusCode: resp.StatusCode(),
		Body:       string(raw),
		Warning:    resp.Header().Get("Warning"),
		Size:       len(raw),
	}
	logger.Debug("received HTTP response", "status_code", out.StatusCode, "response_size", out.Size)

	// Pretty-print structured 2xx bodies; a malformed body is tolerated by
	// falling back to the raw text.
	if out.OK() && isJSON(out.Body) {
		out.Body = prettyJSON(out.Body)
	}
	return out, nil
}

func (e *Executor) logger() *common.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return common.GetLogger().WithComponent("executor")
}

func (e *Executor) buildRequest(ctx context.Context, headers []header.Pair, body string) *resty.Request {
	client := e.Client
	if client == nil {
		client = &httpc.Httpc{}
	}
	req := client.New().R().SetContext(ctx)
	for _, p := range headers {
		// Add, not Set: duplicate header names are permitted and all sent.
		req.Header.Add(p.Name, p.Value)
	}
	if strings.TrimSpace(body) != "" {
		if isJSON(body) && req.Header.Get("Content-Type") == "" {
			req.SetHeader("Content-Type", "application/json")
		}
		req.SetBody([]byte(body))
	}
	return req
}

// maskedHeaderMap renders headers for log output with sensitive values hidden.
func maskedHeaderMap(m *common.Masker, headers []header.Pair) map[string]string {
	masked := make([]header.Pair, len(headers))
	for i, p := range headers {
		masked[i] = header.Pair{Name: p.Name, Value: m.MaskHeader(p.Name, p.Value)}
	}
	return header.ToMap(masked)
}

func execByMethod(req *resty.Request, method, url string) (*resty.Response, error) {
	switch method {
	case http.MethodGet:
		return req.Get(url)
	case http.MethodPost:
		return req.Post(url)
	case http.MethodPut:
		return req.Put(url)
	case http.MethodPatch:
		return req.Patch(url)
	case http.MethodDelete:
		return req.Delete(url)
	case http.MethodHead:
		return req.Head(url)
	case http.MethodOptions:
		return req.Options(url)
	default:
		return nil, fmt.Errorf("unsupported method: %s", method)
	}
}

func isJSON(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return false
	}
	if (strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}")) || (strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]")) {
		var js json.RawMessage
		return json.Unmarshal([]byte(t), &js) == nil
	}
	return false
}

func prettyJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(s)), "", "  "); err != nil {
		return s
	}
	return buf.String()
}
