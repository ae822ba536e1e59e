// Package pipeline drives the request-script execution: variable
// substitution, statement iteration, per-statement execution and
// post-processing, aggregation, and sink routing.
package pipeline

import (
	"context"
	"fmt"
	neturl "net/url"
	"strings"
	"time"

	"github.com/esrun/esrun/internal/common"
	"github.com/esrun/esrun/internal/config"
	"github.com/esrun/esrun/internal/header"
	"github.com/esrun/esrun/internal/history"
	"github.com/esrun/esrun/internal/postprocess"
	"github.com/esrun/esrun/internal/request"
	"github.com/esrun/esrun/internal/script"
	"github.com/esrun/esrun/internal/sink"
)

// Params is the per-invocation parameter set supplied by the caller.
// Method and URL fall back to the configuration defaults when empty; every
// other option independently toggles a pipeline stage.
type Params struct {
	Method     string
	URL        string
	Headers    string // raw header argument, parsed by internal/header
	JQ         string
	Shell      string
	Tablify    string
	OutputFile string
	Vars       script.Vars
}

// Pipeline executes a script body statement by statement. Construction wires
// all collaborators from an immutable Config; nothing global is consulted at
// run time.
type Pipeline struct {
	cfg      config.Config
	executor *request.Executor
	chain    *postprocess.Chain
	sink     *sink.Sink
	store    *history.Store
	logger   *common.Logger
}

// New builds a pipeline from cfg. The store may be nil (history disabled).
func New(cfg config.Config, store *history.Store, logger *common.Logger) *Pipeline {
	if logger == nil {
		logger = common.GetLogger()
	}
	return &Pipeline{
		cfg:      cfg,
		executor: request.New(cfg.Httpc(), logger.WithComponent("executor")),
		chain:    postprocess.NewChain(cfg.Tools.JQ, cfg.Tools.Shell),
		sink:     &sink.Sink{Logger: logger.WithComponent("sink")},
		store:    store,
		logger:   logger.WithComponent("pipeline"),
	}
}

// SetConfirm overrides the destructive-request confirmation gate, e.g. for
// --yes mode or tests.
func (p *Pipeline) SetConfirm(f request.ConfirmFunc) {
	p.executor.Confirm = f
}

// Run executes every statement in body in source order and routes the
// aggregated result to the sink. Transport failures are terminal for the
// whole run; a declined confirmation or exhausted iterator is not.
func (p *Pipeline) Run(ctx context.Context, body string, params Params) (string, error) {
	// Config vars come first so per-invocation vars shadow them on lookup.
	vars := append(script.FromStringMap(p.cfg.Vars), params.Vars...)
	body = script.Substitute(body, vars)

	method := strings.TrimSpace(params.Method)
	if method == "" {
		method = p.cfg.Method
	}
	baseURL := strings.TrimSpace(params.URL)
	if baseURL == "" {
		baseURL = p.cfg.URL
	}
	baseURL = script.Substitute(baseURL, vars)

	headers := append(p.cfg.DefaultHeaders(), header.Parse(params.Headers)...)
	specs := postprocess.Specs{JQ: params.JQ, Shell: params.Shell, Tablify: params.Tablify}

	it := script.NewIterator(body)
	var outputs []string

	// The implicit first statement comes directly from the parameter set,
	// not from the iterator.
	out, err := p.runStatement(ctx, method, baseURL, it.Rest(), headers, specs)
	if err != nil {
		return "", err
	}
	if out != "" {
		outputs = append(outputs, out)
	}

	for {
		st, ok := it.Next()
		if !ok {
			break
		}
		target := resolveURL(baseURL, st.URL)
		out, err := p.runStatement(ctx, st.Method, target, st.Body, headers, specs)
		if err != nil {
			return "", err
		}
		if out != "" {
			outputs = append(outputs, out)
		}
	}

	return p.sink.Write(strings.Join(outputs, "\n"), params.OutputFile)
}

// runStatement executes one statement and applies the post-processing chain.
// Non-2xx responses bypass every stage so the error payload stays verbatim.
func (p *Pipeline) runStatement(ctx context.Context, method, url, body string, headers []header.Pair, specs postprocess.Specs) (string, error) {
	start := time.Now()
	resp, err := p.executor.Do(ctx, method, url, headers, body)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", method, url, err)
	}
	if resp == nil {
		// destructive request declined; later statements still run
		return "", nil
	}

	if err := p.store.Record(method, url, resp.StatusCode, resp.Body, time.Since(start)); err != nil {
		p.logger.Warn("failed to record run", "error", err)
	}

	out := resp.Output()
	if out == "" || !resp.OK() {
		return out, nil
	}
	return p.chain.Apply(ctx, out, specs)
}

// resolveURL joins an embedded statement target with the base URL: absolute
// targets win, path-only targets reuse the base scheme and host.
func resolveURL(base, ref string) string {
	r, err := neturl.Parse(ref)
	if err != nil {
		return ref
	}
	if r.IsAbs() {
		return ref
	}
	b, err := neturl.Parse(base)
	if err != nil || b.Host == "" {
		return ref
	}
	return b.ResolveReference(r).String()
}
