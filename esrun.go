// Package esrun executes request scripts against a document-search backend:
// an ordered sequence of HTTP statements embedded in one script body,
// executed synchronously, post-processed, aggregated, and routed to a sink.
package esrun

import (
	"context"

	"github.com/esrun/esrun/internal/config"
	"github.com/esrun/esrun/internal/history"
	"github.com/esrun/esrun/internal/pipeline"
	"github.com/esrun/esrun/internal/request"
	"github.com/esrun/esrun/internal/script"
	"github.com/esrun/esrun/internal/sink"
)

// Re-export commonly used types for public API

// Config is the process-wide configuration passed into a run.
type Config = config.Config

// Params is the per-invocation parameter set.
type Params = pipeline.Params

// Vars is the ordered variable mapping applied before statement splitting.
type Vars = script.Vars

// Var is a single named script variable.
type Var = script.Var

// ConfirmFunc decides whether a destructive request may proceed.
type ConfirmFunc = request.ConfirmFunc

// Store is the optional run history database.
type Store = history.Store

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config { return config.Default() }

// LoadConfig reads a YAML config file, applying defaults for absent keys.
func LoadConfig(path string) (Config, error) { return config.Load(path) }

// OpenStore opens (and initializes) the run history database at path.
func OpenStore(path string, saveResponseBody bool) (*Store, error) {
	return history.Open(path, saveResponseBody)
}

// Run executes the script body under params and returns the aggregated text
// (empty when params route the result into a file). The store may be nil.
func Run(ctx context.Context, cfg Config, store *Store, body string, params Params) (string, error) {
	p := pipeline.New(cfg, store, cfg.SetupLogger())
	return p.Run(ctx, body, params)
}

// RunWithConfirm is Run with an explicit destructive-request gate, e.g. an
// always-yes gate for non-interactive use.
func RunWithConfirm(ctx context.Context, cfg Config, store *Store, body string, params Params, confirm ConfirmFunc) (string, error) {
	p := pipeline.New(cfg, store, cfg.SetupLogger())
	if confirm != nil {
		p.SetConfirm(confirm)
	}
	return p.Run(ctx, body, params)
}

// Tangle materializes the (variable-substituted) script body into target.
// A .sh target becomes a runnable curl script, one command per statement.
func Tangle(cfg Config, body string, params Params, target string) error {
	vars := append(script.FromStringMap(cfg.Vars), params.Vars...)
	body = script.Substitute(body, vars)
	method := params.Method
	if method == "" {
		method = cfg.Method
	}
	url := params.URL
	if url == "" {
		url = cfg.URL
	}
	url = script.Substitute(url, vars)
	s := &sink.Sink{}
	return s.Tangle(body, method, url, target)
}
