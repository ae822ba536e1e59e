// Package postprocess applies the optional per-statement output stages:
// an external jq filter, an external shell filter, and tabulation.
package postprocess

import (
	"context"
	"fmt"
	"strings"

	execute "github.com/alexellis/go-execute/v2"
	"github.com/esrun/esrun/internal/common"
)

// Specs holds the optional stage specifications for one run. An empty spec
// disables its stage.
type Specs struct {
	// JQ is an optional filter: zero or more leading dash-flags followed by
	// the filter expression, e.g. "-c .hits.hits".
	JQ string
	// Shell is an optional command the text is piped through verbatim.
	Shell string
	// Tablify is an optional record path (gjson syntax) rendered as a table.
	// It is the terminal stage.
	Tablify string
}

// Chain runs the post-processing stages in fixed order. External tools are
// spawned synchronously, one at a time; a non-zero exit is not an error —
// the tool's output, stderr included, becomes the new text so failures stay
// visible to the user.
type Chain struct {
	JQPath    string
	ShellPath string
	Logger    *common.Logger
}

// NewChain builds a chain using the given tool locations; empty paths fall
// back to PATH lookup of "jq" and "sh".
func NewChain(jqPath, shellPath string) *Chain {
	if strings.TrimSpace(jqPath) == "" {
		jqPath = "jq"
	}
	if strings.TrimSpace(shellPath) == "" {
		shellPath = "sh"
	}
	return &Chain{JQPath: jqPath, ShellPath: shellPath}
}

// Apply runs the enabled stages over text and returns the final display text.
// Only tool spawn failures are errors; everything a tool prints is data.
func (c *Chain) Apply(ctx context.Context, text string, s Specs) (string, error) {
	if spec := strings.TrimSpace(s.JQ); spec != "" {
		flags, expr := SplitFlags(spec)
		args := append([]string{"-r"}, flags...)
		args = append(args, expr)
		out, err := c.pipe(ctx, text, c.JQPath, args)
		if err != nil {
			return "", fmt.Errorf("jq filter: %w", err)
		}
		text = out
	}

	if cmd := strings.TrimSpace(s.Shell); cmd != "" {
		out, err := c.pipe(ctx, text, c.ShellPath, []string{"-c", cmd})
		if err != nil {
			return "", fmt.Errorf("shell filter: %w", err)
		}
		text = out
	}

	if path := strings.TrimSpace(s.Tablify); path != "" {
		text = Tablify(text, path)
	}
	return text, nil
}

// pipe runs command with args, feeding text on stdin, and returns the
// combined stdout and stderr with a single trailing newline trimmed.
func (c *Chain) pipe(ctx context.Context, text, command string, args []string) (string, error) {
	c.logger().Debug("piping through external tool", "command", command, "args", args)

	task := execute.ExecTask{
		Command: command,
		Args:    args,
		Stdin:   strings.NewReader(text),
	}
	res, err := task.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("exec %s: %w", command, err)
	}

	out := res.Stdout
	if res.Stderr != "" {
		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		out += res.Stderr
	}
	if res.ExitCode != 0 {
		c.logger().Warn("external tool exited non-zero", "command", command, "exit_code", res.ExitCode)
	}
	return strings.TrimSuffix(out, "\n"), nil
}

func (c *Chain) logger() *common.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return common.GetLogger().WithComponent("postprocess")
}

// SplitFlags separates the leading dash-flags of a filter spec from the
// filter expression. Flags with embedded spaces are not supported.
func SplitFlags(spec string) ([]string, string) {
	var flags []string
	rest := strings.TrimSpace(spec)
	for rest != "" && rest[0] == '-' {
		cut := strings.IndexAny(rest, " \t")
		if cut < 0 {
			return append(flags, rest), ""
		}
		flags = append(flags, rest[:cut])
		rest = strings.TrimLeft(rest[cut:], " \t")
	}
	return flags, rest
}
