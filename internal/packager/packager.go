// Package packager invokes the external packaging executable that turns a
// rendered descriptor directory into an installable artifact.
package packager

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"appxify/internal/converr"
)

var commandContext = exec.CommandContext

// Client defines packaging behaviour.
type Client interface {
	Pack(ctx context.Context, sourceDir, outputPath string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithExtraArgs appends arguments to every invocation.
func WithExtraArgs(args ...string) Option {
	return func(c *CLI) {
		c.extraArgs = append(c.extraArgs, args...)
	}
}

// CLI wraps the makeappx-style command-line packager.
type CLI struct {
	binary    string
	extraArgs []string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "makeappx"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Pack runs the packaging tool over sourceDir and writes the artifact at
// outputPath. A non-zero exit surfaces as AppxCreationFailed carrying the
// tool's last output line.
func (c *CLI) Pack(ctx context.Context, sourceDir, outputPath string) error {
	if sourceDir == "" {
		return errors.New("source directory required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}

	args := []string{"pack", "/d", sourceDir, "/p", outputPath, "/o"}
	args = append(args, c.extraArgs...)

	var output bytes.Buffer
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		detail := lastLine(output.String())
		if detail == "" {
			detail = err.Error()
		}
		return converr.AppxCreationFailed(detail)
	}
	return nil
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

var _ Client = (*CLI)(nil)
