// Package less compiles LESS stylesheets by running the lessc command.
package less

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
	"go.trai.ch/bundler/internal/metrics"
	"go.trai.ch/zerr"
	"golang.org/x/sync/semaphore"
)

// DefaultBinary is the compiler executable looked up on PATH.
const DefaultBinary = "lessc"

var _ ports.StyleCompiler = (*Compiler)(nil)

// Compiler implements ports.StyleCompiler with one lessc process per call.
// Source text is written to stdin and CSS is read from stdout.
type Compiler struct {
	binary string
	logger ports.Logger
	sem    *semaphore.Weighted
}

// NewCompiler creates a Compiler that runs at most limit processes at once.
func NewCompiler(binary string, limit int, logger ports.Logger) *Compiler {
	if binary == "" {
		binary = DefaultBinary
	}
	if limit < 1 {
		limit = 1
	}
	return &Compiler{
		binary: binary,
		logger: logger,
		sem:    semaphore.NewWeighted(int64(limit)),
	}
}

// Compile runs lessc over source. virtualPath names the file in diagnostics.
func (c *Compiler) Compile(
	ctx context.Context,
	source, virtualPath string,
	opts domain.CompileOptions,
) (domain.CompileResult, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return domain.CompileResult{}, err
	}
	defer c.sem.Release(1)

	env := resolveEnvironment(os.Environ())
	executable, err := lookPath(c.binary, env)
	if err != nil {
		return domain.CompileResult{}, zerr.With(
			zerr.Wrap(errors.Join(domain.ErrCompilerUnavailable, err), "style compiler not found"),
			"binary", c.binary,
		)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, executable, buildArgs(opts)...) //nolint:gosec // configured compiler
	cmd.Env = env
	cmd.Stdin = strings.NewReader(source)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		metrics.StyleCompilations.WithLabelValues("error").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.CompileResult{}, ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return domain.CompileResult{}, zerr.With(zerr.Wrap(zerr.New(msg), virtualPath), "exit_code", exitCode)
	}

	metrics.StyleCompilations.WithLabelValues("ok").Inc()
	c.logWarnings(virtualPath, stderr.Bytes())

	return domain.CompileResult{CSS: stdout.String()}, nil
}

// logWarnings reports each non-empty stderr line of a successful run.
func (c *Compiler) logWarnings(virtualPath string, stderr []byte) {
	if c.logger == nil {
		return
	}
	for line := range bytes.Lines(stderr) {
		msg := strings.TrimRight(string(line), "\r\n")
		if strings.TrimSpace(msg) == "" {
			continue
		}
		c.logger.Warn(virtualPath + ": " + msg)
	}
}

// buildArgs maps compile options onto lessc flags. The trailing "-" reads stdin.
func buildArgs(opts domain.CompileOptions) []string {
	args := []string{"--no-color"}

	switch opts.Math {
	case domain.MathStrict:
		args = append(args, "--math=strict")
	case domain.MathLoose:
		args = append(args, "--math=always")
	}

	if opts.StrictUnits {
		args = append(args, "--strict-units=on")
	} else {
		args = append(args, "--strict-units=off")
	}

	switch opts.DumpLineNumbers {
	case domain.LineNumbersComments, domain.LineNumbersMediaQuery:
		args = append(args, "--line-numbers="+string(opts.DumpLineNumbers))
	}

	if opts.JavascriptEnabled {
		args = append(args, "--js")
	}

	if len(opts.IncludePaths) > 0 {
		args = append(args, "--include-path="+strings.Join(opts.IncludePaths, string(os.PathListSeparator)))
	}

	for _, name := range domain.SortedVars(opts.GlobalVars) {
		args = append(args, "--global-var="+name+"="+opts.GlobalVars[name])
	}
	for _, name := range domain.SortedVars(opts.ModifyVars) {
		args = append(args, "--modify-var="+name+"="+opts.ModifyVars[name])
	}

	return append(args, "-")
}
