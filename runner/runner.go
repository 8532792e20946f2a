// Package runner compiles the native benchmark and executes it,
// capturing what it prints.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultCompiler and DefaultFlags build a pthreads C++11 program.
var (
	DefaultCompiler = "g++"
	DefaultFlags    = []string{"-std=c++11", "-pthread", "-O2"}
)

// waitDelay bounds how long a killed process may hold its output pipes open.
const waitDelay = 2 * time.Second

// Output is what a child process printed.
type Output struct {
	Stdout  string
	Stderr  string
	Elapsed time.Duration
}

// Runner builds and runs a benchmark program inside Dir.
type Runner struct {
	Compiler string
	Flags    []string
	Dir      string
	Logger   *slog.Logger
}

func New(dir string) *Runner {
	return &Runner{
		Compiler: DefaultCompiler,
		Flags:    append([]string(nil), DefaultFlags...),
		Dir:      dir,
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Build compiles source into binary, overwriting any previous artifact.
func (r *Runner) Build(ctx context.Context, source, binary string) error {
	compiler := r.Compiler
	if compiler == "" {
		compiler = DefaultCompiler
	}
	if _, err := exec.LookPath(compiler); err != nil {
		return fmt.Errorf("%w: %s", ErrToolNotFound, compiler)
	}

	args := append(append([]string(nil), r.Flags...), source, "-o", binary)
	r.logger().Info("compiling", "compiler", compiler, "source", source, "binary", binary)
	out, err := r.exec(ctx, StageBuild, compiler, args...)
	if err != nil {
		return err
	}
	if fi, err := os.Stat(r.path(binary)); err == nil {
		r.logger().Debug("build finished", "elapsed", out.Elapsed, "size", humanize.Bytes(uint64(fi.Size())))
	}
	return nil
}

// Run executes the compiled binary with no arguments and returns its output.
func (r *Runner) Run(ctx context.Context, binary string) (*Output, error) {
	path := r.path(binary)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrBinaryNotFound, path)
	}

	r.logger().Info("running benchmark", "binary", binary)
	out, err := r.exec(ctx, StageRun, path)
	if err != nil {
		return nil, err
	}
	r.logger().Debug("benchmark finished", "elapsed", out.Elapsed, "stdout", humanize.Bytes(uint64(len(out.Stdout))))
	return out, nil
}

// path resolves name against Dir. The result is absolute so exec never
// falls back to a PATH lookup for a bare program name.
func (r *Runner) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	p := filepath.Join(r.dir(), name)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return "." + string(filepath.Separator) + p
}

func (r *Runner) dir() string {
	if r.Dir == "" {
		return "."
	}
	return r.Dir
}

func (r *Runner) exec(ctx context.Context, stage, name string, args ...string) (*Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.dir()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	out := &Output{Stdout: stdout.String(), Stderr: stderr.String(), Elapsed: time.Since(start)}
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%s interrupted: %w", stage, ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, &StageError{
			Stage:    stage,
			Command:  strings.Join(append([]string{filepath.Base(name)}, args...), " "),
			ExitCode: exitErr.ExitCode(),
			Output:   *out,
			Err:      err,
		}
	}
	return nil, fmt.Errorf("%s: %w", stage, err)
}
