package runner

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/fs"
)

// fakeCompiler writes a shell script at the -o path that prints a
// labeled line.
const fakeCompiler = `#!/bin/sh
out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "-o" ]; then out="$2"; shift; fi
  shift
done
printf '#!/bin/sh\necho "Tiempo secuencial: 0.500000s"\necho "diag" >&2\n' > "$out"
chmod +x "$out"
`

const brokenCompiler = `#!/bin/sh
echo "pi.cpp:3:1: error: expected ';'" >&2
exit 1
`

const crashingProgram = `#!/bin/sh
echo "partial"
echo "segfault" >&2
exit 3
`

const slowProgram = `#!/bin/sh
exec sleep 5
`

func newTestRunner(t *testing.T, ops ...fs.PathOp) (*Runner, *fs.Dir) {
	t.Helper()
	dir := fs.NewDir(t, "pibench-runner", ops...)
	t.Cleanup(dir.Remove)
	r := New(dir.Path())
	r.Flags = []string{"-O2"}
	return r, dir
}

func TestBuildAndRun(t *testing.T) {
	r, dir := newTestRunner(t, fs.WithFile("cc", fakeCompiler, fs.WithMode(0o755)))
	r.Compiler = dir.Join("cc")

	require.NoError(t, r.Build(context.Background(), "pi.cpp", "pi"))
	_, err := os.Stat(dir.Join("pi"))
	require.NoError(t, err)

	out, err := r.Run(context.Background(), "pi")
	require.NoError(t, err)
	assert.Equal(t, "Tiempo secuencial: 0.500000s\n", out.Stdout)
	assert.Equal(t, "diag\n", out.Stderr)
	assert.Greater(t, out.Elapsed, time.Duration(0))
}

func TestBuildFailure(t *testing.T) {
	r, dir := newTestRunner(t, fs.WithFile("cc", brokenCompiler, fs.WithMode(0o755)))
	r.Compiler = dir.Join("cc")

	err := r.Build(context.Background(), "pi.cpp", "pi")
	require.Error(t, err)
	assert.True(t, IsBuildFailure(err))

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.ExitCode)
	assert.Contains(t, se.Error(), "expected ';'")
	assert.Contains(t, se.Command, "pi.cpp -o pi")

	_, statErr := os.Stat(dir.Join("pi"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestBuildMissingCompiler(t *testing.T) {
	r, _ := newTestRunner(t)
	r.Compiler = "definitely-not-a-compiler-pibench"
	err := r.Build(context.Background(), "pi.cpp", "pi")
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestRunFailure(t *testing.T) {
	r, _ := newTestRunner(t, fs.WithFile("crash", crashingProgram, fs.WithMode(0o755)))

	out, err := r.Run(context.Background(), "crash")
	assert.Nil(t, out)
	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageRun, se.Stage)
	assert.Equal(t, 3, se.ExitCode)
	assert.Equal(t, "partial\n", se.Output.Stdout)
	assert.Contains(t, se.Error(), "segfault")
	assert.False(t, IsBuildFailure(err))
}

func TestRunMissingBinary(t *testing.T) {
	r, _ := newTestRunner(t)
	_, err := r.Run(context.Background(), "pi")
	assert.ErrorIs(t, err, ErrBinaryNotFound)
}

func TestRunTimeout(t *testing.T) {
	r, _ := newTestRunner(t, fs.WithFile("slow", slowProgram, fs.WithMode(0o755)))
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := r.Run(ctx, "slow")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
