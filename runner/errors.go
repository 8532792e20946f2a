package runner

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrToolNotFound   = errors.New("compiler not found")
	ErrBinaryNotFound = errors.New("benchmark binary not found")
)

// Stage names reported in StageError.
const (
	StageBuild = "build"
	StageRun   = "run"
)

// StageError is returned when the compiler or the benchmark exits with
// a non-zero status. Output holds whatever was captured before the exit.
type StageError struct {
	Stage    string
	Command  string
	ExitCode int
	Output   Output
	Err      error
}

func (e *StageError) Error() string {
	msg := fmt.Sprintf("%s failed (%s): exit status %d", e.Stage, e.Command, e.ExitCode)
	if detail := strings.TrimSpace(e.Output.Stderr); detail != "" {
		msg += "\n" + detail
	}
	return msg
}

func (e *StageError) Unwrap() error { return e.Err }

// IsBuildFailure reports whether err came from a failed build step.
func IsBuildFailure(err error) bool {
	var se *StageError
	return errors.As(err, &se) && se.Stage == StageBuild
}
