package launchd

import (
	"bytes"
	"context"
	"os/exec"
)

// Output is what a command wrote before it exited.
type Output struct {
	Stdout string
	Stderr string
}

// Runner runs an external command. It returns a non-nil error when the
// command could not start or exited non-zero; Output is filled either way.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return Output{Stdout: stdout.String(), Stderr: stderr.String()}, err
}
