package launchd

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// ErrNotLoaded is returned by Unload when launchctl does not know the job.
var ErrNotLoaded = errors.New("agent not loaded")

// ReloadError is a failed unload or load.
type ReloadError struct {
	Phase  string // "unload" or "load"
	Stderr string
	Err    error
}

func (e *ReloadError) Error() string {
	var exitErr *exec.ExitError
	if e.Err != nil && !errors.As(e.Err, &exitErr) {
		return fmt.Sprintf("Failed to run launchctl %s: %v", e.Phase, e.Err)
	}
	phase := e.Phase
	if phase != "" {
		phase = strings.ToUpper(phase[:1]) + phase[1:]
	}
	return fmt.Sprintf("%s failed: %s", phase, strings.TrimSpace(e.Stderr))
}

func (e *ReloadError) Unwrap() error { return e.Err }

// Reloader unloads and loads descriptor files with launchctl.
type Reloader struct {
	launchctl string
	runner    Runner
	log       *zap.SugaredLogger
}

func NewReloader(launchctl string, runner Runner, log *zap.SugaredLogger) *Reloader {
	if launchctl == "" {
		launchctl = "launchctl"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Reloader{launchctl: launchctl, runner: runner, log: log}
}

// Unload asks launchd to forget path.
func (r *Reloader) Unload(ctx context.Context, path string) error {
	out, err := r.runner.Run(ctx, r.launchctl, "unload", path)
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && notLoaded(out.Stderr) {
		return ErrNotLoaded
	}
	return &ReloadError{Phase: "unload", Stderr: out.Stderr, Err: err}
}

// Load hands path to launchd.
func (r *Reloader) Load(ctx context.Context, path string) error {
	out, err := r.runner.Run(ctx, r.launchctl, "load", path)
	if err != nil {
		return &ReloadError{Phase: "load", Stderr: out.Stderr, Err: err}
	}
	return nil
}

// Reload unloads then loads path. An agent that was not loaded is simply
// loaded.
func (r *Reloader) Reload(ctx context.Context, path string) error {
	if err := r.Unload(ctx, path); err != nil && !errors.Is(err, ErrNotLoaded) {
		r.log.Warnw("Unload failed", "path", path, "error", err)
		return err
	}
	if err := r.Load(ctx, path); err != nil {
		r.log.Warnw("Load failed", "path", path, "error", err)
		return err
	}
	r.log.Infow("Reloaded agent", "path", path)
	return nil
}

func notLoaded(stderr string) bool {
	return strings.Contains(stderr, "Could not find specified service") ||
		strings.Contains(stderr, "No such process")
}
