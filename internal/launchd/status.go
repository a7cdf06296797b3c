package launchd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/united-manufacturing-hub/expiremap/v2/pkg/expiremap"
	"go.uber.org/zap"
)

// fallbackUID is used when the current uid cannot be determined.
const fallbackUID = 501

var pidLine = regexp.MustCompile(`(?m)^\s*pid = (\d+)\s*$`)

// Probe is a cached status lookup.
type Probe struct {
	Status Status
	PID    int
}

// ProberOptions configures a Prober. Zero values pick defaults.
type ProberOptions struct {
	Launchctl string
	Runner    Runner
	UID       int
	TTL       time.Duration
	Logger    *zap.SugaredLogger

	// PidAlive overrides the process table lookup.
	PidAlive func(pid int32) (bool, error)
}

// Prober asks launchctl about labels in the gui domain of the current user.
type Prober struct {
	launchctl string
	runner    Runner
	uid       int
	pidAlive  func(int32) (bool, error)
	log       *zap.SugaredLogger

	status  *expiremap.ExpireMap[string, cached[Probe]]
	enabled *expiremap.ExpireMap[string, cached[bool]]
}

// cached wraps a probe result; Invalidate overwrites entries with a
// zero value whose ok is false.
type cached[T any] struct {
	value T
	ok    bool
}

func lookup[T any](m *expiremap.ExpireMap[string, cached[T]], key string) (T, bool) {
	if c, found := m.Load(key); found && c.ok {
		return c.value, true
	}
	var zero T
	return zero, false
}

// NewProber creates a prober.
func NewProber(opts ProberOptions) *Prober {
	if opts.Launchctl == "" {
		opts.Launchctl = "launchctl"
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	if opts.UID <= 0 {
		opts.UID = currentUID()
	}
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.PidAlive == nil {
		opts.PidAlive = process.PidExists
	}
	return &Prober{
		launchctl: opts.Launchctl,
		runner:    opts.Runner,
		uid:       opts.UID,
		pidAlive:  opts.PidAlive,
		log:       opts.Logger,
		status:    expiremap.NewEx[string, cached[Probe]](opts.TTL, opts.TTL),
		enabled:   expiremap.NewEx[string, cached[bool]](opts.TTL, opts.TTL),
	}
}

func currentUID() int {
	if uid := os.Getuid(); uid > 0 {
		return uid
	}
	return fallbackUID
}

func (p *Prober) domain() string { return fmt.Sprintf("gui/%d", p.uid) }

// Status reports whether label is running. Results are cached.
func (p *Prober) Status(ctx context.Context, label string) Probe {
	if label == "" {
		return Probe{Status: StatusUnknown}
	}
	if probe, ok := lookup(p.status, label); ok {
		return probe
	}

	out, err := p.runner.Run(ctx, p.launchctl, "print", p.domain()+"/"+label)
	probe := p.classify(out, err)
	p.log.Debugw("Probed agent status", "label", label, "status", probe.Status, "pid", probe.PID)
	p.status.Set(label, cached[Probe]{value: probe, ok: true})
	return probe
}

func (p *Prober) classify(out Output, err error) Probe {
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// launchctl never ran.
		return Probe{Status: StatusUnknown}
	}

	text := out.Stdout + out.Stderr
	switch {
	case strings.Contains(text, "No such service"),
		strings.Contains(text, "Could not find service"):
		return Probe{Status: StatusStopped}
	case strings.Contains(text, "state = running"):
		probe := Probe{Status: StatusRunning}
		if m := pidLine.FindStringSubmatch(text); m != nil {
			probe.PID, _ = strconv.Atoi(m[1])
		}
		if probe.PID > 0 {
			alive, perr := p.pidAlive(int32(probe.PID))
			if perr == nil && !alive {
				return Probe{Status: StatusStopped}
			}
		}
		return probe
	case strings.Contains(text, "state = stopped"),
		strings.Contains(text, "state = not running"):
		return Probe{Status: StatusStopped}
	default:
		return Probe{Status: StatusError}
	}
}

// Enabled reports whether label is absent from the disabled list of the
// gui domain. It returns false when launchctl cannot be run.
func (p *Prober) Enabled(ctx context.Context, label string) bool {
	if enabled, ok := lookup(p.enabled, label); ok {
		return enabled
	}

	out, err := p.runner.Run(ctx, p.launchctl, "print-disabled", p.domain())
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return false
	}
	enabled := !disabledIn(out.Stdout, label)
	p.enabled.Set(label, cached[bool]{value: enabled, ok: true})
	return enabled
}

// disabledIn looks for either of the markers launchctl has used over the
// years: `"label" => disabled` / `"label" => true` and `"label": false`.
func disabledIn(listing, label string) bool {
	quoted := strconv.Quote(label)
	for _, marker := range []string{
		quoted + ": false",
		quoted + " => disabled",
		quoted + " => true",
	} {
		if strings.Contains(listing, marker) {
			return true
		}
	}
	return false
}

// Invalidate drops cached results for label so the next probe runs
// launchctl again.
func (p *Prober) Invalidate(label string) {
	p.status.Set(label, cached[Probe]{})
	p.enabled.Set(label, cached[bool]{})
}
