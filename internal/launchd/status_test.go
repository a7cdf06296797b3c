package launchd

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestProberStatus(t *testing.T) {
	tests := []struct {
		name    string
		out     Output
		err     error
		alive   bool
		want    Status
		wantPID int
	}{
		{"running", Output{Stdout: "com.x = {\n\tstate = running\n\tpid = 4242\n}"}, nil, true, StatusRunning, 4242},
		{"running with dead pid", Output{Stdout: "state = running\n\tpid = 4242\n"}, nil, false, StatusStopped, 0},
		{"running without pid", Output{Stdout: "state = running"}, nil, false, StatusRunning, 0},
		{"stopped", Output{Stdout: "state = stopped"}, nil, true, StatusStopped, 0},
		{"no such service on stdout", Output{Stdout: "No such service"}, nil, true, StatusStopped, 0},
		{"unknown service on stderr", Output{Stderr: "Bad request.\nCould not find service \"x\" in domain"}, exitFailure(), true, StatusStopped, 0},
		{"unexpected output", Output{Stdout: "state = spawn scheduled"}, nil, true, StatusError, 0},
		{"launchctl missing", Output{}, errors.New("exec: not found"), true, StatusUnknown, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newFakeRunner().on("launchctl print gui/501/com.x", tt.out, tt.err)
			p := NewProber(ProberOptions{
				Runner:   runner,
				UID:      501,
				PidAlive: func(int32) (bool, error) { return tt.alive, nil },
			})
			got := p.Status(context.Background(), "com.x")
			if got.Status != tt.want || got.PID != tt.wantPID {
				t.Errorf("Status() = %+v, want {%v %d}", got, tt.want, tt.wantPID)
			}
		})
	}
}

func TestProberCachesUntilInvalidated(t *testing.T) {
	runner := newFakeRunner().on("launchctl print gui/501/com.x", Output{Stdout: "state = stopped"}, nil)
	p := NewProber(ProberOptions{Runner: runner, UID: 501, TTL: time.Hour})
	ctx := context.Background()

	p.Status(ctx, "com.x")
	p.Status(ctx, "com.x")
	if n := runner.count("launchctl print gui/501/com.x"); n != 1 {
		t.Errorf("launchctl ran %d times, want 1", n)
	}

	p.Invalidate("com.x")
	p.Status(ctx, "com.x")
	if n := runner.count("launchctl print gui/501/com.x"); n != 2 {
		t.Errorf("after Invalidate launchctl ran %d times, want 2", n)
	}
}

func TestProberEnabled(t *testing.T) {
	listing := `disabled services = {
		"com.off" => disabled
		"com.legacy": false
		"com.on" => enabled
	}`
	runner := newFakeRunner().on("launchctl print-disabled gui/501", Output{Stdout: listing}, nil)
	p := NewProber(ProberOptions{Runner: runner, UID: 501})
	ctx := context.Background()

	for label, want := range map[string]bool{
		"com.off":    false,
		"com.legacy": false,
		"com.on":     true,
		"com.absent": true,
	} {
		if got := p.Enabled(ctx, label); got != want {
			t.Errorf("Enabled(%s) = %v, want %v", label, got, want)
		}
	}

	broken := NewProber(ProberOptions{Runner: newFakeRunner(), UID: 501})
	if broken.Enabled(ctx, "com.on") {
		t.Error("Enabled should be false when launchctl cannot run")
	}
}
