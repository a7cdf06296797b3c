package launchd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/billie-coop/agentdeck/internal/plist"
)

// Discover lists the *.plist files in dir sorted by filename, with their
// labels read from the files. A missing directory yields no agents.
// Status fields are left for Probe.
func Discover(loc Location, dir string) ([]Agent, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var agents []Agent
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".plist") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		var doc *plist.Document
		if data, err := os.ReadFile(path); err == nil {
			doc = plist.Decode(string(data))
		}
		agents = append(agents, Agent{
			Filename: e.Name(),
			Path:     path,
			Label:    doc.DisplayLabel(e.Name()),
			Location: loc,
		})
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].Filename < agents[j].Filename })
	return agents, nil
}

// Probe fills in run state and enabled flags of agents in place.
func (p *Prober) Probe(ctx context.Context, agents []Agent) {
	for i := range agents {
		if ctx.Err() != nil {
			return
		}
		probe := p.Status(ctx, agents[i].Label)
		agents[i].Status = probe.Status
		agents[i].PID = probe.PID
		agents[i].Enabled = p.Enabled(ctx, agents[i].Label)
	}
}

// Scan discovers a location and probes what it finds.
func Scan(ctx context.Context, loc Location, dirs Dirs, prober *Prober) ([]Agent, error) {
	agents, err := Discover(loc, dirs[loc])
	if err != nil {
		return nil, err
	}
	if prober != nil {
		prober.Probe(ctx, agents)
	}
	return agents, nil
}
