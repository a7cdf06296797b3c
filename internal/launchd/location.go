package launchd

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Location is one of the directories launch agents are read from.
type Location int

const (
	User Location = iota
	Global
	Apple
)

// Locations lists every location in tab order.
var Locations = []Location{User, Global, Apple}

func (l Location) String() string {
	switch l {
	case User:
		return "user"
	case Global:
		return "global"
	case Apple:
		return "apple"
	default:
		return fmt.Sprintf("location(%d)", int(l))
	}
}

// DisplayName is the tab title.
func (l Location) DisplayName() string {
	switch l {
	case User:
		return "👤 User"
	case Global:
		return "🌐 Global"
	case Apple:
		return "🍎 Apple"
	default:
		return l.String()
	}
}

// ReadOnly reports whether saves in this location are expected to fail
// without elevated privileges.
func (l Location) ReadOnly() bool { return l == Apple }

// ParseLocation accepts the lower-case names used in the config file.
func ParseLocation(s string) (Location, error) {
	for _, l := range Locations {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown location %q", s)
}

// Dirs maps each location to the directory scanned for it.
type Dirs map[Location]string

// DefaultDirs returns the standard macOS directories for home.
func DefaultDirs(home string) Dirs {
	return Dirs{
		User:   filepath.Join(home, "Library", "LaunchAgents"),
		Global: "/Library/LaunchAgents",
		Apple:  "/System/Library/LaunchAgents",
	}
}

// WithOverrides returns a copy of d with entries from overrides keyed by
// location name. Unknown names and empty paths are ignored.
func (d Dirs) WithOverrides(overrides map[string]string) Dirs {
	out := make(Dirs, len(d))
	for l, dir := range d {
		out[l] = dir
	}
	for name, dir := range overrides {
		l, err := ParseLocation(name)
		if err != nil || dir == "" {
			continue
		}
		out[l] = dir
	}
	return out
}

// Locate returns the location whose directory contains path.
func (d Dirs) Locate(path string) (Location, bool) {
	dir := filepath.Clean(filepath.Dir(path))
	for _, l := range Locations {
		if filepath.Clean(d[l]) == dir {
			return l, true
		}
	}
	return 0, false
}
