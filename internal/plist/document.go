package plist

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Document is one service descriptor. A nil field is absent from the file;
// an empty value is present but empty.
type Document struct {
	Label            *string  `json:"Label,omitempty"`
	Program          *string  `json:"Program,omitempty"`
	ProgramArguments []string `json:"ProgramArguments,omitempty"`

	StartInterval    *int `json:"StartInterval,omitempty"`
	ThrottleInterval *int `json:"ThrottleInterval,omitempty"`

	RunAtLoad           *bool `json:"RunAtLoad,omitempty"`
	KeepAlive           *bool `json:"KeepAlive,omitempty"`
	AbandonProcessGroup *bool `json:"AbandonProcessGroup,omitempty"`
	EnablePressuredExit *bool `json:"EnablePressuredExit,omitempty"`
	EnableTransactions  *bool `json:"EnableTransactions,omitempty"`
	EventMonitor        *bool `json:"EventMonitor,omitempty"`

	StandardOutPath   *string `json:"StandardOutPath,omitempty"`
	StandardErrorPath *string `json:"StandardErrorPath,omitempty"`
	WorkingDirectory  *string `json:"WorkingDirectory,omitempty"`
	POSIXSpawnType    *string `json:"POSIXSpawnType,omitempty"`

	EnvironmentVariables        map[string]string `json:"EnvironmentVariables,omitempty"`
	AssociatedBundleIdentifiers []string          `json:"AssociatedBundleIdentifiers,omitempty"`
	LimitLoadToSessionType      *SessionType      `json:"LimitLoadToSessionType,omitempty"`
}

// String returns a pointer to s.
func String(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := &Document{
		Label:                       clonePtr(d.Label),
		Program:                     clonePtr(d.Program),
		ProgramArguments:            slices.Clone(d.ProgramArguments),
		StartInterval:               clonePtr(d.StartInterval),
		ThrottleInterval:            clonePtr(d.ThrottleInterval),
		RunAtLoad:                   clonePtr(d.RunAtLoad),
		KeepAlive:                   clonePtr(d.KeepAlive),
		AbandonProcessGroup:         clonePtr(d.AbandonProcessGroup),
		EnablePressuredExit:         clonePtr(d.EnablePressuredExit),
		EnableTransactions:          clonePtr(d.EnableTransactions),
		EventMonitor:                clonePtr(d.EventMonitor),
		StandardOutPath:             clonePtr(d.StandardOutPath),
		StandardErrorPath:           clonePtr(d.StandardErrorPath),
		WorkingDirectory:            clonePtr(d.WorkingDirectory),
		POSIXSpawnType:              clonePtr(d.POSIXSpawnType),
		EnvironmentVariables:        maps.Clone(d.EnvironmentVariables),
		AssociatedBundleIdentifiers: slices.Clone(d.AssociatedBundleIdentifiers),
	}
	if d.LimitLoadToSessionType != nil {
		st := d.LimitLoadToSessionType.clone()
		c.LimitLoadToSessionType = &st
	}
	return c
}

// Equal reports whether both documents hold the same attributes with the
// same values. Map membership is compared regardless of order.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	return ptrEqual(d.Label, o.Label) &&
		ptrEqual(d.Program, o.Program) &&
		listEqual(d.ProgramArguments, o.ProgramArguments) &&
		ptrEqual(d.StartInterval, o.StartInterval) &&
		ptrEqual(d.ThrottleInterval, o.ThrottleInterval) &&
		ptrEqual(d.RunAtLoad, o.RunAtLoad) &&
		ptrEqual(d.KeepAlive, o.KeepAlive) &&
		ptrEqual(d.AbandonProcessGroup, o.AbandonProcessGroup) &&
		ptrEqual(d.EnablePressuredExit, o.EnablePressuredExit) &&
		ptrEqual(d.EnableTransactions, o.EnableTransactions) &&
		ptrEqual(d.EventMonitor, o.EventMonitor) &&
		ptrEqual(d.StandardOutPath, o.StandardOutPath) &&
		ptrEqual(d.StandardErrorPath, o.StandardErrorPath) &&
		ptrEqual(d.WorkingDirectory, o.WorkingDirectory) &&
		ptrEqual(d.POSIXSpawnType, o.POSIXSpawnType) &&
		mapEqual(d.EnvironmentVariables, o.EnvironmentVariables) &&
		listEqual(d.AssociatedBundleIdentifiers, o.AssociatedBundleIdentifiers) &&
		sessionEqual(d.LimitLoadToSessionType, o.LimitLoadToSessionType)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// listEqual treats nil and non-nil as different: an absent list is not an
// empty one.
func listEqual(a, b []string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return slices.Equal(a, b)
}

func mapEqual(a, b map[string]string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return maps.Equal(a, b)
}

func sessionEqual(a, b *SessionType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// DisplayLabel is the name shown for a descriptor: its Label, or the
// filename without the .plist suffix when the Label is missing or empty.
func (d *Document) DisplayLabel(filename string) string {
	if d != nil && d.Label != nil && *d.Label != "" {
		return *d.Label
	}
	return strings.TrimSuffix(filepath.Base(filename), ".plist")
}
