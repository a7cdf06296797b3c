package tui

import (
	"github.com/billie-coop/agentdeck/internal/history"
	"github.com/billie-coop/agentdeck/internal/launchd"
	"github.com/billie-coop/agentdeck/internal/plist"
)

// scannedMsg carries the agents found in one location.
type scannedMsg struct {
	loc    launchd.Location
	agents []launchd.Agent
	err    error
}

// loadedMsg carries a decoded descriptor. Quiet loads come from the
// watcher and leave focus and the status bar alone.
type loadedMsg struct {
	agent launchd.Agent
	doc   *plist.Document
	quiet bool
	err   error
}

// savedMsg reports a finished save. doc is the snapshot that was written.
type savedMsg struct {
	agent  launchd.Agent
	doc    *plist.Document
	result launchd.SaveResult
	err    error
}

// revertedMsg carries the contents recorded before the last save.
type revertedMsg struct {
	agent launchd.Agent
	doc   *plist.Document
	entry history.Entry
	err   error
}

type copiedMsg struct {
	filename string
	err      error
}
