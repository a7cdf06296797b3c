package tui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/agentdeck/internal/launchd"
	"github.com/billie-coop/agentdeck/internal/tui/events"
)

// listenForEvents waits for the next broker event. It yields nothing once
// the subscription is closed.
func (m *Model) listenForEvents() tea.Cmd {
	if m.eventSub == nil {
		return nil
	}
	sub := m.eventSub
	return func() tea.Msg {
		event, ok := <-sub
		if !ok {
			return nil
		}
		return event
	}
}

// handleEvent processes events from the event broker
func (m *Model) handleEvent(event events.Event) tea.Cmd {
	cmds := []tea.Cmd{m.listenForEvents()}

	switch event.Type {
	case events.FilesChangedEvent:
		if p, ok := event.Payload.(events.FilesChangedPayload); ok {
			cmds = append(cmds, m.filesChanged(p.Paths))
		}

	case events.WatchErrorEvent:
		if p, ok := event.Payload.(events.WatchErrorPayload); ok && p.Err != nil {
			m.log.Warnw("watcher error", "error", p.Err)
			cmds = append(cmds, m.status.Warning("⚠ Watcher: "+p.Err.Error()))
		}

	case events.StatusMessageEvent:
		if p, ok := event.Payload.(events.StatusMessagePayload); ok {
			switch p.Type {
			case "error":
				cmds = append(cmds, m.status.Error(p.Message))
			case "warning":
				cmds = append(cmds, m.status.Warning(p.Message))
			case "success":
				cmds = append(cmds, m.status.Success(p.Message))
			default:
				cmds = append(cmds, m.status.Info(p.Message))
			}
		}
	}

	return tea.Batch(cmds...)
}

// filesChanged rescans the locations holding paths. The open document is
// reloaded only when it has no edit in progress and no unsaved changes.
func (m *Model) filesChanged(paths []string) tea.Cmd {
	affected := make(map[launchd.Location]bool)
	touched := false
	for _, p := range paths {
		if loc, ok := m.svc.Dirs.Locate(p); ok {
			affected[loc] = true
		}
		if m.doc != nil && p == m.agent.Path {
			touched = true
		}
	}

	var cmds []tea.Cmd
	for _, loc := range launchd.Locations {
		if affected[loc] {
			cmds = append(cmds, m.rescan(loc))
		}
	}

	if touched {
		m.log.Debugw("open document changed on disk", "path", m.agent.Path,
			"editing", m.session.Editing(), "dirty", m.dirty)
		switch {
		case m.session.Editing():
			cmds = append(cmds, m.status.Warning("⚠ "+m.agent.Filename+" changed on disk; finish editing, then reopen it"))
		case m.dirty:
			cmds = append(cmds, m.status.Warning("⚠ "+m.agent.Filename+" changed on disk; unsaved edits kept"))
		default:
			cmds = append(cmds, loadCmd(m.agent, true))
		}
	}

	return tea.Batch(cmds...)
}
