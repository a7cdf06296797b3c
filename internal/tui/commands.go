package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/agentdeck/internal/launchd"
	"github.com/billie-coop/agentdeck/internal/plist"
)

func scanCmd(loc launchd.Location, dirs launchd.Dirs, prober *launchd.Prober) tea.Cmd {
	return func() tea.Msg {
		agents, err := launchd.Scan(context.Background(), loc, dirs, prober)
		return scannedMsg{loc: loc, agents: agents, err: err}
	}
}

func loadCmd(agent launchd.Agent, quiet bool) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(agent.Path)
		if err != nil {
			return loadedMsg{agent: agent, quiet: quiet, err: err}
		}
		return loadedMsg{agent: agent, doc: plist.Decode(string(data)), quiet: quiet}
	}
}

// saveCmd writes doc, which must not be shared with the model.
func saveCmd(saver *launchd.Saver, agent launchd.Agent, doc *plist.Document) tea.Cmd {
	return func() tea.Msg {
		result, err := saver.Save(context.Background(), agent.Path, doc)
		return savedMsg{agent: agent, doc: doc, result: result, err: err}
	}
}

func revertCmd(saver *launchd.Saver, agent launchd.Agent) tea.Cmd {
	return func() tea.Msg {
		doc, entry, err := saver.Previous(context.Background(), agent.Path)
		return revertedMsg{agent: agent, doc: doc, entry: entry, err: err}
	}
}

func copyCmd(copyFn func(string) error, filename, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{filename: filename, err: copyFn(text)}
	}
}
