// Package launchd finds launch agent descriptors on disk and drives
// launchctl for them: status probes, enable checks, reloads and saves.
//
// Nothing in here renders anything. The TUI calls into it through
// tea.Cmds so that launchctl never runs on the update loop.
package launchd
