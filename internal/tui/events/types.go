package events

// EventType identifies the type of event
type EventType string

const (
	// FilesChangedEvent carries descriptor files that changed on disk.
	FilesChangedEvent EventType = "files.changed"
	// WatchErrorEvent reports a failure of the directory watcher.
	WatchErrorEvent EventType = "watch.error"
	// StatusMessageEvent asks the status bar to show a message.
	StatusMessageEvent EventType = "ui.status"
)

// Event represents an event in the system
type Event struct {
	Type    EventType
	Payload any
}

type FilesChangedPayload struct {
	Paths []string
}

type WatchErrorPayload struct {
	Err error
}

type StatusMessagePayload struct {
	Message string
	Type    string // "info", "warning", "error", "success"
}
