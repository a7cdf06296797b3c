package launchd

// Status is the run state launchctl reports for a label.
type Status int

const (
	StatusUnknown Status = iota
	StatusRunning
	StatusStopped
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusStopped:
		return "stopped"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Icon is the one-cell marker drawn in the sidebar.
func (s Status) Icon() string {
	switch s {
	case StatusRunning:
		return "●"
	case StatusStopped:
		return "○"
	case StatusError:
		return "✗"
	default:
		return "?"
	}
}

// Agent is one descriptor file found in a location.
type Agent struct {
	Filename string
	Path     string
	Label    string
	Location Location
	Status   Status
	PID      int
	Enabled  bool
}
