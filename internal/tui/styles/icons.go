package styles

const (
	CheckIcon   string = "✓"
	ErrorIcon   string = "✗"
	WarningIcon string = "⚠"
	InfoIcon    string = "ℹ"
	EditIcon    string = "✎"
	SearchIcon  string = "🔍"
	ListIcon    string = "📋"
	FormIcon    string = "⚙"
	EnabledIcon string = "◉"
	DirtyIcon   string = "●"
)
