package form

import (
	"github.com/billie-coop/agentdeck/internal/plist"
)

// Field is one editable slot of a Document. Fields are immutable; they read
// and write the Document they are handed.
type Field struct {
	ID    string
	Label string
	Kind  Kind
	Help  string

	seed   func(*plist.Document) string
	commit func(*plist.Document, string)
	isSet  func(*plist.Document) bool
	check  func(string) error
}

// Seed renders the field's current value as edit text.
func (f Field) Seed(doc *plist.Document) string {
	if doc == nil {
		return ""
	}
	return f.seed(doc)
}

// Commit parses buf and stores the result in doc.
func (f Field) Commit(doc *plist.Document, buf string) {
	if doc != nil {
		f.commit(doc, buf)
	}
}

// IsSet reports whether the attribute is present in doc.
func (f Field) IsSet(doc *plist.Document) bool {
	return doc != nil && f.isSet(doc)
}

// Check reports how buf would be coerced on commit. A nil result means the
// text is taken as written. Commit never rejects text; Check is advisory.
func (f Field) Check(buf string) error {
	if f.check == nil {
		return nil
	}
	return f.check(buf)
}

// bind builds a Field from a kind codec and a pointer to the attribute.
func bind[T any](id, label, help string, c codec[T], slot func(*plist.Document) *T, present func(T) bool) Field {
	return Field{
		ID:    id,
		Label: label,
		Kind:  c.kind,
		Help:  help,
		seed: func(d *plist.Document) string {
			return c.render(*slot(d))
		},
		commit: func(d *plist.Document, buf string) {
			*slot(d) = c.parse(buf)
		},
		isSet: func(d *plist.Document) bool {
			return present(*slot(d))
		},
		check: c.check,
	}
}

func notNil[T any](v *T) bool         { return v != nil }
func listSet(v []string) bool         { return v != nil }
func mapSet(v map[string]string) bool { return v != nil }

func stringField(id, label, help string, slot func(*plist.Document) **string) Field {
	return bind(id, label, help, stringCodec, slot, notNil[string])
}

func intField(id, label, help string, slot func(*plist.Document) **int) Field {
	return bind(id, label, help, intCodec, slot, notNil[int])
}

func boolField(id, label, help string, slot func(*plist.Document) **bool) Field {
	return bind(id, label, help, boolCodec, slot, notNil[bool])
}

func listField(id, label, help string, slot func(*plist.Document) *[]string) Field {
	return bind(id, label, help, listCodec, slot, listSet)
}

// Catalog is the ordered, cyclic list of fields shown in the form.
type Catalog struct {
	fields []Field
	index  map[string]int
}

// NewCatalog returns a catalog over fields in the given order.
func NewCatalog(fields ...Field) *Catalog {
	c := &Catalog{fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		c.index[f.ID] = i
	}
	return c
}

// Len returns the number of fields.
func (c *Catalog) Len() int { return len(c.fields) }

// At returns the field at position i, wrapping around in both directions.
func (c *Catalog) At(i int) Field {
	return c.fields[c.wrap(i)]
}

// Fields returns the fields in order.
func (c *Catalog) Fields() []Field {
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

// Lookup finds a field by ID.
func (c *Catalog) Lookup(id string) (Field, int, bool) {
	i, ok := c.index[id]
	if !ok {
		return Field{}, -1, false
	}
	return c.fields[i], i, true
}

func (c *Catalog) wrap(i int) int {
	n := len(c.fields)
	return ((i % n) + n) % n
}

// LaunchAgentCatalog is the form layout for launch agents: scalar settings
// first, then the list and map valued ones.
func LaunchAgentCatalog() *Catalog {
	return NewCatalog(
		stringField(plist.KeyLabel, "Label", "Unique identifier of the job",
			func(d *plist.Document) **string { return &d.Label }),
		stringField(plist.KeyProgram, "Program", "Path of the executable",
			func(d *plist.Document) **string { return &d.Program }),
		listField(plist.KeyProgramArguments, "Program Arguments", "One argument per line",
			func(d *plist.Document) *[]string { return &d.ProgramArguments }),
		intField(plist.KeyStartInterval, "Start Interval", "Run every N seconds",
			func(d *plist.Document) **int { return &d.StartInterval }),
		intField(plist.KeyThrottleInterval, "Throttle Interval", "Minimum seconds between spawns",
			func(d *plist.Document) **int { return &d.ThrottleInterval }),
		boolField(plist.KeyRunAtLoad, "Run At Load", "Start as soon as the job is loaded",
			func(d *plist.Document) **bool { return &d.RunAtLoad }),
		boolField(plist.KeyKeepAlive, "Keep Alive", "Restart the job whenever it exits",
			func(d *plist.Document) **bool { return &d.KeepAlive }),
		boolField(plist.KeyAbandonProcessGroup, "Abandon Process Group", "Leave child processes running when the job exits",
			func(d *plist.Document) **bool { return &d.AbandonProcessGroup }),
		stringField(plist.KeyStandardOutPath, "Standard Out Path", "File that receives stdout",
			func(d *plist.Document) **string { return &d.StandardOutPath }),
		stringField(plist.KeyStandardErrorPath, "Standard Error Path", "File that receives stderr",
			func(d *plist.Document) **string { return &d.StandardErrorPath }),
		stringField(plist.KeyWorkingDirectory, "Working Directory", "Directory to chdir into before running",
			func(d *plist.Document) **string { return &d.WorkingDirectory }),
		stringField(plist.KeyPOSIXSpawnType, "POSIX Spawn Type", "Interactive, Adaptive, Background, ...",
			func(d *plist.Document) **string { return &d.POSIXSpawnType }),
		boolField(plist.KeyEnablePressuredExit, "Enable Pressured Exit", "Allow termination under memory pressure",
			func(d *plist.Document) **bool { return &d.EnablePressuredExit }),
		boolField(plist.KeyEnableTransactions, "Enable Transactions", "Track open transactions for clean exit",
			func(d *plist.Document) **bool { return &d.EnableTransactions }),
		boolField(plist.KeyEventMonitor, "Event Monitor", "Job is an event monitor",
			func(d *plist.Document) **bool { return &d.EventMonitor }),
		bind(plist.KeyLimitLoadToSessionType, "Limit Load To Session Type", "One session type per line",
			sessionCodec,
			func(d *plist.Document) **plist.SessionType { return &d.LimitLoadToSessionType },
			notNil[plist.SessionType]),
		listField(plist.KeyAssociatedBundleIdentifiers, "Associated Bundle Identifiers", "One bundle identifier per line",
			func(d *plist.Document) *[]string { return &d.AssociatedBundleIdentifiers }),
		bind(plist.KeyEnvironmentVariables, "Environment Variables", "KEY=value, one per line",
			mapCodec,
			func(d *plist.Document) *map[string]string { return &d.EnvironmentVariables },
			mapSet),
	)
}
