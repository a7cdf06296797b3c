package plist

import (
	"encoding/json"
	"fmt"
	"slices"
)

// SessionType is the LimitLoadToSessionType value: either a single session
// name or a list of them. The zero value is an empty Single.
type SessionType struct {
	multiple bool
	values   []string
}

// SingleSession returns the Single case holding name.
func SingleSession(name string) SessionType {
	return SessionType{values: []string{name}}
}

// MultipleSessions returns the Multiple case holding names in order.
func MultipleSessions(names ...string) SessionType {
	return SessionType{multiple: true, values: slices.Clone(names)}
}

// IsMultiple reports whether s is the Multiple case.
func (s SessionType) IsMultiple() bool { return s.multiple }

// Single returns the session name of the Single case.
func (s SessionType) Single() (string, bool) {
	if s.multiple {
		return "", false
	}
	if len(s.values) == 0 {
		return "", true
	}
	return s.values[0], true
}

// Values returns the session names; one element for the Single case.
func (s SessionType) Values() []string {
	if !s.multiple && len(s.values) == 0 {
		return []string{""}
	}
	return slices.Clone(s.values)
}

// Equal compares case and contents.
func (s SessionType) Equal(o SessionType) bool {
	return s.multiple == o.multiple && slices.Equal(s.Values(), o.Values())
}

func (s SessionType) String() string {
	if s.multiple {
		return "Multiple(" + joinQuoted(s.values) + ")"
	}
	v, _ := s.Single()
	return "Single(" + joinQuoted([]string{v}) + ")"
}

func (s SessionType) clone() SessionType {
	return SessionType{multiple: s.multiple, values: slices.Clone(s.values)}
}

func joinQuoted(vs []string) string {
	out := ""
	for i, v := range vs {
		if i > 0 {
			out += ", "
		}
		out += `"` + v + `"`
	}
	return out
}

// MarshalJSON writes Single as a JSON string and Multiple as an array.
func (s SessionType) MarshalJSON() ([]byte, error) {
	if s.multiple {
		vs := s.values
		if vs == nil {
			vs = []string{}
		}
		return json.Marshal(vs)
	}
	v, _ := s.Single()
	return json.Marshal(v)
}

// UnmarshalJSON accepts either a string or an array of strings.
func (s *SessionType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = SingleSession(single)
		return nil
	}
	var multiple []string
	if err := json.Unmarshal(data, &multiple); err != nil {
		return fmt.Errorf("session type must be a string or a list of strings: %w", err)
	}
	*s = MultipleSessions(multiple...)
	return nil
}
