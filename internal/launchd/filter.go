package launchd

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// agentSource lets fuzzy match against "filename label".
type agentSource []Agent

func (s agentSource) String(i int) string { return s[i].Filename + " " + s[i].Label }
func (s agentSource) Len() int            { return len(s) }

// Filter returns the agents matching query. Case-insensitive substring hits
// on filename or label come first in their original order, then fuzzy
// subsequence hits by score. An empty query returns agents unchanged.
func Filter(agents []Agent, query string) []Agent {
	query = strings.TrimSpace(query)
	if query == "" {
		return agents
	}
	q := strings.ToLower(query)

	out := make([]Agent, 0, len(agents))
	taken := make(map[int]bool)
	for i, a := range agents {
		if strings.Contains(strings.ToLower(a.Filename), q) || strings.Contains(strings.ToLower(a.Label), q) {
			out = append(out, a)
			taken[i] = true
		}
	}
	for _, m := range fuzzy.FindFrom(query, agentSource(agents)) {
		if !taken[m.Index] {
			out = append(out, agents[m.Index])
			taken[m.Index] = true
		}
	}
	return out
}
