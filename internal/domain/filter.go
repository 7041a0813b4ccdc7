package domain

import "strings"

// ShowAll is the facet value that passes every record.
const ShowAll = "default"

// FilterState is the complete set of user choices that shape the list.
type FilterState struct {
	Party  string `json:"party"`
	State  string `json:"state"`
	Rank   string `json:"rank"`
	Search string `json:"search"`
}

// DefaultFilterState shows everything.
func DefaultFilterState() FilterState {
	return FilterState{Party: ShowAll, State: ShowAll, Rank: ShowAll}
}

// Normalized maps empty facet values to ShowAll.
func (f FilterState) Normalized() FilterState {
	norm := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return ShowAll
		}
		return v
	}
	return FilterState{
		Party:  norm(f.Party),
		State:  norm(f.State),
		Rank:   norm(f.Rank),
		Search: f.Search,
	}
}

// FacetOptions are the selectable values of each facet, without ShowAll.
type FacetOptions struct {
	Parties []string `json:"parties"`
	States  []string `json:"states"`
	Ranks   []string `json:"ranks"`
}
