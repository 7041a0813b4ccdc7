package directory

import (
	"slices"
	"strings"

	"github.com/facette/natsort"
	"github.com/kapu/senate-directory-go/internal/domain"
	"github.com/kapu/senate-directory-go/internal/util"
)

// Facet is one of the categorical filter dimensions.
type Facet string

const (
	FacetParty Facet = "party"
	FacetState Facet = "state"
	FacetRank  Facet = "rank"
)

func (f Facet) valueOf(s domain.Senator) (string, bool) {
	switch f {
	case FacetParty:
		return s.Party, true
	case FacetState:
		return derefOK(s.State)
	case FacetRank:
		return derefOK(s.RankLabel)
	}
	return "", false
}

func derefOK(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

// SortByParty returns a copy ordered by party name. Records of the same party
// keep their relative order.
func SortByParty(records []domain.Senator) []domain.Senator {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b domain.Senator) int {
		return strings.Compare(a.Party, b.Party)
	})
	return sorted
}

// FilterBy keeps the records whose facet equals value, in order. ShowAll
// keeps everything. The result never aliases records.
func FilterBy(records []domain.Senator, facet Facet, value string) []domain.Senator {
	if value == domain.ShowAll {
		return slices.Clone(records)
	}
	out := make([]domain.Senator, 0, len(records))
	for _, s := range records {
		if v, ok := facet.valueOf(s); ok && v == value {
			out = append(out, s)
		}
	}
	return out
}

// ApplyFacets narrows records by party, then state, then rank. With no party
// filter the default party ordering is applied first.
func ApplyFacets(records []domain.Senator, state domain.FilterState) []domain.Senator {
	state = state.Normalized()

	var current []domain.Senator
	if state.Party == domain.ShowAll {
		current = SortByParty(records)
	} else {
		current = FilterBy(records, FacetParty, state.Party)
	}
	current = FilterBy(current, FacetState, state.State)
	return FilterBy(current, FacetRank, state.Rank)
}

// DisplayLine is the primary summary line of a record, the text the search
// box matches against.
func DisplayLine(s domain.Senator) string {
	parts := make([]string, 0, 7)
	for _, p := range []*string{s.RankLabel, s.IDLabel, s.FirstName, s.LastName} {
		if p != nil {
			parts = append(parts, *p)
		}
	}
	if s.GenderCode != nil {
		parts = append(parts, "("+*s.GenderCode+")")
	}
	parts = append(parts, "Party: "+s.Party)

	line := strings.Join(parts, " ")
	if s.State != nil {
		line += ", State: " + *s.State
	}
	return line
}

// MatchSearch reports whether query occurs in the record's display line,
// ignoring case. The empty query matches every record.
func MatchSearch(s domain.Senator, query string) bool {
	return util.ContainsFold(DisplayLine(s), query)
}

// Search returns the matching records in order.
func Search(records []domain.Senator, query string) []domain.Senator {
	out := make([]domain.Senator, 0, len(records))
	for _, s := range records {
		if MatchSearch(s, query) {
			out = append(out, s)
		}
	}
	return out
}

// BuildFacetOptions lists the distinct present values of each facet in
// natural order.
func BuildFacetOptions(records []domain.Senator) domain.FacetOptions {
	return domain.FacetOptions{
		Parties: distinct(records, FacetParty),
		States:  distinct(records, FacetState),
		Ranks:   distinct(records, FacetRank),
	}
}

func distinct(records []domain.Senator, facet Facet) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, s := range records {
		v, ok := facet.valueOf(s)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	natsort.Sort(values)
	return values
}
