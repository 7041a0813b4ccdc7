package directory

import (
	"strings"

	"github.com/kapu/senate-directory-go/internal/domain"
	"github.com/kapu/senate-directory-go/internal/util"
)

// DetailEntry is one row of a unit's details block. Date and location rows
// have a Label and Value; link rows have only Link.
type DetailEntry struct {
	Label string       `json:"label,omitempty"`
	Value string       `json:"value,omitempty"`
	Link  *domain.Link `json:"link,omitempty"`
}

// DisplayUnit is one list entry ready for presentation. Empty strings mean
// the field was absent.
type DisplayUnit struct {
	Rank       string        `json:"rank,omitempty"`
	IDLabel    string        `json:"id_label,omitempty"`
	FirstName  string        `json:"first_name,omitempty"`
	LastName   string        `json:"last_name,omitempty"`
	Gender     string        `json:"gender,omitempty"`
	Party      string        `json:"party"`
	State      string        `json:"state,omitempty"`
	Line       string        `json:"line"`
	PartyClass string        `json:"party_class"`
	ImageID    string        `json:"image_id,omitempty"`
	Visible    bool          `json:"visible"`
	Details    []DetailEntry `json:"details"`
}

// Project converts records to display units in order, marking each visible
// when it matches query.
func Project(records []domain.Senator, query string) []DisplayUnit {
	units := make([]DisplayUnit, 0, len(records))
	for _, s := range records {
		units = append(units, projectOne(s, query))
	}
	return units
}

func projectOne(s domain.Senator, query string) DisplayUnit {
	entries := s.Extra.Entries()
	details := make([]DetailEntry, 0, len(entries))
	for _, e := range entries {
		details = append(details, DetailEntry{Label: e.Label, Value: e.Value, Link: e.Link})
	}

	return DisplayUnit{
		Rank:       domain.Value(s.RankLabel),
		IDLabel:    domain.Value(s.IDLabel),
		FirstName:  domain.Value(s.FirstName),
		LastName:   domain.Value(s.LastName),
		Gender:     domain.Value(s.GenderCode),
		Party:      s.Party,
		State:      domain.Value(s.State),
		Line:       DisplayLine(s),
		PartyClass: PartyClass(s.Party),
		ImageID:    domain.Value(s.ImageID),
		Visible:    MatchSearch(s, query),
		Details:    details,
	}
}

// PartyClass turns a party name into a CSS class token.
func PartyClass(party string) string {
	return strings.Join(strings.Fields(util.Normalize(party)), "-")
}

// ViewResult is the list for one filter state.
type ViewResult struct {
	SnapshotID string             `json:"snapshot_id"`
	State      domain.FilterState `json:"state"`
	Units      []DisplayUnit      `json:"units"`
	Total      int                `json:"total"`
	Matched    int                `json:"matched"`
	Visible    int                `json:"visible"`
}

// View derives the list for state from the snapshot's base records.
func View(snap *Snapshot, state domain.FilterState) ViewResult {
	state = state.Normalized()
	matched := ApplyFacets(snap.senators, state)
	units := Project(matched, state.Search)

	visible := 0
	for _, u := range units {
		if u.Visible {
			visible++
		}
	}

	return ViewResult{
		SnapshotID: snap.ID,
		State:      state,
		Units:      units,
		Total:      len(snap.senators),
		Matched:    len(matched),
		Visible:    visible,
	}
}
