package domain

// Link is a ready-to-use external link.
type Link struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

// Extra holds the optional detail fields of a senator. A nil field was not
// supplied by the source.
type Extra struct {
	Birthday *string `json:"birthday,omitempty"`
	Office   *string `json:"office,omitempty"`
	Started  *string `json:"started,omitempty"`
	YouTube  *Link   `json:"youtube,omitempty"`
	Twitter  *Link   `json:"twitter,omitempty"`
	Website  *Link   `json:"website,omitempty"`
}

// ExtraEntry is one present detail field. Labeled entries carry Value,
// link entries carry Link.
type ExtraEntry struct {
	Label string
	Value string
	Link  *Link
}

// Entries returns the present fields in display order: Birthday, Office,
// Started, then YouTube, Twitter, Website.
func (e Extra) Entries() []ExtraEntry {
	entries := make([]ExtraEntry, 0, 6)
	for _, f := range []struct {
		label string
		value *string
	}{
		{"Birthday", e.Birthday},
		{"Office", e.Office},
		{"Started", e.Started},
	} {
		if f.value != nil {
			entries = append(entries, ExtraEntry{Label: f.label, Value: *f.value})
		}
	}
	for _, l := range []*Link{e.YouTube, e.Twitter, e.Website} {
		if l != nil {
			entries = append(entries, ExtraEntry{Link: l})
		}
	}
	return entries
}

// Senator is the normalized form of one dataset entry. Party is always
// present; every pointer field may be nil.
type Senator struct {
	IDLabel         *string `json:"id_label,omitempty"`
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	GenderCode      *string `json:"gender_code,omitempty"`
	Party           string  `json:"party"`
	State           *string `json:"state,omitempty"`
	RankLabel       *string `json:"rank_label,omitempty"`
	ImageID         *string `json:"image_id,omitempty"`
	LeadershipTitle *string `json:"leadership_title,omitempty"`
	Extra           Extra   `json:"extra"`
}
