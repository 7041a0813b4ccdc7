package domain

import "github.com/tidwall/gjson"

// Source paths inside one dataset entry.
const (
	PathName            = "person.name"
	PathFirstName       = "person.firstname"
	PathLastName        = "person.lastname"
	PathNickname        = "person.nickname"
	PathGenderLabel     = "person.gender_label"
	PathBirthday        = "person.birthday"
	PathTwitterID       = "person.twitterid"
	PathYouTubeID       = "person.youtubeid"
	PathLink            = "person.link"
	PathParty           = "party"
	PathState           = "state"
	PathRankLabel       = "senator_rank_label"
	PathLeadershipTitle = "leadership_title"
	PathStartDate       = "startdate"
	PathOffice          = "extra.office"
)

// RawRecord is one untrusted entry of the dataset's objects array. Any
// field may be missing, null or of an unexpected type.
type RawRecord struct {
	value gjson.Result
}

func NewRawRecord(value gjson.Result) RawRecord {
	return RawRecord{value: value}
}

// ParseRawRecord wraps a single JSON object, mostly useful in tests.
func ParseRawRecord(raw string) RawRecord {
	return RawRecord{value: gjson.Parse(raw)}
}

func (r RawRecord) IsObject() bool {
	return r.value.IsObject()
}

func (r RawRecord) Raw() string {
	return r.value.Raw
}

// Text returns the scalar at path, or nil when it is missing, null, empty
// or not a scalar.
func (r RawRecord) Text(path string) *string {
	res := r.value.Get(path)
	switch res.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		if s := res.String(); s != "" {
			return &s
		}
	}
	return nil
}

// Present reports whether path exists with a non-null value. Unlike Text an
// empty string counts as present.
func (r RawRecord) Present(path string) bool {
	res := r.value.Get(path)
	return res.Exists() && res.Type != gjson.Null
}

// Party returns the party string, or "" when absent.
func (r RawRecord) Party() string {
	return Value(r.Text(PathParty))
}

// DisplayFirstName is the nickname when one is given, otherwise the legal
// first name.
func (r RawRecord) DisplayFirstName() *string {
	if nick := r.Text(PathNickname); nick != nil {
		return nick
	}
	return r.Text(PathFirstName)
}

// Dataset is a parsed dataset document.
type Dataset struct {
	Records []RawRecord
}

// Value dereferences an optional string, yielding "" when absent.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Ptr returns a pointer to s; used when building optional fields.
func Ptr(s string) *string {
	return &s
}
