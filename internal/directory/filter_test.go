package directory

import (
	"testing"

	"github.com/kapu/senate-directory-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByPartyIsStable(t *testing.T) {
	in := []domain.Senator{
		senator("Republican", "WY", "Senior", "R1"),
		senator("Democrat", "WI", "Junior", "D1"),
		senator("Republican", "KY", "Senior", "R2"),
		senator("Democrat", "PA", "Senior", "D2"),
		senator("Independent", "VT", "Junior", "I1"),
		senator("Democrat", "NY", "Senior", "D3"),
	}

	sorted := SortByParty(in)

	assert.Equal(t, []string{"D1", "D2", "D3", "I1", "R1", "R2"}, lastNames(sorted))
	assert.Equal(t, "R1", domain.Value(in[0].LastName), "input is untouched")
}

func TestApplyFacetsAndCombination(t *testing.T) {
	snap := fixtureSnapshot(t)
	base := snap.Senators()

	tests := []struct {
		name  string
		state domain.FilterState
		want  []string
	}{
		{"show all", domain.DefaultFilterState(), []string{"Baldwin", "Casey", "Schumer", "Sanders", "King", "Barrasso", "McConnell"}},
		{"party", domain.FilterState{Party: "Republican", State: domain.ShowAll, Rank: domain.ShowAll}, []string{"Barrasso", "McConnell"}},
		{"party and rank", domain.FilterState{Party: "Democrat", State: domain.ShowAll, Rank: "Senior"}, []string{"Casey", "Schumer"}},
		{"state and rank", domain.FilterState{Party: domain.ShowAll, State: "VT", Rank: "Junior"}, []string{"Sanders"}},
		{"all three disjoint", domain.FilterState{Party: "Democrat", State: "KY", Rank: "Senior"}, []string{}},
		{"unknown value", domain.FilterState{Party: "Whig"}, []string{}},
		{"empty facets mean show all", domain.FilterState{}, []string{"Baldwin", "Casey", "Schumer", "Sanders", "King", "Barrasso", "McConnell"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFacets(base, tt.state)
			assert.Equal(t, tt.want, lastNames(got))
		})
	}
}

func TestApplyFacetsResetRestoresOrder(t *testing.T) {
	base := fixtureSnapshot(t).Senators()
	before := lastNames(base)

	filtered := ApplyFacets(base, domain.FilterState{Party: "Independent"})
	require.Len(t, filtered, 2)

	reset := ApplyFacets(base, domain.DefaultFilterState())
	assert.Equal(t, before, lastNames(reset))
	assert.Equal(t, before, lastNames(base), "base set is not mutated")
}

func TestFilterByDoesNotAlias(t *testing.T) {
	base := []domain.Senator{senator("Democrat", "WI", "Junior", "A")}

	out := FilterBy(base, FacetParty, domain.ShowAll)
	out[0].Party = "Changed"

	assert.Equal(t, "Democrat", base[0].Party)
}

func TestFilterByAbsentFacetValue(t *testing.T) {
	base := []domain.Senator{{Party: "Democrat"}, senator("Democrat", "WI", "Junior", "A")}

	assert.Len(t, FilterBy(base, FacetState, "WI"), 1)
	assert.Len(t, FilterBy(base, FacetRank, ""), 0)
}

func TestDisplayLine(t *testing.T) {
	snap := fixtureSnapshot(t)
	first := snap.Senators()[0]

	assert.Equal(t, "Junior Sen. Tammy Baldwin (F) Party: Democrat, State: WI", DisplayLine(first))
	assert.Equal(t, "Party: Independent", DisplayLine(domain.Senator{Party: "Independent"}))
}

func TestSearch(t *testing.T) {
	base := fixtureSnapshot(t).Senators()

	one := Search(base, "mcconn")
	assert.Equal(t, []string{"McConnell"}, lastNames(one))

	assert.Len(t, Search(base, ""), len(base))
	assert.Len(t, Search(base, "STATE: vt"), 1)
	assert.Empty(t, Search(base, "nobody by that name"))
	assert.Len(t, Search(base, "party: democrat"), 3)
}

func TestBuildFacetOptions(t *testing.T) {
	opts := fixtureSnapshot(t).Facets

	assert.Equal(t, []string{"Democrat", "Independent", "Republican"}, opts.Parties)
	assert.Equal(t, []string{"KY", "ME", "NY", "PA", "VT", "WI", "WY"}, opts.States)
	assert.Equal(t, []string{"Junior", "Senior"}, opts.Ranks)
}

func TestBuildFacetOptionsNaturalOrder(t *testing.T) {
	base := []domain.Senator{
		senator("Democrat", "District 10", "Class 2", "A"),
		senator("Democrat", "District 2", "Class 10", "B"),
		{Party: "Democrat"},
	}

	opts := BuildFacetOptions(base)

	assert.Equal(t, []string{"District 2", "District 10"}, opts.States)
	assert.Equal(t, []string{"Class 2", "Class 10"}, opts.Ranks)
}
