package directory

import (
	"testing"

	"github.com/kapu/senate-directory-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountPartiesScenario(t *testing.T) {
	ds := datasetFromJSON(`{"objects":[
		{"party":"Democrat"},{"party":"Democrat"},{"party":"Democrat"},
		{"party":"Republican"},{"party":"Republican"}
	]}`)

	counts := CountParties(ds.Records)

	assert.Equal(t, map[string]int{"Democrat": 3, "Republican": 2, "Independent": 0}, counts.Counts())
	assert.Equal(t, 5, counts.Total)
	assert.False(t, counts.Undefined)
	assert.InDelta(t, 60.0, counts.Percent(domain.PartyDemocrat), 1e-9)
	assert.InDelta(t, 40.0, counts.Percent(domain.PartyRepublican), 1e-9)
	assert.InDelta(t, 0.0, counts.Percent(domain.PartyIndependent), 1e-9)

	require.Len(t, counts.Shares, 3)
	assert.Equal(t, "Democrats: 3", counts.Shares[0].Tooltip)
	assert.Equal(t, "Republicans: 2", counts.Shares[1].Tooltip)
	assert.Equal(t, "Independent: 0", counts.Shares[2].Tooltip)
}

func TestCountPartiesExcludesUnknown(t *testing.T) {
	ds := datasetFromJSON(`{"objects":[
		{"party":"Democrat"},{"party":"Libertarian"},{"party":"democrat"},{},{"party":"Independent"}
	]}`)

	counts := CountParties(ds.Records)

	sum := 0
	for _, c := range counts.Counts() {
		sum += c
	}
	assert.Equal(t, 2, sum)
	assert.Less(t, sum, len(ds.Records))
	assert.Equal(t, sum, counts.Total)
	assert.InDelta(t, 50.0, counts.Percent(domain.PartyIndependent), 1e-9)
}

func TestCountPartiesSumEqualsLenWhenAllKnown(t *testing.T) {
	ds := loadFixture(t)
	counts := CountParties(ds.Records)

	assert.Equal(t, len(ds.Records), counts.Total)
	assert.Equal(t, 3, counts.Count(domain.PartyDemocrat))
	assert.Equal(t, 2, counts.Count(domain.PartyRepublican))
	assert.Equal(t, 2, counts.Count(domain.PartyIndependent))
}

func TestCountPartiesZeroTotal(t *testing.T) {
	ds := datasetFromJSON(`{"objects":[{"party":"Whig"}]}`)

	counts := CountParties(ds.Records)

	assert.True(t, counts.Undefined)
	assert.Zero(t, counts.Total)
	for _, share := range counts.Shares {
		assert.Zero(t, share.Percent, share.Party)
	}

	empty := CountParties(nil)
	assert.True(t, empty.Undefined)
}

func TestGroupLeaders(t *testing.T) {
	groups := GroupLeaders(loadFixture(t).Records)

	require.Len(t, groups.Democrat, 1)
	assert.Equal(t, "Majority Leader: Chuck Schumer (Democrat)", groups.Democrat[0].Descriptor)

	require.Len(t, groups.Republican, 2)
	assert.Equal(t, "Republican Whip: John Barrasso (Republican)", groups.Republican[0].Descriptor)
	assert.Equal(t, "Minority Leader: Mitch McConnell (Republican)", groups.Republican[1].Descriptor)
	assert.Equal(t, "Mitch McConnell", groups.Republican[1].Name)

	assert.Empty(t, groups.Independent)
	assert.Equal(t, 3, groups.Len())
	assert.Equal(t, "Chuck Schumer", groups.All()[0].Name)
}

func TestGroupLeadersSkipsUnknownPartyAndMissingTitle(t *testing.T) {
	ds := datasetFromJSON(`{"objects":[
		{"party":"Whig","leadership_title":"Chair","person":{"firstname":"A","lastname":"B"}},
		{"party":"Independent","leadership_title":null,"person":{"firstname":"C","lastname":"D"}},
		{"party":"Independent","leadership_title":"Caucus Chair","person":{"firstname":"Angus","nickname":null,"lastname":"King"}}
	]}`)

	groups := GroupLeaders(ds.Records)

	assert.Empty(t, groups.Democrat)
	assert.Empty(t, groups.Republican)
	require.Len(t, groups.Independent, 1)
	assert.Equal(t, "Caucus Chair: Angus King (Independent)", groups.Independent[0].Descriptor)
}

func TestGroupLeadersCountsEmptyTitle(t *testing.T) {
	ds := datasetFromJSON(`{"objects":[
		{"party":"Democrat","leadership_title":"","person":{"firstname":"Tammy","lastname":"Baldwin"}},
		{"party":"Democrat","person":{"firstname":"Bob","lastname":"Casey"}}
	]}`)

	groups := GroupLeaders(ds.Records)

	require.Len(t, groups.Democrat, 1)
	assert.Equal(t, "", groups.Democrat[0].Title)
	assert.Equal(t, "Tammy Baldwin", groups.Democrat[0].Name)
	assert.Equal(t, ": Tammy Baldwin (Democrat)", groups.Democrat[0].Descriptor)
}
