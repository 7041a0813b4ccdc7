package directory

import (
	"testing"

	"github.com/kapu/senate-directory-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildSnapshot(t *testing.T) {
	snap := fixtureSnapshot(t)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, 7, snap.Records)
	assert.Equal(t, 7, snap.Len())
	assert.Zero(t, snap.Skipped)
	assert.Equal(t, 3, snap.Leaders.Len())
	assert.False(t, snap.FetchedAt.IsZero())

	parties := make([]string, 0, snap.Len())
	for _, s := range snap.Senators() {
		parties = append(parties, s.Party)
	}
	assert.IsNonDecreasing(t, parties)
}

func TestSnapshotSenatorsReturnsCopy(t *testing.T) {
	snap := fixtureSnapshot(t)

	copied := snap.Senators()
	copied[0].Party = "Mutated"

	assert.Equal(t, "Democrat", snap.Senators()[0].Party)
}

func TestBuildSnapshotCountsRawButListsNormalized(t *testing.T) {
	ds := datasetFromJSON(`{"objects":[
		{"party":"Democrat","person":{"lastname":"Kept"}},
		[1,2,3],
		{"party":"Whig","person":{"lastname":"Tolerated"}}
	]}`)

	snap := BuildSnapshot(ds, "inline", zap.NewNop())

	assert.Equal(t, 3, snap.Records)
	assert.Equal(t, 1, snap.Skipped)
	assert.Equal(t, []string{"Kept", "Tolerated"}, lastNames(snap.Senators()))
	assert.Equal(t, 1, snap.Parties.Total)
	assert.Equal(t, []string{"Democrat", "Whig"}, snap.Facets.Parties)
}

func TestBuildSnapshotEmptyDataset(t *testing.T) {
	snap := BuildSnapshot(&domain.Dataset{}, "empty", zap.NewNop())

	require.NotNil(t, snap)
	assert.Zero(t, snap.Len())
	assert.True(t, snap.Parties.Undefined)
	assert.Empty(t, View(snap, domain.DefaultFilterState()).Units)
}
