package directory

import (
	"os"
	"testing"

	"github.com/kapu/senate-directory-go/internal/domain"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func loadFixture(t *testing.T) *domain.Dataset {
	t.Helper()

	body, err := os.ReadFile("testdata/senators.json")
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(body))

	return datasetFromJSON(string(body))
}

func datasetFromJSON(doc string) *domain.Dataset {
	ds := &domain.Dataset{}
	gjson.Get(doc, "objects").ForEach(func(_, value gjson.Result) bool {
		ds.Records = append(ds.Records, domain.NewRawRecord(value))
		return true
	})
	return ds
}

func fixtureSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	return BuildSnapshot(loadFixture(t), "testdata/senators.json", zap.NewNop())
}

func lastNames(records []domain.Senator) []string {
	names := make([]string, 0, len(records))
	for _, s := range records {
		names = append(names, domain.Value(s.LastName))
	}
	return names
}

func senator(party, state, rank, last string) domain.Senator {
	return domain.Senator{
		Party:     party,
		State:     domain.Ptr(state),
		RankLabel: domain.Ptr(rank),
		LastName:  domain.Ptr(last),
	}
}
