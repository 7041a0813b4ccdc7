package directory

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/kapu/senate-directory-go/internal/domain"
	"go.uber.org/zap"
)

// Snapshot is everything derived from one successful dataset load. It is
// never modified after BuildSnapshot returns.
type Snapshot struct {
	ID        string
	Source    string
	FetchedAt time.Time
	Parties   domain.PartyCounts
	Leaders   domain.LeadershipGroups
	Facets    domain.FacetOptions
	Records   int
	Skipped   int

	senators []domain.Senator
}

// BuildSnapshot normalizes the dataset and computes its aggregates. The
// base record set is stored in default party order.
func BuildSnapshot(ds *domain.Dataset, source string, logger *zap.Logger) *Snapshot {
	normalized := NormalizeAll(ds.Records, logger)
	senators := SortByParty(normalized.Senators)

	snap := &Snapshot{
		ID:        uuid.NewString(),
		Source:    source,
		FetchedAt: time.Now(),
		Parties:   CountParties(ds.Records),
		Leaders:   GroupLeaders(ds.Records),
		Facets:    BuildFacetOptions(senators),
		Records:   len(ds.Records),
		Skipped:   len(normalized.Skipped),
		senators:  senators,
	}

	if snap.Parties.Undefined {
		logger.Warn("No record belongs to a known party, party percentages set to 0",
			zap.String("snapshot", snap.ID),
			zap.Int("records", snap.Records),
		)
	}

	logger.Info("Directory snapshot built",
		zap.String("snapshot", snap.ID),
		zap.String("source", source),
		zap.Int("records", snap.Records),
		zap.Int("senators", len(senators)),
		zap.Int("skipped", snap.Skipped),
		zap.Int("leaders", snap.Leaders.Len()),
	)

	return snap
}

// Senators returns a copy of the base record set.
func (s *Snapshot) Senators() []domain.Senator {
	return slices.Clone(s.senators)
}

func (s *Snapshot) Len() int {
	return len(s.senators)
}
