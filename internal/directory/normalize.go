package directory

import (
	"fmt"
	"strings"

	"github.com/kapu/senate-directory-go/internal/domain"
	"github.com/kapu/senate-directory-go/internal/util"
	"github.com/kapu/senate-directory-go/pkg/errors"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
)

const idLabelRunes = 4

// NormalizeRecord maps one raw entry to a Senator. Missing fields become
// nil; only a non-object entry or a missing party is an error.
func NormalizeRecord(raw domain.RawRecord) (domain.Senator, error) {
	if !raw.IsObject() {
		return domain.Senator{}, fmt.Errorf("record is not an object")
	}

	party := raw.Party()
	if party == "" {
		return domain.Senator{}, fmt.Errorf("record has no party")
	}

	s := domain.Senator{
		IDLabel:         idLabel(raw.Text(domain.PathName)),
		FirstName:       raw.DisplayFirstName(),
		LastName:        raw.Text(domain.PathLastName),
		GenderCode:      genderCode(raw.Text(domain.PathGenderLabel)),
		Party:           party,
		State:           raw.Text(domain.PathState),
		RankLabel:       raw.Text(domain.PathRankLabel),
		LeadershipTitle: raw.Text(domain.PathLeadershipTitle),
		Extra: domain.Extra{
			Birthday: raw.Text(domain.PathBirthday),
			Office:   raw.Text(domain.PathOffice),
			Started:  raw.Text(domain.PathStartDate),
		},
	}

	profile := raw.Text(domain.PathLink)
	if profile != nil {
		if id, ok := util.FirstDigitRun(*profile); ok {
			s.ImageID = &id
		}
		s.Extra.Website = &domain.Link{Label: "Website", Target: *profile}
	}
	if yt := raw.Text(domain.PathYouTubeID); yt != nil {
		s.Extra.YouTube = &domain.Link{Label: "Youtube", Target: fmt.Sprintf("https://www.youtube.com/@%s/featured", *yt)}
	}
	if tw := raw.Text(domain.PathTwitterID); tw != nil {
		s.Extra.Twitter = &domain.Link{Label: "Twitter", Target: fmt.Sprintf("https://Twitter.com/%s", *tw)}
	}

	return s, nil
}

func idLabel(name *string) *string {
	if name == nil {
		return nil
	}
	label := strings.TrimSpace(util.FirstRunes(*name, idLabelRunes))
	if label == "" {
		return nil
	}
	return &label
}

func genderCode(label *string) *string {
	if label == nil {
		return nil
	}
	code := util.FirstRunes(strings.TrimSpace(*label), 1)
	if code == "" {
		return nil
	}
	return &code
}

// NormalizeResult is the outcome of normalizing a whole dataset.
type NormalizeResult struct {
	Senators []domain.Senator
	Skipped  []*errors.RecordError
}

// NormalizeAll normalizes every record in dataset order. A record that fails,
// including by panicking, is logged and skipped.
func NormalizeAll(raws []domain.RawRecord, logger *zap.Logger) NormalizeResult {
	return normalizeAll(raws, NormalizeRecord, logger)
}

func normalizeAll(raws []domain.RawRecord, normalize func(domain.RawRecord) (domain.Senator, error), logger *zap.Logger) NormalizeResult {
	result := NormalizeResult{
		Senators: make([]domain.Senator, 0, len(raws)),
	}

	for i, raw := range raws {
		var (
			pc  panics.Catcher
			s   domain.Senator
			err error
		)
		pc.Try(func() {
			s, err = normalize(raw)
		})
		if recovered := pc.Recovered(); recovered != nil {
			err = recovered.AsError()
		}

		if err != nil {
			recErr := errors.NewRecordError("skipping malformed record", i, err)
			logger.Warn("Skipping malformed record",
				zap.Int("index", i),
				zap.String("record", util.TruncateString(raw.Raw(), 120)),
				zap.Error(err),
			)
			result.Skipped = append(result.Skipped, recErr)
			continue
		}

		result.Senators = append(result.Senators, s)
	}

	return result
}
