package directory

import (
	"fmt"
	"strings"

	"github.com/kapu/senate-directory-go/internal/domain"
	"github.com/kapu/senate-directory-go/internal/util"
)

// CountParties tallies the known parties by exact match. Unknown party
// strings are left out of both the counts and the total.
func CountParties(raws []domain.RawRecord) domain.PartyCounts {
	counts := make(map[string]int, len(domain.KnownParties))
	for _, raw := range raws {
		party := raw.Party()
		if domain.IsKnownParty(party) {
			counts[party]++
		}
	}

	total := 0
	for _, party := range domain.KnownParties {
		total += counts[party]
	}

	result := domain.PartyCounts{
		Shares: make([]domain.PartyShare, 0, len(domain.KnownParties)),
		Total:  total,
	}
	for _, party := range domain.KnownParties {
		pct, ok := util.Percent(counts[party], total)
		if !ok {
			result.Undefined = true
		}
		result.Shares = append(result.Shares, domain.PartyShare{
			Party:   party,
			Count:   counts[party],
			Percent: pct,
			Tooltip: domain.PartyTooltip(party, counts[party]),
		})
	}

	return result
}

// GroupLeaders collects every record with a leadership title into its
// party's group, keeping dataset order. A title that is present but empty
// still makes the record a leader; only a missing or null title does not.
func GroupLeaders(raws []domain.RawRecord) domain.LeadershipGroups {
	var groups domain.LeadershipGroups

	for _, raw := range raws {
		if !raw.Present(domain.PathLeadershipTitle) {
			continue
		}
		title := domain.Value(raw.Text(domain.PathLeadershipTitle))

		party := raw.Party()
		leader := newLeader(title, displayName(raw.DisplayFirstName(), raw.Text(domain.PathLastName)), party)

		switch party {
		case domain.PartyDemocrat:
			groups.Democrat = append(groups.Democrat, leader)
		case domain.PartyRepublican:
			groups.Republican = append(groups.Republican, leader)
		case domain.PartyIndependent:
			groups.Independent = append(groups.Independent, leader)
		}
	}

	return groups
}

func newLeader(title, name, party string) domain.Leader {
	return domain.Leader{
		Title:      title,
		Name:       name,
		Party:      party,
		Descriptor: fmt.Sprintf("%s: %s (%s)", title, name, party),
	}
}

func displayName(first, last *string) string {
	parts := make([]string, 0, 2)
	for _, p := range []*string{first, last} {
		if p != nil {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, " ")
}
