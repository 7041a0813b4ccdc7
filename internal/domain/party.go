package domain

import "fmt"

const (
	PartyDemocrat    = "Democrat"
	PartyRepublican  = "Republican"
	PartyIndependent = "Independent"
)

// KnownParties lists the parties counted in the summary bar, in bar order.
var KnownParties = []string{PartyDemocrat, PartyRepublican, PartyIndependent}

func IsKnownParty(party string) bool {
	for _, p := range KnownParties {
		if p == party {
			return true
		}
	}
	return false
}

// PartyTooltip is the hover text of one party's bar segment.
func PartyTooltip(party string, count int) string {
	switch party {
	case PartyDemocrat:
		return fmt.Sprintf("Democrats: %d", count)
	case PartyRepublican:
		return fmt.Sprintf("Republicans: %d", count)
	default:
		return fmt.Sprintf("%s: %d", party, count)
	}
}

type PartyShare struct {
	Party   string  `json:"party"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Tooltip string  `json:"tooltip"`
}

// PartyCounts is the party summary of one dataset. Undefined is set when no
// record belongs to a known party; every percentage is then 0.
type PartyCounts struct {
	Shares    []PartyShare `json:"shares"`
	Total     int          `json:"total"`
	Undefined bool         `json:"undefined"`
}

func (p PartyCounts) share(party string) PartyShare {
	for _, s := range p.Shares {
		if s.Party == party {
			return s
		}
	}
	return PartyShare{Party: party}
}

func (p PartyCounts) Count(party string) int {
	return p.share(party).Count
}

func (p PartyCounts) Percent(party string) float64 {
	return p.share(party).Percent
}

func (p PartyCounts) Counts() map[string]int {
	counts := make(map[string]int, len(p.Shares))
	for _, s := range p.Shares {
		counts[s.Party] = s.Count
	}
	return counts
}

type Leader struct {
	Title      string `json:"title"`
	Name       string `json:"name"`
	Party      string `json:"party"`
	Descriptor string `json:"descriptor"`
}

type LeadershipGroups struct {
	Democrat    []Leader `json:"democrat"`
	Republican  []Leader `json:"republican"`
	Independent []Leader `json:"independent"`
}

// All returns every leader, Democrats first, then Republicans, then
// Independents.
func (g LeadershipGroups) All() []Leader {
	all := make([]Leader, 0, len(g.Democrat)+len(g.Republican)+len(g.Independent))
	all = append(all, g.Democrat...)
	all = append(all, g.Republican...)
	return append(all, g.Independent...)
}

func (g LeadershipGroups) Len() int {
	return len(g.Democrat) + len(g.Republican) + len(g.Independent)
}
