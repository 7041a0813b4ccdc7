package adapter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kapu/senate-directory-go/internal/directory"
	"github.com/kapu/senate-directory-go/internal/domain"
)

const defaultBarWidth = 40

var partyColors = map[string]lipgloss.Color{
	domain.PartyDemocrat:    lipgloss.Color("#1d4ed8"),
	domain.PartyRepublican:  lipgloss.Color("#b91c1c"),
	domain.PartyIndependent: lipgloss.Color("#6b7280"),
}

// Formatter renders directory views for the terminal.
type Formatter struct {
	barWidth int
	title    lipgloss.Style
	muted    lipgloss.Style
}

func NewFormatter(barWidth int) *Formatter {
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}
	return &Formatter{
		barWidth: barWidth,
		title:    lipgloss.NewStyle().Bold(true),
		muted:    lipgloss.NewStyle().Faint(true),
	}
}

// FormatList prints the visible units of view with their details.
func (f *Formatter) FormatList(view directory.ViewResult) (string, error) {
	return executeFormatterTemplate("list.tmpl", view)
}

// FormatLeaders prints every leader, Democrats first.
func (f *Formatter) FormatLeaders(groups domain.LeadershipGroups) (string, error) {
	return executeFormatterTemplate("leaders.tmpl", groups.All())
}

// FormatParties draws the party bar followed by one legend line per party.
func (f *Formatter) FormatParties(counts domain.PartyCounts) string {
	var sb strings.Builder
	sb.WriteString(f.title.Render("Party affiliation"))
	sb.WriteString("\n")

	if counts.Undefined {
		sb.WriteString(f.muted.Render("No party data"))
		return sb.String()
	}

	widths := segmentWidths(counts.Shares, f.barWidth)
	segments := make([]string, 0, len(counts.Shares))
	for i, share := range counts.Shares {
		if widths[i] == 0 {
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(partyColors[share.Party]).
			Background(partyColors[share.Party])
		segments = append(segments, style.Render(strings.Repeat(partyInitial(share.Party), widths[i])))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, segments...))
	sb.WriteString("\n")

	for _, share := range counts.Shares {
		sb.WriteString(fmt.Sprintf("%s (%.1f%%)\n", share.Tooltip, share.Percent))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func partyInitial(party string) string {
	if party == "" {
		return "?"
	}
	return party[:1]
}

// segmentWidths splits width across shares by largest remainder so the
// segments always fill the bar exactly.
func segmentWidths(shares []domain.PartyShare, width int) []int {
	widths := make([]int, len(shares))
	remainders := make([]float64, len(shares))

	used := 0
	for i, share := range shares {
		exact := share.Percent / 100 * float64(width)
		widths[i] = int(exact)
		remainders[i] = exact - float64(widths[i])
		used += widths[i]
	}

	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})

	for _, i := range order {
		if used >= width {
			break
		}
		if shares[i].Count == 0 {
			continue
		}
		widths[i]++
		used++
	}
	return widths
}
