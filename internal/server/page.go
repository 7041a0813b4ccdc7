package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/kapu/senate-directory-go/internal/directory"
	"github.com/kapu/senate-directory-go/internal/domain"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type barSegment struct {
	Party   string
	Class   string
	Width   string
	Label   string
	Tooltip string
}

type leaderGroup struct {
	Party   string
	Class   string
	Leaders []domain.Leader
}

type selectOption struct {
	Value    string
	Text     string
	Selected bool
}

type facetSelect struct {
	Name    string
	Label   string
	Options []selectOption
}

type pageData struct {
	Available bool
	Error     string
	Undefined bool
	Bar       []barSegment
	Leaders   []leaderGroup
	Selects   []facetSelect
	State     domain.FilterState
	View      directory.ViewResult
}

func buildPage(snap *directory.Snapshot, state domain.FilterState) pageData {
	view := directory.View(snap, state)

	bar := make([]barSegment, 0, len(snap.Parties.Shares))
	for _, share := range snap.Parties.Shares {
		bar = append(bar, barSegment{
			Party:   share.Party,
			Class:   directory.PartyClass(share.Party),
			Width:   fmt.Sprintf("%.2f", share.Percent),
			Label:   strconv.Itoa(share.Count),
			Tooltip: share.Tooltip,
		})
	}

	groups := []leaderGroup{
		{Party: domain.PartyDemocrat, Leaders: snap.Leaders.Democrat},
		{Party: domain.PartyRepublican, Leaders: snap.Leaders.Republican},
		{Party: domain.PartyIndependent, Leaders: snap.Leaders.Independent},
	}
	for i := range groups {
		groups[i].Class = directory.PartyClass(groups[i].Party)
	}

	return pageData{
		Available: true,
		Undefined: snap.Parties.Undefined,
		Bar:       bar,
		Leaders:   groups,
		Selects: []facetSelect{
			newFacetSelect("party", "Party", snap.Facets.Parties, view.State.Party),
			newFacetSelect("state", "State", snap.Facets.States, view.State.State),
			newFacetSelect("rank", "Rank", snap.Facets.Ranks, view.State.Rank),
		},
		State: view.State,
		View:  view,
	}
}

func newFacetSelect(name, label string, values []string, selected string) facetSelect {
	options := make([]selectOption, 0, len(values)+1)
	options = append(options, selectOption{Value: domain.ShowAll, Text: "Show all", Selected: selected == domain.ShowAll})
	for _, v := range values {
		options = append(options, selectOption{Value: v, Text: v, Selected: v == selected})
	}
	return facetSelect{Name: name, Label: label, Options: options}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	var data pageData

	if snap, ok := s.store.Current(); ok {
		data = buildPage(snap, filterStateFromQuery(r))
	} else {
		status = http.StatusServiceUnavailable
		if err := s.store.LastError(); err != nil {
			data.Error = err.Error()
		}
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("Failed to render index page", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
