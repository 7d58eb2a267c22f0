package catalog

import (
	"sort"
	"strings"

	"github.com/electa-dev/electa/internal/errors"
)

// IndependentLabel is the display party of grouped or ungrouped candidates.
// The spelling matches the published candidate pages.
const IndependentLabel = "Independant"

// DefaultMetadataMessage is shown when the directory carries no metadata.
const DefaultMetadataMessage = "Candidate information based on public data sources."

// CandidateID derives the stable candidate identifier: the lowercased
// electorate, a hyphen, then the name lowercased with every run of
// characters outside [a-z0-9] collapsed to one hyphen and edge hyphens
// trimmed.
func CandidateID(electorate, name string) string {
	return strings.ToLower(electorate) + "-" + kebab(name)
}

func kebab(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// NormalizeParty maps raw party labels to display labels. Ballot groups
// ("Group A", "group_b") and "ungrouped" display as IndependentLabel;
// everything else is unchanged.
func NormalizeParty(party string) string {
	if party == "" {
		return ""
	}
	lower := strings.ToLower(strings.TrimSpace(party))
	if strings.HasPrefix(lower, "group ") || strings.HasPrefix(lower, "group_") || lower == "ungrouped" {
		return IndependentLabel
	}
	return party
}

// Parties returns the sorted unique normalised parties of an electorate.
func (d Directory) Parties(electorate string) []string {
	seen := make(map[string]bool)
	parties := []string{}
	for _, c := range d.Candidates[electorate] {
		p := NormalizeParty(c.Party)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		parties = append(parties, p)
	}
	sortStrings(parties)
	return parties
}

// Filter returns the candidates of electorate whose normalised party is
// party. An empty party returns every candidate.
func (d Directory) Filter(electorate, party string) []Candidate {
	all := d.Candidates[electorate]
	if party == "" {
		return all
	}
	out := make([]Candidate, 0, len(all))
	for _, c := range all {
		if NormalizeParty(c.Party) == party {
			out = append(out, c)
		}
	}
	return out
}

// FindCandidate resolves a candidate identifier. Electorates are searched
// in sorted order so the first match is deterministic.
func (d Directory) FindCandidate(id string) (Profile, error) {
	for _, electorate := range d.Electorates() {
		for _, c := range d.Candidates[electorate] {
			if CandidateID(electorate, c.Name) == id {
				return Profile{Candidate: c, ID: id, Electorate: electorate}, nil
			}
		}
	}
	return Profile{}, errors.New("E103").WithDetail(id)
}

// FindArticle returns the article with the given id.
func FindArticle(articles []Article, id string) (Article, error) {
	for _, a := range articles {
		if a.ID == id {
			return a, nil
		}
	}
	return Article{}, errors.New("E104").WithDetail(id)
}

// FindProduct returns the product with the given id.
func FindProduct(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Message renders the provenance sentence shown under candidate
// lists.
func (m Metadata) Message() string {
	var pieces []string
	if m.LastUpdated != "" {
		pieces = append(pieces, "AEC data updated "+m.LastUpdated)
	}
	if m.LastCheckedBy != nil && m.LastCheckedBy.Date != "" {
		checker := m.LastCheckedBy.Entity
		if checker == "" {
			checker = "Electa"
		}
		pieces = append(pieces, checker+" checked on "+m.LastCheckedBy.Date)
	}
	if m.Source != "" {
		pieces = append(pieces, "Source: "+m.Source)
	}
	if len(pieces) == 0 {
		return DefaultMetadataMessage
	}
	return strings.Join(pieces, " · ")
}

func sortStrings(s []string) {
	sort.Strings(s)
}
