package stations

import (
	"cmp"
	"slices"

	"github.com/agentstation/railmap/pkg/tokens"
)

// Resolver finds the station a stop name refers to.
type Resolver interface {
	Find(query string, agencies []string) (Record, bool)
}

// Candidate is a record that contains every query token, along with how many
// tokens it has beyond the query.
type Candidate struct {
	Record `yaml:",inline"`
	Extra int `json:"extra" yaml:"extra"`
}

// Candidates returns every record whose tokens are a superset of the query's,
// best first. When agencies is non-empty and at least one candidate belongs
// to one of them, only those candidates are kept. Ranking is by Extra, then
// by name; records that tie on both keep ingestion order.
func (c *Catalog) Candidates(query string, agencies []string) []Candidate {
	want := tokens.Tokenize(query)
	if want.Empty() {
		return nil
	}

	var all []Candidate
	for _, r := range c.records {
		if want.SubsetOf(r.Tokens) {
			all = append(all, Candidate{Record: r, Extra: r.Tokens.Len() - want.Len()})
		}
	}

	if len(agencies) > 0 {
		var preferred []Candidate
		for _, cand := range all {
			if cand.servesAny(agencies) {
				preferred = append(preferred, cand)
			}
		}
		if len(preferred) > 0 {
			all = preferred
		}
	}

	slices.SortStableFunc(all, func(a, b Candidate) int {
		if n := cmp.Compare(a.Extra, b.Extra); n != 0 {
			return n
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return all
}

// Find returns the best candidate for query, if any.
func (c *Catalog) Find(query string, agencies []string) (Record, bool) {
	ranked := c.Candidates(query, agencies)
	if len(ranked) == 0 {
		return Record{}, false
	}
	return ranked[0].Record, true
}
