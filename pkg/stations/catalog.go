package stations

import (
	"sort"

	"github.com/agentstation/railmap/pkg/tokens"
)

// Catalog is an append-only list of station records. It is built once by
// the source adapters and only read afterwards, so it carries no locking.
//
// Near-duplicate stations from different feeds are all kept; the resolver
// decides between them at query time.
type Catalog struct {
	records  []Record
	rejected int
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Add ingests one station. It reports false, without error, when the name is
// empty, the coordinate is not a finite [lon, lat] pair, or the name yields
// no tokens.
func (c *Catalog) Add(name string, coord []float64, agency string) bool {
	return c.AddFrom("", name, coord, agency)
}

// AddFrom is Add with the id of the source the row came from recorded on the
// record.
func (c *Catalog) AddFrom(source, name string, coord []float64, agency string) bool {
	if name == "" {
		c.rejected++
		return false
	}
	position, ok := CoordinateFrom(coord)
	if !ok {
		c.rejected++
		return false
	}
	set := tokens.Tokenize(name)
	if set.Empty() {
		c.rejected++
		return false
	}

	c.records = append(c.records, Record{
		Name:       name,
		Coordinate: position,
		Agency:     agency,
		Tokens:     set,
		Source:     source,
	})
	return true
}

// Len returns the number of accepted records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Rejected returns how many Add calls were turned away.
func (c *Catalog) Rejected() int {
	return c.rejected
}

// Records returns the accepted records in ingestion order.
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Agencies returns the distinct agency names present, sorted.
func (c *Catalog) Agencies() []string {
	seen := make(map[string]struct{})
	for _, r := range c.records {
		seen[r.Agency] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
