// Package table converts railmap values into rows for CLI table output.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/railmap"
	"github.com/agentstation/railmap/pkg/assembler"
	"github.com/agentstation/railmap/pkg/lines"
	"github.com/agentstation/railmap/pkg/stations"
	"github.com/agentstation/railmap/pkg/tokens"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// CandidatesToTableData lists resolver candidates in rank order. The first
// row is the station Find would return.
func CandidatesToTableData(candidates []stations.Candidate) Data {
	rows := make([][]string, 0, len(candidates))
	for i, c := range candidates {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.Name,
			c.Agency,
			strconv.Itoa(c.Extra),
			c.Coordinate.String(),
			c.Source,
		})
	}
	return Data{
		Headers:         []string{"#", "Name", "Agency", "Extra", "Lon,Lat", "Source"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft},
	}
}

// TokenRow pairs a name with its token set.
type TokenRow struct {
	Name   string   `json:"name" yaml:"name"`
	Tokens []string `json:"tokens" yaml:"tokens"`
}

// NewTokenRow tokenizes name.
func NewTokenRow(name string) TokenRow {
	return TokenRow{Name: name, Tokens: tokens.Tokenize(name).Sorted()}
}

// TokensToTableData renders tokenized names.
func TokensToTableData(rows []TokenRow) Data {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Name, strings.Join(r.Tokens, " ")})
	}
	return Data{Headers: []string{"Name", "Tokens"}, Rows: out}
}

// SourcesToTableData renders per-source ingestion counts.
func SourcesToTableData(reports []railmap.SourceReport) Data {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			string(r.ID),
			r.Type.String(),
			strconv.Itoa(r.Read),
			strconv.Itoa(r.Accepted),
			strconv.Itoa(r.Rejected),
		})
	}
	return Data{
		Headers:         []string{"Source", "Type", "Read", "Accepted", "Rejected"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight},
	}
}

// MissingToTableData renders unresolved stops.
func MissingToTableData(missing []assembler.MissingReference) Data {
	rows := make([][]string, 0, len(missing))
	for _, m := range missing {
		rows = append(rows, []string{m.Line, m.DisplayName, m.MatchName})
	}
	return Data{Headers: []string{"Line", "Stop", "Match"}, Rows: rows}
}

// LinesToTableData summarizes a line table.
func LinesToTableData(table *lines.Table) Data {
	rows := make([][]string, 0, len(table.Lines))
	for _, def := range table.Lines {
		color := def.Color
		if color == "" {
			color = "-"
		}
		agencies := "-"
		if len(def.Agencies) > 0 {
			agencies = strings.Join(def.Agencies, ", ")
		}
		rows = append(rows, []string{
			def.ID,
			def.DisplayName(),
			strconv.Itoa(len(def.Stops)),
			strconv.Itoa(len(def.Segments)),
			color,
			agencies,
		})
	}
	return Data{
		Headers:         []string{"ID", "Name", "Stops", "Segments", "Color", "Agencies"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignLeft, AlignLeft},
	}
}

// StopResolution is the outcome of resolving one stop of a line.
type StopResolution struct {
	Line     string `json:"line" yaml:"line"`
	Stop     string `json:"stop" yaml:"stop"`
	Match    string `json:"match" yaml:"match"`
	Station  string `json:"station,omitempty" yaml:"station,omitempty"`
	Agency   string `json:"agency,omitempty" yaml:"agency,omitempty"`
	Position string `json:"position,omitempty" yaml:"position,omitempty"`
}

// Resolved reports whether the stop found a station.
func (s StopResolution) Resolved() bool {
	return s.Station != ""
}

// StopsToTableData renders stop resolutions.
func StopsToTableData(stops []StopResolution) Data {
	rows := make([][]string, 0, len(stops))
	for _, s := range stops {
		station, agency, pos := "MISSING", "-", "-"
		if s.Resolved() {
			station, agency, pos = s.Station, s.Agency, s.Position
		}
		rows = append(rows, []string{s.Line, s.Stop, s.Match, station, agency, pos})
	}
	return Data{Headers: []string{"Line", "Stop", "Match", "Station", "Agency", "Lon,Lat"}, Rows: rows}
}

// SummaryRows renders alternating key/value arguments as a two-column table.
func SummaryRows(pairs ...any) Data {
	rows := make([][]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		rows = append(rows, []string{fmt.Sprint(pairs[i]), fmt.Sprint(pairs[i+1])})
	}
	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}
