package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSource struct {
	id ID
	t  Type
}

func (f fakeSource) ID() ID     { return f.id }
func (f fakeSource) Type() Type { return f.t }
func (f fakeSource) Load(context.Context, Sink) (Stats, error) {
	return Stats{}, nil
}

type acceptNamed struct {
	rows []string
}

func (a *acceptNamed) AddFrom(source, name string, _ []float64, _ string) bool {
	if name == "" {
		return false
	}
	a.rows = append(a.rows, source+":"+name)
	return true
}

func TestType(t *testing.T) {
	assert.Equal(t, []Type{TypeGeoJSON, TypeGTFS, TypeManual}, Types())
	assert.True(t, TypeGTFS.IsValid())
	assert.False(t, Type("shapefile").IsValid())
	assert.Equal(t, "manual", TypeManual.String())
	assert.Equal(t, "bart", ID("bart").String())
}

func TestSources_KeepsOrder(t *testing.T) {
	s := NewSources()
	s.Add(fakeSource{id: "bart", t: TypeGeoJSON})
	s.Add(fakeSource{id: "caltrain", t: TypeGTFS})
	s.Add(fakeSource{id: "bart", t: TypeManual})

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []ID{"bart", "caltrain"}, s.IDs())

	src, ok := s.Get("bart")
	assert.True(t, ok)
	assert.Equal(t, TypeManual, src.Type())

	list := s.List()
	assert.Equal(t, ID("caltrain"), list[1].ID())

	_, ok = s.Get("vta")
	assert.False(t, ok)
}

func TestStats_Record(t *testing.T) {
	sink := &acceptNamed{}
	var stats Stats
	stats.Record(sink, "bart", "Richmond", nil, "BART")
	stats.Record(sink, "bart", "", nil, "BART")

	assert.Equal(t, Stats{Accepted: 1, Rejected: 1}, stats)
	assert.Equal(t, []string{"bart:Richmond"}, sink.rows)
}

func TestConfig_Mode(t *testing.T) {
	assert.Equal(t, CoordinatesAuto, Config{}.Mode())
	assert.Equal(t, CoordinatesProperties, Config{Coordinates: CoordinatesProperties}.Mode())
}
