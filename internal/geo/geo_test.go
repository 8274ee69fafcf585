package geo

import (
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShapeAndDeterminism(t *testing.T) {
	hoods, stores := Generate(DefaultParams())
	require.Len(t, hoods, 55)
	require.Len(t, stores, 18)

	hoods2, stores2 := Generate(DefaultParams())
	assert.Equal(t, hoods, hoods2)
	assert.Equal(t, stores, stores2)

	assert.Equal(t, "B_001", hoods[0].ID)
	assert.Equal(t, "B_055", hoods[54].ID)
	assert.Equal(t, "Belém Centro/Umarizal", hoods[0].Zone)
	assert.Equal(t, "Ananindeua Cid. Nova", hoods[54].Zone)
}

func TestGenerateRanges(t *testing.T) {
	hoods, stores := Generate(DefaultParams())
	factor := map[string]float64{}
	for _, z := range Zones {
		factor[z.Name] = z.IncomeFactor
	}
	for _, h := range hoods {
		assert.GreaterOrEqual(t, h.Population, 2000)
		assert.Less(t, h.Population, 35000)
		assert.GreaterOrEqual(t, float64(h.Income), 1200*factor[h.Zone]-1)
		assert.Less(t, float64(h.Income), 5000*factor[h.Zone])
	}
	id := regexp.MustCompile(`^LJ_\d{3}$`)
	for _, s := range stores {
		assert.Regexp(t, id, s.ID)
		assert.GreaterOrEqual(t, s.Revenue, 60000)
		assert.Less(t, s.Revenue, 250000)
	}
}

func TestFilterAndSummarise(t *testing.T) {
	hoods := []Neighbourhood{
		{Zone: "Icoaraci", Population: 1000, Income: 2000},
		{Zone: "Icoaraci", Population: 3000, Income: 4000},
		{Zone: "Belém Aug. Montenegro", Population: 500, Income: 9000},
	}
	visible := FilterZones(hoods, []string{"Icoaraci"})
	require.Len(t, visible, 2)
	m := Summarise(visible, make([]Store, 18))
	assert.Equal(t, Market{Population: 4000, MeanIncome: 3000, Stores: 18}, m)
	assert.Equal(t, "4.000", m.PopulationText())
	assert.Equal(t, "R$ 3.000,00", m.IncomeText())

	assert.Len(t, FilterZones(hoods, nil), 3)
	assert.Equal(t, Market{Stores: 0}, Summarise(nil, nil))
}

func TestQueryFromValues(t *testing.T) {
	q := QueryFromValues(url.Values{"zone": {"Icoaraci", "Atlantis", "Icoaraci"}, "view": {"data"}})
	assert.Equal(t, ViewData, q.Mode)
	assert.Equal(t, []string{"Icoaraci"}, q.Zones)

	q = QueryFromValues(url.Values{})
	assert.Equal(t, ViewMap, q.Mode)
	assert.Equal(t, ZoneNames(), q.Zones)
}

func TestRenderModes(t *testing.T) {
	d := NewDashboard(DefaultParams())

	v := d.Render(Query{Mode: ViewMap, Zones: []string{"Icoaraci"}})
	assert.Len(t, v.Visible, 8)
	assert.Equal(t, 18, v.Market.Stores)
	require.Len(t, v.MapChart.Data, 2)
	assert.Len(t, v.MapChart.Data[0].Lat, 8)
	assert.Len(t, v.MapChart.Data[1].Lat, 18)
	assert.Equal(t, 10.5, v.MapChart.Layout.Map.Zoom)
	assert.Contains(t, v.Markdown(), "População na Área")

	v = d.Render(Query{Mode: ViewData, Zones: ZoneNames()})
	md := v.Markdown()
	assert.Contains(t, md, "Clusters Demográficos")
	assert.Equal(t, 55+18, strings.Count(md, "| B_")+strings.Count(md, "| LJ_"))
}
