package kpi

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDerivesFields(t *testing.T) {
	rows := Generate(DefaultParams())
	require.Len(t, rows, 1000)
	assert.Equal(t, firstDay, rows[0].Date)
	assert.Equal(t, firstDay.AddDate(0, 0, 999), rows[999].Date)
	for _, r := range rows {
		assert.GreaterOrEqual(t, r.Sales, 100)
		assert.Less(t, r.Sales, 5000)
		assert.GreaterOrEqual(t, r.Margin, 0.05)
		assert.Less(t, r.Margin, 0.30)
		assert.InDelta(t, float64(r.Sales)*r.Margin, r.Profit, 1e-9)
		assert.InDelta(t, r.Margin*100/3, r.QualityScore, 1e-9)
	}
	assert.Equal(t, rows, Generate(DefaultParams()))
}

func TestFilterApply(t *testing.T) {
	rows := []Sale{
		{Region: "Norte", Category: "Móveis"},
		{Region: "Sul", Category: "Móveis"},
		{Region: "Sul", Category: "Decoração"},
	}
	assert.Len(t, Filter{}.Apply(rows), 3)
	assert.Len(t, Filter{Regions: []string{"Sul"}}.Apply(rows), 2)
	assert.Len(t, Filter{Regions: []string{"Sul"}, Categories: []string{"Móveis"}}.Apply(rows), 1)
}

func TestComputeAndGroups(t *testing.T) {
	rows := []Sale{
		{Region: "Sul", Category: "Móveis", Sales: 1000, Margin: 0.3},
		{Region: "Norte", Category: "Móveis", Sales: 3000, Margin: 0.15},
		{Region: "Sul", Category: "Decoração", Sales: 500, Margin: 0.06},
	}
	for i := range rows {
		Derive(&rows[i])
	}
	ind := Compute(rows)
	assert.Equal(t, 4500.0, ind.Revenue)
	assert.InDelta(t, 300+450+30, ind.Profit, 1e-9)
	assert.InDelta(t, (10+5+2)/3.0, ind.MeanQuality, 1e-9)
	assert.InDelta(t, ind.MeanQuality-6, ind.QualityDelta, 1e-12)

	regions := ByRegion(rows)
	require.Len(t, regions, 2)
	assert.Equal(t, RegionTotal{Region: "Norte", Sales: 3000}, regions[0])
	assert.Equal(t, RegionTotal{Region: "Sul", Sales: 1500}, regions[1])

	cats := ByCategory(rows)
	require.Len(t, cats, 2)
	assert.Equal(t, "Decoração", cats[0].Category)
	assert.Equal(t, 4000.0, cats[1].Sales)
	assert.InDelta(t, 7.5, cats[1].MeanQuality, 1e-9)
}

func TestComputeEmpty(t *testing.T) {
	ind := Compute(nil)
	assert.Zero(t, ind.Revenue)
	assert.False(t, math.IsNaN(ind.MeanQuality))
}

func TestLatestOrdersByDateDesc(t *testing.T) {
	rows := Generate(DefaultParams())
	latest := Latest(rows, LatestRows)
	require.Len(t, latest, 50)
	assert.Equal(t, rows[999].Date, latest[0].Date)
	for i := 1; i < len(latest); i++ {
		assert.True(t, latest[i-1].Date.After(latest[i].Date))
	}
}

func TestFilterFromQueryAndRender(t *testing.T) {
	f := FilterFromQuery(url.Values{"region": {"Sul", "Marte", "Sul"}})
	assert.Equal(t, []string{"Sul"}, f.Regions)
	assert.Equal(t, Categories, f.Categories)

	v := NewDashboard(DefaultParams()).Render(f)
	require.Len(t, v.ByRegion, 1)
	assert.Equal(t, "Sul", v.ByRegion[0].Region)
	assert.LessOrEqual(t, len(v.Latest), 50)
	assert.Len(t, v.QualityMatrix.Data, len(v.ByCategory))
	require.Len(t, v.QualityMatrix.Layout.Shapes, 1)
	assert.Equal(t, QualityGoal, v.QualityMatrix.Layout.Shapes[0].Y0)
	for _, o := range v.Regions {
		assert.Equal(t, o.Name == "Sul", o.Selected)
	}
	assert.Contains(t, v.Markdown(), "Faturamento Total: R$ ")
}
