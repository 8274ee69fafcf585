// Package geo generates synthetic demand clusters and store locations for the
// Belém / Ananindeua metropolitan area and summarises the visible market.
package geo

import (
	"fmt"

	"github.com/Zolinad/dsportfolio/internal/synth"
)

// Zone is a demand cluster centred on a real urban area.
type Zone struct {
	Name         string
	Lat, Lon     float64
	Points       int
	IncomeFactor float64
}

// Zones are the clusters in generation order.
var Zones = []Zone{
	{Name: "Belém Centro/Umarizal", Lat: -1.450, Lon: -48.485, Points: 15, IncomeFactor: 2.0},
	{Name: "Belém Aug. Montenegro", Lat: -1.380, Lon: -48.460, Points: 12, IncomeFactor: 1.2},
	{Name: "Icoaraci", Lat: -1.295, Lon: -48.480, Points: 8, IncomeFactor: 0.8},
	{Name: "Ananindeua Centro/BR", Lat: -1.365, Lon: -48.375, Points: 10, IncomeFactor: 1.0},
	{Name: "Ananindeua Cid. Nova", Lat: -1.340, Lon: -48.410, Points: 10, IncomeFactor: 1.1},
}

// ZoneNames returns the zone names in generation order.
func ZoneNames() []string {
	out := make([]string, len(Zones))
	for i, z := range Zones {
		out[i] = z.Name
	}
	return out
}

// Neighbourhood is one demand point.
type Neighbourhood struct {
	ID         string
	Zone       string
	Lat, Lon   float64
	Population int
	Income     int
}

// Store is an existing shop placed near a neighbourhood.
type Store struct {
	ID       string
	Lat, Lon float64
	Revenue  int
}

// Params controls generation.
type Params struct {
	Seed   int64
	Stores int
}

// DefaultParams returns the dashboard settings.
func DefaultParams() Params {
	return Params{Seed: 42, Stores: 18}
}

const (
	clusterSpread = 0.015
	storeJitter   = 0.002
)

// Generate builds the neighbourhoods zone by zone and then samples distinct
// neighbourhoods to host stores.
func Generate(p Params) ([]Neighbourhood, []Store) {
	src := synth.New(p.Seed)
	var hoods []Neighbourhood
	id := 1
	for _, z := range Zones {
		lats := make([]float64, z.Points)
		lons := make([]float64, z.Points)
		pops := make([]int, z.Points)
		incomes := make([]float64, z.Points)
		for i := range lats {
			lats[i] = z.Lat + src.Normal(0, clusterSpread)
		}
		for i := range lons {
			lons[i] = z.Lon + src.Normal(0, clusterSpread)
		}
		for i := range pops {
			pops[i] = src.IntRange(2000, 35000)
		}
		for i := range incomes {
			incomes[i] = float64(src.IntRange(1200, 5000)) * z.IncomeFactor
		}
		for i := 0; i < z.Points; i++ {
			hoods = append(hoods, Neighbourhood{
				ID:         fmt.Sprintf("B_%03d", id),
				Zone:       z.Name,
				Lat:        lats[i],
				Lon:        lons[i],
				Population: pops[i],
				Income:     int(incomes[i]),
			})
			id++
		}
	}

	var stores []Store
	for _, idx := range src.SampleWithoutReplacement(len(hoods), p.Stores) {
		h := hoods[idx]
		stores = append(stores, Store{
			ID:      fmt.Sprintf("LJ_%d", src.IntRange(100, 999)),
			Lat:     h.Lat + src.Normal(0, storeJitter),
			Lon:     h.Lon + src.Normal(0, storeJitter),
			Revenue: src.IntRange(60000, 250000),
		})
	}
	return hoods, stores
}

// FilterZones keeps neighbourhoods whose zone is selected. An empty selection keeps everything.
func FilterZones(hoods []Neighbourhood, zones []string) []Neighbourhood {
	if len(zones) == 0 {
		return hoods
	}
	sel := make(map[string]bool, len(zones))
	for _, z := range zones {
		sel[z] = true
	}
	var out []Neighbourhood
	for _, h := range hoods {
		if sel[h.Zone] {
			out = append(out, h)
		}
	}
	return out
}

// Market summarises the visible neighbourhoods.
type Market struct {
	Population int
	MeanIncome float64
	Stores     int
}

// Summarise totals population and averages income over hoods. Store count is
// not filtered by zone.
func Summarise(hoods []Neighbourhood, stores []Store) Market {
	m := Market{Stores: len(stores)}
	if len(hoods) == 0 {
		return m
	}
	var income float64
	for _, h := range hoods {
		m.Population += h.Population
		income += float64(h.Income)
	}
	m.MeanIncome = income / float64(len(hoods))
	return m
}
