package churn

import (
	"net/url"
	"strconv"
)

// Slider describes an integer input control.
type Slider struct {
	Key     string
	Label   string
	Min     int
	Max     int
	Default int
}

// Clamp bounds v to [Min, Max].
func (s Slider) Clamp(v int) int {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

var (
	TenureSlider     = Slider{Key: "tenure", Label: "Tempo de Casa (Meses)", Min: 1, Max: 48, Default: 12}
	FeeSlider        = Slider{Key: "fee", Label: "Valor da Mensalidade ($)", Min: 50, Max: 150, Default: 80}
	ComplaintsSlider = Slider{Key: "complaints", Label: "Número de Reclamações", Min: 0, Max: 5, Default: 0}
)

// Sliders lists the simulation controls in display order.
func Sliders() []Slider {
	return []Slider{TenureSlider, FeeSlider, ComplaintsSlider}
}

// Profile is a simulated customer entered by the user.
type Profile struct {
	TenureMonths int
	MonthlyFee   int
	Complaints   int
}

// DefaultProfile returns the slider defaults.
func DefaultProfile() Profile {
	return Profile{
		TenureMonths: TenureSlider.Default,
		MonthlyFee:   FeeSlider.Default,
		Complaints:   ComplaintsSlider.Default,
	}
}

// Clamp bounds every field to its slider range.
func (p Profile) Clamp() Profile {
	return Profile{
		TenureMonths: TenureSlider.Clamp(p.TenureMonths),
		MonthlyFee:   FeeSlider.Clamp(p.MonthlyFee),
		Complaints:   ComplaintsSlider.Clamp(p.Complaints),
	}
}

// ProfileFromQuery reads tenure, fee and complaints from q, falling back to the
// defaults for absent or malformed values.
func ProfileFromQuery(q url.Values) Profile {
	p := DefaultProfile()
	p.TenureMonths = intParam(q, TenureSlider.Key, p.TenureMonths)
	p.MonthlyFee = intParam(q, FeeSlider.Key, p.MonthlyFee)
	p.Complaints = intParam(q, ComplaintsSlider.Key, p.Complaints)
	return p.Clamp()
}

func intParam(q url.Values, key string, def int) int {
	v := q.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
