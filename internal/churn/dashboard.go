package churn

import (
	"fmt"
	"strings"

	"github.com/Zolinad/dsportfolio/internal/format"
)

// Dashboard holds the training data and fitted model for the process lifetime.
type Dashboard struct {
	Customers []Customer
	Model     *Model
}

// NewDashboard generates the customers and trains the model once.
func NewDashboard(p Params) (*Dashboard, error) {
	customers := Generate(p)
	m, err := Train(customers, p)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Customers: customers, Model: m}, nil
}

// View is everything the churn page displays for one request.
type View struct {
	Rows      int
	Cancelled int
	Sliders   []SliderValue
	Result    *Assessment
}

// SliderValue is a slider with its current value.
type SliderValue struct {
	Slider
	Value int
}

// Render builds the page for profile. The score is only computed when simulate is set.
func (d *Dashboard) Render(profile Profile, simulate bool) (View, error) {
	profile = profile.Clamp()
	v := View{
		Rows:      len(d.Customers),
		Cancelled: CountCancelled(d.Customers),
		Sliders: []SliderValue{
			{TenureSlider, profile.TenureMonths},
			{FeeSlider, profile.MonthlyFee},
			{ComplaintsSlider, profile.Complaints},
		},
	}
	if !simulate {
		return v, nil
	}
	a, err := d.Model.Assess(profile)
	if err != nil {
		return View{}, err
	}
	v.Result = &a
	return v, nil
}

// ProbabilityText formats the score as a whole percentage.
func (a Assessment) ProbabilityText() string { return format.Percent(a.Probability) }

// Markdown renders the view as a plain report.
func (v View) Markdown() string {
	var b strings.Builder
	b.WriteString("## Simular Perfil do Cliente\n\n")
	for _, s := range v.Sliders {
		b.WriteString(fmt.Sprintf("- %s: %d (%d–%d)\n", s.Label, s.Value, s.Min, s.Max))
	}
	b.WriteString(fmt.Sprintf("\nBase de treino: %d clientes, %d cancelamentos.\n", v.Rows, v.Cancelled))
	if v.Result == nil {
		return b.String()
	}
	b.WriteString("\n## Resultado da Análise\n\n")
	b.WriteString(fmt.Sprintf("Risco Calculado: %s\n\n", v.Result.ProbabilityText()))
	b.WriteString(v.Result.Risk.Headline() + "\n\n")
	b.WriteString(fmt.Sprintf("**%s:** %s\n", v.Result.Risk.ActionLabel(), v.Result.Risk.ActionText()))
	return b.String()
}
