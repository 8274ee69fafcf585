package churn

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsReproducible(t *testing.T) {
	a := Generate(DefaultParams())
	b := Generate(DefaultParams())
	require.Len(t, a, 200)
	assert.Equal(t, a, b)

	other := DefaultParams()
	other.Seed = 7
	assert.NotEqual(t, a, Generate(other))
}

func TestGenerateRespectsRanges(t *testing.T) {
	for _, c := range Generate(DefaultParams()) {
		assert.GreaterOrEqual(t, c.TenureMonths, 1)
		assert.Less(t, c.TenureMonths, 48)
		assert.GreaterOrEqual(t, c.MonthlyFee, 50)
		assert.Less(t, c.MonthlyFee, 150)
		assert.GreaterOrEqual(t, c.Complaints, 0)
		assert.Less(t, c.Complaints, 5)
	}
}

func TestLabelledCountMatchesRule(t *testing.T) {
	customers := Generate(DefaultParams())
	want := 0
	for _, c := range customers {
		if c.Complaints > 2 || (c.MonthlyFee > 100 && c.TenureMonths < 6) {
			want++
		}
	}
	assert.Equal(t, want, CountCancelled(customers))
}

func TestCancelRuleIsPure(t *testing.T) {
	cases := []struct {
		c    Customer
		want bool
	}{
		{Customer{TenureMonths: 12, MonthlyFee: 80, Complaints: 0}, false},
		{Customer{TenureMonths: 12, MonthlyFee: 80, Complaints: 3}, true},
		{Customer{TenureMonths: 5, MonthlyFee: 101, Complaints: 0}, true},
		{Customer{TenureMonths: 6, MonthlyFee: 101, Complaints: 0}, false},
		{Customer{TenureMonths: 5, MonthlyFee: 100, Complaints: 2}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CancelRule(tc.c), "%+v", tc.c)
		// The stored label does not influence the rule.
		flipped := tc.c
		flipped.Cancelled = !tc.want
		assert.Equal(t, tc.want, CancelRule(flipped))
	}
}

func TestClassifyIsMonotonic(t *testing.T) {
	prev := Classify(0)
	for p := 0.0; p <= 1.0; p += 0.01 {
		cur := Classify(p)
		assert.GreaterOrEqual(t, int(cur), int(prev), "p=%.2f", p)
		prev = cur
	}
	assert.Equal(t, RiskLow, Classify(0.6))
	assert.Equal(t, RiskHigh, Classify(0.61))
}

func TestAssessSeparatesExtremes(t *testing.T) {
	d, err := NewDashboard(DefaultParams())
	require.NoError(t, err)

	calm, err := d.Model.Assess(Profile{TenureMonths: 40, MonthlyFee: 60, Complaints: 0})
	require.NoError(t, err)
	angry, err := d.Model.Assess(Profile{TenureMonths: 40, MonthlyFee: 60, Complaints: 5})
	require.NoError(t, err)

	assert.Equal(t, RiskLow, calm.Risk)
	assert.Equal(t, RiskHigh, angry.Risk)
	assert.Greater(t, angry.Probability, calm.Probability)
}

func TestProfileFromQueryClampsAndDefaults(t *testing.T) {
	p := ProfileFromQuery(url.Values{"tenure": {"99"}, "fee": {"abc"}, "complaints": {"-2"}})
	assert.Equal(t, Profile{TenureMonths: 48, MonthlyFee: 80, Complaints: 0}, p)
	assert.Equal(t, DefaultProfile(), ProfileFromQuery(url.Values{}))
}

func TestRenderOnlyScoresWhenSimulating(t *testing.T) {
	d, err := NewDashboard(DefaultParams())
	require.NoError(t, err)

	v, err := d.Render(DefaultProfile(), false)
	require.NoError(t, err)
	assert.Nil(t, v.Result)
	assert.Equal(t, 200, v.Rows)
	assert.NotContains(t, v.Markdown(), "Resultado da Análise")

	v, err = d.Render(Profile{TenureMonths: 2, MonthlyFee: 140, Complaints: 4}, true)
	require.NoError(t, err)
	require.NotNil(t, v.Result)
	md := v.Markdown()
	assert.Contains(t, md, "Risco Calculado")
	assert.Contains(t, md, v.Result.Risk.Headline())
}
