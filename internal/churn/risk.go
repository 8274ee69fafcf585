package churn

// HighRiskThreshold is the probability above which a profile is high risk.
const HighRiskThreshold = 0.6

// RiskLevel buckets a cancellation probability.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskHigh
)

// Classify maps a probability to a RiskLevel. It is monotonic in p.
func Classify(p float64) RiskLevel {
	if p > HighRiskThreshold {
		return RiskHigh
	}
	return RiskLow
}

func (r RiskLevel) String() string {
	if r == RiskHigh {
		return "high"
	}
	return "low"
}

// Headline is the banner shown for the level.
func (r RiskLevel) Headline() string {
	if r == RiskHigh {
		return "🚨 RISCO ALTO: Tendência de Cancelamento."
	}
	return "RISCO BAIXO: Cliente Fidelizado."
}

// ActionLabel captions the follow-up guidance.
func (r RiskLevel) ActionLabel() string {
	if r == RiskHigh {
		return "Ação Recomendada"
	}
	return "Situação"
}

// ActionText is the follow-up guidance for the level.
func (r RiskLevel) ActionText() string {
	if r == RiskHigh {
		return "Entrar em contato para oferecer desconto ou upgrade."
	}
	return "O cliente apresenta comportamento estável."
}
