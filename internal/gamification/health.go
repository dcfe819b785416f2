package gamification

import (
	"math"

	"github.com/shopspring/decimal"
)

type Tier string

const (
	TierHealthy  Tier = "healthy"
	TierWarning  Tier = "warning"
	TierCritical Tier = "critical"
)

// DefaultSpendingLimit лимит трат по умолчанию.
var DefaultSpendingLimit = decimal.NewFromInt(2000)

type HealthStatus struct {
	Limit     decimal.Decimal
	Remaining decimal.Decimal
	Percent   float64
	Rounded   int
	Tier      Tier
	Message   string
	Icon      string
	Color     string
}

// Health процент оставшегося лимита в [0,100] и уровень тревоги. Лимит
// подставляет вызывающий (сессия или DEFAULT_SPENDING_LIMIT); неположительный
// лимит считается исчерпанным.
func Health(limit, expenses decimal.Decimal) HealthStatus {
	remaining := limit.Sub(expenses)
	var pct float64
	if limit.IsPositive() {
		pct, _ = remaining.Div(limit).Mul(decimal.NewFromInt(100)).Float64()
		pct = math.Max(0, math.Min(100, pct))
	}

	h := HealthStatus{Limit: limit, Remaining: remaining, Percent: pct, Rounded: int(math.Round(pct))}
	switch {
	case pct > 50:
		h.Tier, h.Message, h.Icon, h.Color = TierHealthy, "Saudável! Continue assim.", "bxs-heart", "var(--green-icon)"
	case pct > 20:
		h.Tier, h.Message, h.Icon, h.Color = TierWarning, "Cuidado! Orçamento apertando.", "bxs-heart", "var(--orange)"
	default:
		h.Tier, h.Message, h.Icon, h.Color = TierCritical, "Crítico! Limite estourado.", "bxs-skull", "var(--red)"
	}
	return h
}

// ParseLimit принимает только числа больше нуля.
func ParseLimit(value string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(value)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}
