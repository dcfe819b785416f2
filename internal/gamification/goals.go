package gamification

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/utils"
)

type Progress struct {
	Percent    float64
	BarPercent float64
	Label      string
	Rounded    int
}

// GoalProgress процент выполнения цели; 0 при target <= 0.
func GoalProgress(current, target decimal.Decimal) Progress {
	var pct float64
	if target.IsPositive() {
		pct, _ = current.Div(target).Mul(decimal.NewFromInt(100)).Float64()
	}
	bar := math.Max(0, math.Min(pct, 100))
	return Progress{
		Percent:    pct,
		BarPercent: bar,
		Label:      utils.FormatPercent1(bar) + "%",
		Rounded:    int(math.Round(pct)),
	}
}
