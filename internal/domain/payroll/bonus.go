package payroll

import (
	"math/rand"
	"strings"

	"github.com/shopspring/decimal"
)

// BaseBonus maps a free-text position to its bonus tier. Substring
// matching is case-insensitive and checked in priority order, so
// "Senior Manager" lands in the manager tier.
func BaseBonus(position string) float64 {
	p := strings.ToLower(position)
	switch {
	case strings.Contains(p, "manager") || strings.Contains(p, "director"):
		return bonusExecutive
	case strings.Contains(p, "supervisor") || strings.Contains(p, "lead"):
		return bonusSupervisor
	case strings.Contains(p, "senior"):
		return bonusSenior
	case strings.Contains(p, "junior") || strings.Contains(p, "associate"):
		return bonusJunior
	default:
		return bonusDefault
	}
}

// BonusRange returns the tier base and the bounds a draw can land in.
func BonusRange(position string) (base, min, max float64) {
	base = BaseBonus(position)
	min = round2(decimal.NewFromFloat(base).Mul(decimal.NewFromFloat(1 - bonusSpread)))
	max = round2(decimal.NewFromFloat(base).Mul(decimal.NewFromFloat(1 + bonusSpread)))
	return base, min, max
}

// ComputeBonus draws a variation v uniformly from [-0.30, +0.30] and
// returns base*(1+v) rounded to centavos. The generator is injected so
// tests can pin the draw; production seeds it from entropy.
func ComputeBonus(position string, rng *rand.Rand) float64 {
	base := BaseBonus(position)
	v := rng.Float64()*(2*bonusSpread) - bonusSpread
	return round2(decimal.NewFromFloat(base).Mul(decimal.NewFromFloat(1 + v)))
}
