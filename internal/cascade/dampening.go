package cascade

import (
	"math"

	"github.com/1siamBot/worldsim-core/internal/event"
)

// This file authors a dampening curve satisfying three properties (see
// DESIGN.md for the full rationale): probability decreases monotonically
// with chain depth, higher cause significance reduces the decay rate, and
// probability never goes negative.

// adjustDampeningForSignificance returns a copy of d whose Strength is
// reduced in proportion to causeSignificance: a maximally significant
// cause (100) halves the configured strength; a zero-significance cause
// leaves it unchanged. This is the "the more significant the cause, the
// gentler the dampening" rule.
func adjustDampeningForSignificance(d event.Dampening, causeSignificance int) event.Dampening {
	if causeSignificance < 0 {
		causeSignificance = 0
	}
	if causeSignificance > 100 {
		causeSignificance = 100
	}
	relief := float64(causeSignificance) / 100.0 * 0.5
	out := d
	out.Strength = d.Strength * (1 - relief)
	return out
}

// calculateDampenedProbability applies exponential per-depth decay scaled
// by the (already significance-adjusted) dampening strength:
//
//	p(depth) = base * exp(-strength * depth)
//
// which is strictly non-increasing in depth for strength >= 0, and strictly
// positive (never negative) for any finite depth.
func calculateDampenedProbability(base float64, d event.Dampening, chainDepth int) float64 {
	if base <= 0 {
		return 0
	}
	strength := d.Strength
	if strength < 0 {
		strength = 0
	}
	decay := math.Exp(-strength * float64(chainDepth))
	p := base * decay
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}
