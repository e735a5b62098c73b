// Package combat converts an interpreted action into damage and energy
// effects. The mapping is deterministic: specificity selects one of four
// tiers, the action kind then overrides or scales the tier result.
package combat

import (
	"fmt"

	"grandline-arena/internal/domain"
)

// Rejection explains why an action produced no effect.
type Rejection string

const (
	RejectionNone Rejection = ""

	// RejectionInvalidAction: attack without an identified member.
	RejectionInvalidAction Rejection = "invalid_action"

	// RejectionInsufficientEnergy: the acting combatant cannot afford the
	// energy cost of the action.
	RejectionInsufficientEnergy Rejection = "insufficient_energy"
)

// Tier is one of the four specificity bands.
type Tier int

const (
	TierNegligible Tier = iota
	TierLow
	TierMedium
	TierHigh
)

// Specificity thresholds and the damage/energy pair each tier carries.
var tiers = []struct {
	minSpecificity int
	damage         int
	energyCost     int
}{
	{0, 0, 5},    // negligible
	{35, 15, 10}, // low
	{55, 25, 15}, // medium
	{75, 50, 25}, // high
}

const (
	namedTechniqueBonus = 15
	maxDamage           = 60

	dodgeEnergyCost = 15
	blockEnergyCost = 10

	// A block mitigates, it does not negate: 40% of the tier damage lands.
	blockDamageFactor = 0.4
)

// Result of resolving one action against the acting combatant's energy.
type Result struct {
	Damage     int
	EnergyCost int
	Tier       Tier
	Narrative  string
	Rejection  Rejection
}

// Rejected reports whether the action had no effect.
func (r Result) Rejected() bool { return r.Rejection != RejectionNone }

// TierFor returns the tier a specificity score falls into.
func TierFor(specificity int) Tier {
	tier := TierNegligible
	for i, t := range tiers {
		if specificity >= t.minSpecificity {
			tier = Tier(i)
		}
	}
	return tier
}

// Resolve computes the effect of a descriptor. It mutates nothing; callers
// apply the returned damage and energy cost to match state on success.
func Resolve(desc domain.ActionDescriptor, attackerName, defenderName string, attackerEnergy int) Result {
	if desc.Kind == domain.KindAttack && !desc.Valid {
		return Result{Rejection: RejectionInvalidAction}
	}

	tier := TierFor(desc.Specificity)
	damage := tiers[tier].damage
	energyCost := tiers[tier].energyCost

	if desc.NamedTechnique {
		damage += namedTechniqueBonus
		if damage > maxDamage {
			damage = maxDamage
		}
	}

	switch desc.Kind {
	case domain.KindDodge:
		damage = 0
		energyCost = dodgeEnergyCost
	case domain.KindBlock:
		damage = int(float64(damage) * blockDamageFactor)
		energyCost = blockEnergyCost
	}

	if attackerEnergy < energyCost {
		return Result{Rejection: RejectionInsufficientEnergy}
	}

	return Result{
		Damage:     damage,
		EnergyCost: energyCost,
		Tier:       tier,
		Narrative:  narrative(desc, tier, damage, energyCost, attackerName, defenderName),
	}
}

func narrative(desc domain.ActionDescriptor, tier Tier, damage, energyCost int, attacker, defender string) string {
	switch {
	case desc.Kind == domain.KindDodge:
		return fmt.Sprintf("💨 %s esquive avec agilité ! (-%d%% énergie)", attacker, energyCost)
	case desc.Kind == domain.KindBlock:
		return fmt.Sprintf("🛡️ %s bloque ! %s subit %d%% de dégâts réduits.", attacker, defender, damage)
	case damage == 0:
		return fmt.Sprintf("❌ %s attaque vaguement. Aucun dégât ! (-%d%% énergie)", attacker, energyCost)
	case tier == TierHigh:
		return fmt.Sprintf("💥 TECHNIQUE DÉVASTATRICE ! %s inflige %d%% de dégâts à %s ! (-%d%% énergie)", attacker, damage, defender, energyCost)
	default:
		return fmt.Sprintf("⚔️ %s frappe %s pour %d%% de dégâts ! (-%d%% énergie)", attacker, defender, damage, energyCost)
	}
}
