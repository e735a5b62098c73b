package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grandline-arena/internal/domain"
)

func TestInterpret_FullySpecifiedAttack(t *testing.T) {
	desc := Interpret("je frappe avec mon bras droit le torse de l'adversaire à 2 mètres")

	assert.Equal(t, domain.KindAttack, desc.Kind)
	assert.Equal(t, "bras droit", desc.Member)
	assert.True(t, desc.HasDistance)
	assert.Equal(t, 2, desc.DistanceMeters)
	assert.Equal(t, "torse", desc.TargetZone)
	assert.True(t, desc.Valid)
	assert.GreaterOrEqual(t, desc.Specificity, 75)
}

func TestInterpret_AttackWithoutMemberIsInvalid(t *testing.T) {
	desc := Interpret("j'attaque")

	assert.Equal(t, domain.KindAttack, desc.Kind)
	assert.Empty(t, desc.Member)
	assert.False(t, desc.Valid)
}

func TestInterpret_EmptyTextIsInvalidAttack(t *testing.T) {
	desc := Interpret("")

	assert.Equal(t, domain.KindAttack, desc.Kind)
	assert.False(t, desc.Valid)
	assert.Zero(t, desc.Specificity)
}

func TestInterpret_CaseInsensitive(t *testing.T) {
	lower := Interpret("coup de sabre au torse")
	upper := Interpret("COUP DE SABRE AU TORSE")

	assert.Equal(t, lower.Member, upper.Member)
	assert.Equal(t, lower.TargetZone, upper.TargetZone)
	assert.Equal(t, lower.Specificity, upper.Specificity)
}

func TestInterpret_DodgeNeedsNoMember(t *testing.T) {
	desc := Interpret("j'esquive")

	assert.Equal(t, domain.KindDodge, desc.Kind)
	assert.Empty(t, desc.Member)
	assert.True(t, desc.Valid)
}

func TestInterpret_BlockNeedsNoMember(t *testing.T) {
	desc := Interpret("je bloque le coup")

	assert.Equal(t, domain.KindBlock, desc.Kind)
	assert.True(t, desc.Valid)
}

func TestInterpret_NumberWithoutUnitIgnored(t *testing.T) {
	desc := Interpret("je frappe avec mon sabre 3 fois")

	assert.False(t, desc.HasDistance)
	assert.Zero(t, desc.DistanceMeters)
}

func TestInterpret_NumberWithUnitCounted(t *testing.T) {
	withUnit := Interpret("je frappe avec mon sabre à 3 mètres")
	withoutUnit := Interpret("je frappe avec mon sabre")

	assert.True(t, withUnit.HasDistance)
	assert.Equal(t, 3, withUnit.DistanceMeters)
	assert.Equal(t, withoutUnit.Specificity+25, withUnit.Specificity)
}

func TestInterpret_MemberPriorityFirstWins(t *testing.T) {
	// Both arms are mentioned; the priority order keeps the right one.
	desc := Interpret("je frappe avec mon bras droit puis mon bras gauche")

	assert.Equal(t, "bras droit", desc.Member)
}

func TestInterpret_OverlappingMemberAndTargetVocabulary(t *testing.T) {
	// "tête" counts both as the striking member and the target zone.
	desc := Interpret("coup de tête")

	assert.Equal(t, "tête", desc.Member)
	assert.Equal(t, "tête", desc.TargetZone)
	assert.Equal(t, 50, desc.Specificity)
}

func TestInterpret_KnownTechniqueKeyword(t *testing.T) {
	desc := Interpret("gomu gomu no pistol avec mon bras droit")

	assert.True(t, desc.NamedTechnique)
}

func TestInterpret_CapitalizedTwoWordPhrase(t *testing.T) {
	desc := Interpret("je lance Oni Giri avec mon sabre")

	assert.True(t, desc.NamedTechnique)
}

func TestInterpret_NoTechniqueInPlainLowercase(t *testing.T) {
	desc := Interpret("je frappe avec mon sabre")

	assert.False(t, desc.NamedTechnique)
}

func TestInterpret_DirectionFacet(t *testing.T) {
	desc := Interpret("je frappe vers l'avant avec mon sabre")

	assert.Equal(t, "avant", desc.Direction)
}

func TestInterpret_Deterministic(t *testing.T) {
	text := "je frappe avec mon bras droit le torse à 2 mètres"
	first := Interpret(text)
	second := Interpret(text)

	assert.Equal(t, first, second)
}
