// Package interpreter turns a free-text combat action into a structured
// descriptor. There is no grammar: independent facet matchers scan the
// normalized text, each contributing a fixed number of specificity points.
package interpreter

import (
	"regexp"
	"strconv"
	"strings"

	"grandline-arena/internal/domain"
)

// Points contributed by each facet. Contributions are additive and
// facet-independent; the first match wins within a facet.
const (
	pointsMember    = 25
	pointsDistance  = 25
	pointsDirection = 15
	pointsTarget    = 25
	pointsTechnique = 20
)

var dodgeKeywords = []string{"esquive", "évite", "evite", "dodge"}

var blockKeywords = []string{"bloque", "pare", "défend", "defend"}

// memberVocabulary is scanned in order; an earlier entry beats a later one
// when several members are mentioned.
var memberVocabulary = []struct {
	keywords []string
	value    string
}{
	{[]string{"bras droit", "poing droit", "main droite"}, "bras droit"},
	{[]string{"bras gauche", "poing gauche", "main gauche"}, "bras gauche"},
	{[]string{"jambe droite", "pied droit"}, "jambe droite"},
	{[]string{"jambe gauche", "pied gauche"}, "jambe gauche"},
	{[]string{"sabre", "épée", "epee", "lame"}, "sabre"},
	{[]string{"tête", "tete", "front"}, "tête"},
}

var directions = []string{"avant", "arrière", "arriere", "gauche", "droite", "haut", "bas", "diagonal"}

// targetVocabulary deliberately overlaps memberVocabulary: "tête" can be
// both the striking member and the struck zone, and counts toward both.
var targetVocabulary = []struct {
	keywords []string
	value    string
}{
	{[]string{"tête", "tete", "visage", "crâne", "crane"}, "tête"},
	{[]string{"torse", "poitrine", "ventre", "abdomen"}, "torse"},
	{[]string{"jambe", "cuisse", "genou"}, "jambe"},
	{[]string{"bras", "épaule", "epaule", "coude"}, "bras"},
}

var techniqueKeywords = []string{"gomu gomu", "santoryu", "diable jambe"}

var (
	// A bare number is ignored; it only counts with a meter unit attached.
	distancePattern = regexp.MustCompile(`(\d+)\s*(m|mètre|metre)`)

	// Coarse check for a capitalized two-word phrase naming a technique.
	// Runs against the raw text since normalization loses the capitals.
	namedPhrasePattern = regexp.MustCompile(`\p{Lu}\p{Ll}+ \p{Lu}\p{Ll}+`)
)

// Interpret maps raw action text to an ActionDescriptor. Pure and
// deterministic: same text, same descriptor.
func Interpret(text string) domain.ActionDescriptor {
	desc := domain.ActionDescriptor{Kind: domain.KindAttack}
	lower := strings.ToLower(text)

	if containsAny(lower, dodgeKeywords) {
		desc.Kind = domain.KindDodge
	} else if containsAny(lower, blockKeywords) {
		desc.Kind = domain.KindBlock
	}

	for _, member := range memberVocabulary {
		if containsAny(lower, member.keywords) {
			desc.Member = member.value
			desc.Specificity += pointsMember
			break
		}
	}

	if m := distancePattern.FindStringSubmatch(lower); m != nil {
		if meters, err := strconv.Atoi(m[1]); err == nil {
			desc.DistanceMeters = meters
			desc.HasDistance = true
			desc.Specificity += pointsDistance
		}
	}

	for _, dir := range directions {
		if strings.Contains(lower, dir) {
			desc.Direction = dir
			desc.Specificity += pointsDirection
			break
		}
	}

	for _, target := range targetVocabulary {
		if containsAny(lower, target.keywords) {
			desc.TargetZone = target.value
			desc.Specificity += pointsTarget
			break
		}
	}

	if containsAny(lower, techniqueKeywords) || namedPhrasePattern.MatchString(text) {
		desc.NamedTechnique = true
		desc.Specificity += pointsTechnique
	}

	// An attack must at least identify the acting member; dodges and blocks
	// need no facet to be interpretable.
	desc.Valid = desc.Kind != domain.KindAttack || desc.Member != ""

	return desc
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
