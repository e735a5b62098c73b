package service

import (
	"fmt"
	"strings"

	"grandline-arena/internal/domain"
)

// statusFrame renders the per-turn broadcast: both combatants' health and
// energy bars, whose turn it is and the recent narrative. Callers hold the
// match lock.
func statusFrame(match *domain.Match) string {
	var b strings.Builder

	fmt.Fprintf(&b, "⚔️ ARÈNE - Round %d\n\n", match.Round)
	writeCombatant(&b, match.CombatantA)
	b.WriteString("\n")
	writeCombatant(&b, match.CombatantB)

	current := match.Current()
	fmt.Fprintf(&b, "\n🎯 Tour de: %s\n", current.Name)

	if recent := match.RecentLog(domain.LogDisplayLines); len(recent) > 0 {
		b.WriteString("\n📜 Dernières actions:\n")
		b.WriteString(strings.Join(recent, "\n"))
	}

	return b.String()
}

func writeCombatant(b *strings.Builder, c domain.Combatant) {
	fmt.Fprintf(b, "%s:\n❤️ %s %d%%\n⚡ %s %d%%\n",
		c.Name, gauge(c.Health), c.Health, gauge(c.Energy), c.Energy)
}

// gauge renders a ten-segment bar for a value in [0,100].
func gauge(value int) string {
	filled := value / 10
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", 10-filled)
}

// turnPrompt is sent to the participant whose turn just started.
func turnPrompt(c domain.Combatant) string {
	return fmt.Sprintf(
		"🕐 TON TOUR COMMENCE !\n\n⏱️ Tu as 5 minutes pour écrire ton action.\n\n📝 Décris précisément ton attaque (membre, distance, direction, cible).\n\n❤️ Vie: %s %d%%\n⚡ Énergie: %s %d%%",
		gauge(c.Health), c.Health, gauge(c.Energy), c.Energy)
}
