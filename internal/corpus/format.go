// Package corpus turns raw tournament records into the retrievable document
// corpus: one formatter and one processor per entity kind, plus the builder
// that runs them all and the export/filter helpers.
package corpus

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"canrag/internal/aliases"
	"canrag/internal/config"
	"canrag/internal/domain"
)

const sectionRule = "═══════════════════════════════════════════════════════════"

// maxAliasesShown caps the alias list rendered in a team document.
const maxAliasesShown = 3

// knockoutStages are the stage labels that get a standalone event document.
var knockoutStages = map[string]bool{
	"finale":          true,
	"demi-finale":     true,
	"quart de finale": true,
}

// IsKnockoutStage reports whether a stage label yields an event document.
// Matching is case-insensitive.
func IsKnockoutStage(stage string) bool {
	return knockoutStages[strings.ToLower(stage)]
}

// EventTag derives the event metadata value from a stage label.
func EventTag(stage string) string {
	return strings.ReplaceAll(strings.ToLower(stage), " ", "_")
}

// FormatMatchDetailed renders the full match sheet: header, context lines,
// final score, goals and discipline sections.
func FormatMatchDetailed(m domain.Match) string {
	home := orNA(m.HomeTeam)
	away := orNA(m.AwayTeam)

	var b strings.Builder
	b.WriteString(sectionRule + "\n")
	fmt.Fprintf(&b, "⚽ MATCH CAN 2025 - %s\n", orNA(m.Number))
	b.WriteString(sectionRule + "\n\n")

	fmt.Fprintf(&b, "📅 Date: %s\n", orNA(m.Date))
	fmt.Fprintf(&b, "🏆 Phase: %s - %s\n", orNA(m.Phase), m.Stage)
	fmt.Fprintf(&b, "🏟️ Stade: %s\n", orNA(m.Stadium))
	fmt.Fprintf(&b, "👥 Affluence: %s spectateurs\n", orNA(m.Attendance.String()))
	fmt.Fprintf(&b, "⚖️ Arbitre: %s\n\n", orNA(m.Referee))

	b.WriteString("📊 RÉSULTAT FINAL\n")
	fmt.Fprintf(&b, "%s %s %s\n\n", home, orDash(m.Score), away)

	b.WriteString("⚽ BUTS MARQUÉS\n")
	if len(m.HomeGoals) > 0 || len(m.AwayGoals) > 0 {
		writeGoals(&b, m.HomeGoals, home)
		writeGoals(&b, m.AwayGoals, away)
	} else {
		b.WriteString("  Aucun but marqué (0-0)\n")
	}

	b.WriteString("\n🟨 DISCIPLINE\n")
	if len(m.HomeCards) > 0 || len(m.AwayCards) > 0 {
		writeCards(&b, m.HomeCards, home)
		writeCards(&b, m.AwayCards, away)
	} else {
		b.WriteString("  Aucun carton distribué\n")
	}

	b.WriteString("\n" + sectionRule)
	return b.String()
}

func writeGoals(b *strings.Builder, goals []domain.GoalEvent, team string) {
	for _, g := range goals {
		assist := ""
		if g.Assist != "" {
			assist = fmt.Sprintf(" (passe: %s)", g.Assist)
		}
		kind := ""
		if g.Type != "" && g.Type != "normal" {
			kind = fmt.Sprintf(" [%s]", g.Type)
		}
		fmt.Fprintf(b, "  ⚽ %s' - %s (%s)%s%s\n", g.Minute, g.Scorer, team, assist, kind)
	}
}

func writeCards(b *strings.Builder, cards []domain.CardEvent, team string) {
	for _, c := range cards {
		marker := "🟨"
		if c.Type == "rouge" {
			marker = "🟥"
		}
		fmt.Fprintf(b, "  %s %s' - %s (%s)\n", marker, c.Minute, c.Player, team)
	}
}

// FormatMatchSummary renders the one-line match digest.
func FormatMatchSummary(m domain.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Match CAN 2025 - %s: ", m.Number)
	fmt.Fprintf(&b, "%s %s %s ", orNA(m.HomeTeam), orDash(m.Score), orNA(m.AwayTeam))
	fmt.Fprintf(&b, "(%s, %s)", orNA(m.Date), orNA(m.Stadium))

	var scorers []string
	for _, g := range m.HomeGoals {
		scorers = append(scorers, fmt.Sprintf("%s %s'", g.Scorer, g.Minute))
	}
	for _, g := range m.AwayGoals {
		scorers = append(scorers, fmt.Sprintf("%s %s'", g.Scorer, g.Minute))
	}
	if len(scorers) > 0 {
		fmt.Fprintf(&b, " | Buteurs: %s", strings.Join(scorers, ", "))
	}
	return b.String()
}

// FormatMatchEvent renders the standalone knockout-stage announcement.
func FormatMatchEvent(m domain.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏆 %s - CAN 2025\n\n", strings.ToUpper(m.Stage))
	fmt.Fprintf(&b, "📅 Date : %s\n", m.Date)
	fmt.Fprintf(&b, "🏟️ Stade : %s\n", m.Stadium)
	fmt.Fprintf(&b, "⚽ Match : %s vs %s\n", m.HomeTeam, m.AwayTeam)
	fmt.Fprintf(&b, "🆔 Match : %s", m.Number)
	return b.String()
}

// FormatTeamComplete renders the cross-referenced team sheet. info may be the
// zero value and coach/squad may be nil; the corresponding fields render as
// "N/A" and the corresponding sections are omitted.
func FormatTeamComplete(reg *aliases.Registry, teamName string, info domain.Team, coach *domain.Coach, squad *domain.SquadRecord, limits config.CorpusConfig) string {
	var b strings.Builder
	b.WriteString(sectionRule + "\n")
	fmt.Fprintf(&b, "🏆 %s - CAN 2025\n", strings.ToUpper(teamName))
	b.WriteString(sectionRule + "\n\n")

	b.WriteString("📋 INFORMATIONS GÉNÉRALES\n")
	names := reg.AliasesOf(teamName)
	if len(names) > maxAliasesShown {
		names = names[:maxAliasesShown]
	}
	fmt.Fprintf(&b, "Noms: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Participation: %s\n", orNA(info.Participation.String()))
	fmt.Fprintf(&b, "Première participation: %s\n", orNA(info.FirstParticipation))
	fmt.Fprintf(&b, "Dernière participation: %s\n", orNA(info.LastParticipation))
	fmt.Fprintf(&b, "Qualification: %s\n", orNA(info.QualificationMethod))
	fmt.Fprintf(&b, "Date de qualification: %s\n\n", orNA(info.QualificationDate))

	b.WriteString("🏆 PALMARÈS\n")
	fmt.Fprintf(&b, "Meilleur résultat: %s\n", orNA(info.BestResult))
	fmt.Fprintf(&b, "Participations précédentes: %s\n\n", Truncate(orNA(info.PastAppearances), limits.AppearancesLimit))

	if coach != nil {
		b.WriteString("👔 SÉLECTIONNEUR\n")
		fmt.Fprintf(&b, "Nom: %s\n", orNA(coach.Name))
		fmt.Fprintf(&b, "Catégorie: %s\n", orNA(coach.Category))
		if coach.Details != "" {
			fmt.Fprintf(&b, "Détails: %s\n", Truncate(coach.Details, limits.CoachDetailsLimit))
		}
		b.WriteString("\n")
	}

	if squad != nil {
		s := squad.Squad
		total := len(s.Goalkeepers) + len(s.Defenders) + len(s.Midfielders) + len(s.Forwards)
		fmt.Fprintf(&b, "👥 EFFECTIF COMPLET (%d joueurs)\n\n", total)
		writePositionSection(&b, "GARDIENS", s.Goalkeepers, false)
		writePositionSection(&b, "DÉFENSEURS", s.Defenders, true)
		writePositionSection(&b, "MILIEUX", s.Midfielders, true)
		writePositionSection(&b, "ATTAQUANTS", s.Forwards, true)
		b.WriteString("\n")
	}

	b.WriteString(sectionRule)
	return b.String()
}

func writePositionSection(b *strings.Builder, label string, players []domain.Player, leadingBlank bool) {
	if leadingBlank {
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "═══ %s (%d) ═══\n", label, len(players))
	for i, p := range players {
		fmt.Fprintf(b, "%d. %s - %s\n", i+1, orNA(p.Name), orNA(p.Club))
	}
}

// FormatTeamSummary renders the one-line team digest.
func FormatTeamSummary(teamName string, info domain.Team, coach *domain.Coach) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s participation(s). ", teamName, orNA(info.Participation.String()))
	fmt.Fprintf(&b, "Meilleur résultat: %s. ", orNA(info.BestResult))
	if coach != nil {
		fmt.Fprintf(&b, "Sélectionneur: %s.", orNA(coach.Name))
	}
	return b.String()
}

// FormatPlayerCard renders one player's card.
func FormatPlayerCard(p domain.Player, teamName, position string) string {
	var b strings.Builder
	b.WriteString("👤 FICHE JOUEUR - CAN 2025\n\n")
	fmt.Fprintf(&b, "Nom: %s\n", orNA(p.Name))
	fmt.Fprintf(&b, "Équipe: %s\n", teamName)
	fmt.Fprintf(&b, "Poste: %s\n", position)
	fmt.Fprintf(&b, "Club: %s\n", orNA(p.Club))
	return b.String()
}

// FormatGroupStandings renders one group table with fixed-width columns.
func FormatGroupStandings(g domain.StandingsGroup) string {
	var b strings.Builder
	b.WriteString(sectionRule + "\n")
	fmt.Fprintf(&b, "📊 CLASSEMENT CAN 2025 - %s\n", orNA(g.Name))
	b.WriteString(sectionRule + "\n\n")

	b.WriteString(pad("Rang", 6) + pad("Équipe", 20) + pad("Pts", 6) +
		pad("J", 4) + pad("G", 4) + pad("N", 4) + pad("P", 4) +
		pad("BP", 5) + pad("BC", 5) + "Diff\n")
	b.WriteString(strings.Repeat("-", 75) + "\n")

	for _, row := range g.Rows {
		b.WriteString(pad(row.Rank.String(), 6))
		b.WriteString(pad(orNA(row.Team), 20))
		b.WriteString(pad(orZero(row.Points), 6))
		b.WriteString(pad(orZero(row.Played), 4))
		b.WriteString(pad(orZero(row.Won), 4))
		b.WriteString(pad(orZero(row.Drawn), 4))
		b.WriteString(pad(orZero(row.Lost), 4))
		b.WriteString(pad(orZero(row.GoalsFor), 5))
		b.WriteString(pad(orZero(row.GoalsAgainst), 5))
		b.WriteString(orZero(row.Difference) + "\n")
	}

	b.WriteString("\n" + sectionRule)
	return b.String()
}

// FormatStadiumInfo renders one venue card.
func FormatStadiumInfo(s domain.Stadium) string {
	var b strings.Builder
	b.WriteString("🏟️ STADE CAN 2025\n\n")
	fmt.Fprintf(&b, "Nom: %s\n", orNA(s.Name))
	fmt.Fprintf(&b, "Ville: %s\n", orNA(s.City))
	fmt.Fprintf(&b, "Capacité: %s spectateurs\n", orNA(s.Capacity.String()))
	return b.String()
}

// Truncate bounds a free-text field to limit runes, appending "..." when cut.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}

// orNA is the single place absent values become "N/A" at render time.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orZero(f domain.FlexString) string {
	if f == "" {
		return "0"
	}
	return f.String()
}

// pad left-aligns s in a field of width runes. Overlong values are kept whole.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
