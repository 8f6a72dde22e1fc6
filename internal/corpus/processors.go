package corpus

import (
	"maps"

	"canrag/internal/aliases"
	"canrag/internal/config"
	"canrag/internal/domain"
	"canrag/internal/loader"
)

// ProcessMatches emits up to three documents per match: the detailed sheet,
// the one-line summary sharing the detailed metadata, and for knockout
// stages a standalone event announcement. Records without a home team are
// skipped.
func ProcessMatches(reg *aliases.Registry, matches []domain.Match, source string) []domain.Document {
	var docs []domain.Document
	for _, m := range matches {
		if m.HomeTeam == "" {
			continue
		}

		teams := []string{reg.Normalize(m.HomeTeam), reg.Normalize(m.AwayTeam)}
		detailed := map[string]any{
			"type":         "match_detailed",
			"match_number": orNA(m.Number),
			"phase":        orNA(m.Phase),
			"group":        orNA(m.Stage),
			"team_home":    teams[0],
			"team_away":    teams[1],
			"teams":        teams,
			"date":         matchDate(m),
			"stadium":      orNA(m.Stadium),
			"score":        orDash(m.Score),
			"source":       source,
		}
		docs = append(docs, domain.Document{Content: FormatMatchDetailed(m), Metadata: detailed})

		summary := maps.Clone(detailed)
		summary["type"] = "match_summary"
		docs = append(docs, domain.Document{Content: FormatMatchSummary(m), Metadata: summary})

		if IsKnockoutStage(m.Stage) {
			docs = append(docs, domain.Document{
				Content: FormatMatchEvent(m),
				Metadata: map[string]any{
					"type":    "event",
					"event":   EventTag(m.Stage),
					"phase":   m.Stage,
					"date":    m.DateISO,
					"teams":   append([]string(nil), teams...),
					"stadium": m.Stadium,
					"source":  source,
				},
			})
		}
	}
	return docs
}

// ProcessTeams emits two documents per team record (complete and summary),
// cross-referencing coach and squad records by normalized name. Records
// without a team name are skipped; a missing cross-reference just omits the
// corresponding section.
func ProcessTeams(reg *aliases.Registry, src *loader.Sources, limits config.CorpusConfig) []domain.Document {
	coachByTeam := make(map[string]*domain.Coach, len(src.Coaches))
	for i := range src.Coaches {
		key := reg.Normalize(src.Coaches[i].Country)
		if _, ok := coachByTeam[key]; !ok {
			coachByTeam[key] = &src.Coaches[i]
		}
	}
	squadByTeam := make(map[string]*domain.SquadRecord, len(src.Squads))
	for i := range src.Squads {
		key := reg.Normalize(src.Squads[i].Team)
		if _, ok := squadByTeam[key]; !ok {
			squadByTeam[key] = &src.Squads[i]
		}
	}

	var docs []domain.Document
	for _, team := range src.Teams {
		if team.Name == "" {
			continue
		}
		normalized := reg.Normalize(team.Name)
		coach := coachByTeam[normalized]
		squad := squadByTeam[normalized]

		complete := map[string]any{
			"type":          "team_complete",
			"team_name":     normalized,
			"team_aliases":  reg.AliasesOf(team.Name),
			"participation": orNA(team.Participation.String()),
			"best_result":   orNA(team.BestResult),
			"source":        "multiple",
		}
		docs = append(docs, domain.Document{
			Content:  FormatTeamComplete(reg, team.Name, team, coach, squad, limits),
			Metadata: complete,
		})

		summary := maps.Clone(complete)
		summary["type"] = "team_summary"
		docs = append(docs, domain.Document{
			Content:  FormatTeamSummary(team.Name, team, coach),
			Metadata: summary,
		})
	}
	return docs
}

// positionGroups fixes the rendering order and French labels of the four
// squad position groups.
var positionGroups = []struct {
	label   string
	players func(domain.Squad) []domain.Player
}{
	{"Gardien", func(s domain.Squad) []domain.Player { return s.Goalkeepers }},
	{"Défenseur", func(s domain.Squad) []domain.Player { return s.Defenders }},
	{"Milieu", func(s domain.Squad) []domain.Player { return s.Midfielders }},
	{"Attaquant", func(s domain.Squad) []domain.Player { return s.Forwards }},
}

// ProcessPlayers emits one card document per player per position group.
// Squad records without a team name are skipped entirely.
func ProcessPlayers(reg *aliases.Registry, squads []domain.SquadRecord, source string) []domain.Document {
	var docs []domain.Document
	for _, record := range squads {
		if record.Team == "" {
			continue
		}
		normalized := reg.Normalize(record.Team)
		for _, group := range positionGroups {
			for _, p := range group.players(record.Squad) {
				docs = append(docs, domain.Document{
					Content: FormatPlayerCard(p, record.Team, group.label),
					Metadata: map[string]any{
						"type":        "player",
						"player_name": orNA(p.Name),
						"team":        normalized,
						"position":    group.label,
						"club":        orNA(p.Club),
						"source":      source,
					},
				})
			}
		}
	}
	return docs
}

// ProcessStandings emits one document per group table.
func ProcessStandings(reg *aliases.Registry, groups []domain.StandingsGroup, source string) []domain.Document {
	var docs []domain.Document
	for _, g := range groups {
		teams := make([]string, 0, len(g.Rows))
		for _, row := range g.Rows {
			teams = append(teams, reg.Normalize(row.Team))
		}
		docs = append(docs, domain.Document{
			Content: FormatGroupStandings(g),
			Metadata: map[string]any{
				"type":   "standings",
				"group":  orNA(g.Name),
				"teams":  teams,
				"source": source,
			},
		})
	}
	return docs
}

// ProcessStadiums emits one document per venue record.
func ProcessStadiums(stadiums []domain.Stadium, source string) []domain.Document {
	var docs []domain.Document
	for _, s := range stadiums {
		docs = append(docs, domain.Document{
			Content: FormatStadiumInfo(s),
			Metadata: map[string]any{
				"type":         "stadium",
				"stadium_name": orNA(s.Name),
				"city":         orNA(s.City),
				"capacity":     orNA(s.Capacity.String()),
				"source":       source,
			},
		})
	}
	return docs
}

func matchDate(m domain.Match) string {
	if m.DateISO != "" {
		return m.DateISO
	}
	return orNA(m.Date)
}
