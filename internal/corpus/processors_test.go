package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canrag/internal/aliases"
	"canrag/internal/domain"
	"canrag/internal/loader"
)

func TestProcessMatchesGroupStage(t *testing.T) {
	reg := aliases.NewDefault()
	docs := ProcessMatches(reg, []domain.Match{sampleMatch()}, "matches.json")

	// Group-stage match: detailed + summary only.
	require.Len(t, docs, 2)
	detailed, summary := docs[0], docs[1]

	assert.Equal(t, "match_detailed", detailed.Metadata["type"])
	assert.Equal(t, "match_summary", summary.Metadata["type"])
	assert.Equal(t, []string{"Maroc", "Comores"}, detailed.Metadata["teams"])
	assert.Equal(t, "Maroc", detailed.Metadata["team_home"])
	assert.Equal(t, "Comores", detailed.Metadata["team_away"])
	assert.Equal(t, "2025-12-21", detailed.Metadata["date"])
	assert.Equal(t, "matches.json", detailed.Metadata["source"])

	// The summary copies the detailed metadata and overrides only the type.
	for _, key := range []string{"teams", "date", "stadium", "score", "match_number", "source"} {
		assert.Equal(t, detailed.Metadata[key], summary.Metadata[key], "key=%s", key)
	}
}

func TestProcessMatchesFinalEmitsEventDocument(t *testing.T) {
	reg := aliases.NewDefault()
	m := domain.Match{
		Number:    "M1",
		HomeTeam:  "Maroc",
		AwayTeam:  "Mali",
		Score:     "2-0",
		Stage:     "Finale",
		HomeGoals: []domain.GoalEvent{{Scorer: "A", Minute: "10"}},
	}

	docs := ProcessMatches(reg, []domain.Match{m}, "matches.json")
	require.Len(t, docs, 3)

	assert.Contains(t, docs[0].Content, "Maroc 2-0 Mali")
	assert.Contains(t, docs[0].Content, "10' - A")
	assert.Contains(t, docs[1].Content, "2-0")

	event := docs[2]
	assert.Equal(t, "event", event.Metadata["type"])
	assert.Equal(t, "finale", event.Metadata["event"])
	assert.Equal(t, "Finale", event.Metadata["phase"])
	assert.Equal(t, []string{"Maroc", "Mali"}, event.Metadata["teams"])
	assert.Contains(t, event.Content, "🏆 FINALE - CAN 2025")
	assert.Contains(t, event.Content, "⚽ Match : Maroc vs Mali")
}

func TestProcessMatchesStageCaseInsensitive(t *testing.T) {
	reg := aliases.NewDefault()
	for _, stage := range []string{"finale", "DEMI-FINALE", "Quart de Finale"} {
		m := domain.Match{Number: "M1", HomeTeam: "Maroc", Stage: stage}
		docs := ProcessMatches(reg, []domain.Match{m}, "matches.json")
		assert.Len(t, docs, 3, "stage=%q", stage)
	}
}

func TestProcessMatchesSkipsRecordWithoutHomeTeam(t *testing.T) {
	reg := aliases.NewDefault()
	docs := ProcessMatches(reg, []domain.Match{{Number: "M9", AwayTeam: "Mali"}}, "matches.json")
	assert.Empty(t, docs)
}

func TestProcessMatchesNormalizesAliasSpellings(t *testing.T) {
	reg := aliases.NewDefault()
	m := domain.Match{Number: "M1", HomeTeam: "Morocco", AwayTeam: "DR Congo"}
	docs := ProcessMatches(reg, []domain.Match{m}, "matches.json")
	require.Len(t, docs, 2)
	assert.Equal(t, []string{"Maroc", "RD Congo"}, docs[0].Metadata["teams"])
}

func TestProcessTeams(t *testing.T) {
	reg := aliases.NewDefault()
	src := &loader.Sources{
		Teams: []domain.Team{
			{Name: "Maroc", Participation: "20", BestResult: "Vainqueur (1976)"},
			{Name: ""}, // skipped: no join key
		},
		// Coach and squad use different alias spellings; the join is by
		// normalized name.
		Coaches: []domain.Coach{{Country: "Morocco", Name: "Walid Regragui"}},
		Squads: []domain.SquadRecord{{Team: "MAR", Squad: domain.Squad{
			Goalkeepers: []domain.Player{{Name: "Bono", Club: "Al-Hilal"}},
		}}},
	}

	docs := ProcessTeams(reg, src, testLimits())
	require.Len(t, docs, 2)

	complete, summary := docs[0], docs[1]
	assert.Equal(t, "team_complete", complete.Metadata["type"])
	assert.Equal(t, "Maroc", complete.Metadata["team_name"])
	assert.Equal(t, "multiple", complete.Metadata["source"])
	assert.Contains(t, complete.Content, "Walid Regragui")
	assert.Contains(t, complete.Content, "Bono")

	assert.Equal(t, "team_summary", summary.Metadata["type"])
	assert.Equal(t, complete.Metadata["team_name"], summary.Metadata["team_name"])
	assert.Equal(t, complete.Metadata["participation"], summary.Metadata["participation"])
	assert.Contains(t, summary.Content, "Sélectionneur: Walid Regragui.")
}

func TestProcessTeamsWithoutCrossReferences(t *testing.T) {
	reg := aliases.NewDefault()
	src := &loader.Sources{Teams: []domain.Team{{Name: "Bénin"}}}

	docs := ProcessTeams(reg, src, testLimits())
	require.Len(t, docs, 2)
	assert.NotContains(t, docs[0].Content, "SÉLECTIONNEUR")
	assert.NotContains(t, docs[0].Content, "EFFECTIF")
	assert.NotContains(t, docs[1].Content, "Sélectionneur")
}

func TestProcessPlayers(t *testing.T) {
	reg := aliases.NewDefault()
	squads := []domain.SquadRecord{
		{Team: "Morocco", Squad: domain.Squad{
			Goalkeepers: []domain.Player{{Name: "Bono", Club: "Al-Hilal"}},
			Midfielders: []domain.Player{{Name: "Amrabat", Club: "Fenerbahçe"}},
			Forwards:    []domain.Player{{Name: "En-Nesyri", Club: "Fenerbahçe"}},
		}},
		{Team: "", Squad: domain.Squad{Forwards: []domain.Player{{Name: "Ghost"}}}},
	}

	docs := ProcessPlayers(reg, squads, "joueurs_equipe.json")
	// The record without a team name produces nothing at all.
	require.Len(t, docs, 3)

	assert.Equal(t, "player", docs[0].Metadata["type"])
	assert.Equal(t, "Bono", docs[0].Metadata["player_name"])
	assert.Equal(t, "Maroc", docs[0].Metadata["team"])
	assert.Equal(t, "Gardien", docs[0].Metadata["position"])
	assert.Equal(t, "joueurs_equipe.json", docs[0].Metadata["source"])

	// Position groups keep their fixed order.
	assert.Equal(t, "Milieu", docs[1].Metadata["position"])
	assert.Equal(t, "Attaquant", docs[2].Metadata["position"])

	// The card keeps the source spelling; the metadata carries the
	// normalized name.
	assert.Contains(t, docs[0].Content, "Équipe: Morocco")
}

func TestProcessStandings(t *testing.T) {
	reg := aliases.NewDefault()
	groups := []domain.StandingsGroup{{
		Name: "Groupe B",
		Rows: []domain.StandingsRow{
			{Rank: "1", Team: "Egypt"},
			{Rank: "2", Team: "Ghana"},
		},
	}}

	docs := ProcessStandings(reg, groups, "classement_phase_groupe.json")
	require.Len(t, docs, 1)
	assert.Equal(t, "standings", docs[0].Metadata["type"])
	assert.Equal(t, "Groupe B", docs[0].Metadata["group"])
	// Known aliases normalize; unknown names pass through.
	assert.Equal(t, []string{"Égypte", "Ghana"}, docs[0].Metadata["teams"])
}

func TestProcessStadiums(t *testing.T) {
	docs := ProcessStadiums([]domain.Stadium{
		{Name: "Stade Mohammed V", City: "Casablanca", Capacity: "45891"},
	}, "stades.json")

	require.Len(t, docs, 1)
	assert.Equal(t, "stadium", docs[0].Metadata["type"])
	assert.Equal(t, "Stade Mohammed V", docs[0].Metadata["stadium_name"])
	assert.Equal(t, "Casablanca", docs[0].Metadata["city"])
	assert.Equal(t, "45891", docs[0].Metadata["capacity"])
}

func TestProcessorsDoNotMutateInputs(t *testing.T) {
	reg := aliases.NewDefault()
	m := sampleMatch()
	original := m
	_ = ProcessMatches(reg, []domain.Match{m}, "matches.json")
	assert.Equal(t, original, m)
}
