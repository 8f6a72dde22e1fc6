package corpus

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canrag/internal/aliases"
	"canrag/internal/config"
	"canrag/internal/domain"
	"canrag/internal/loader"
)

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	return NewBuilder(loader.New(cfg), aliases.NewDefault(), cfg)
}

func testSources() *loader.Sources {
	return &loader.Sources{
		Matches: []domain.Match{
			{Number: "M1", HomeTeam: "Maroc", AwayTeam: "Mali", Score: "2-0", Stage: "Finale",
				HomeGoals: []domain.GoalEvent{{Scorer: "A", Minute: "10"}}},
			{Number: "M2", HomeTeam: "Sénégal", AwayTeam: "Égypte", Score: "1-1", Stage: "Groupe B"},
		},
		Teams:     []domain.Team{{Name: "Maroc", Participation: "20"}},
		Coaches:   []domain.Coach{{Country: "Maroc", Name: "Walid Regragui"}},
		Squads:    []domain.SquadRecord{{Team: "Maroc", Squad: domain.Squad{Goalkeepers: []domain.Player{{Name: "Bono"}}}}},
		Stadiums:  []domain.Stadium{{Name: "Stade Mohammed V", City: "Casablanca"}},
		Standings: []domain.StandingsGroup{{Name: "Groupe A", Rows: []domain.StandingsRow{{Rank: "1", Team: "Maroc"}}}},
	}
}

func TestBuildFromOrdersProcessorsAndConcatenates(t *testing.T) {
	docs := testBuilder(t).BuildFrom(testSources())

	// M1 is a final: detailed + summary + event. M2: detailed + summary.
	// One team: complete + summary. One goalkeeper: one card. One group,
	// one stadium.
	require.Len(t, docs, 10)

	types := make([]string, len(docs))
	for i, d := range docs {
		types[i] = d.Metadata["type"].(string)
	}
	assert.Equal(t, []string{
		"match_detailed", "match_summary", "event",
		"match_detailed", "match_summary",
		"team_complete", "team_summary",
		"player",
		"standings",
		"stadium",
	}, types)
}

func TestBuildFromEmptySources(t *testing.T) {
	docs := testBuilder(t).BuildFrom(&loader.Sources{})
	assert.Empty(t, docs)
}

func TestBuildLoadsFromDisk(t *testing.T) {
	// No data directory at all: every source degrades to empty and the
	// build yields an empty corpus instead of failing.
	docs := testBuilder(t).Build()
	assert.Empty(t, docs)
}

func TestBuildIsIdempotent(t *testing.T) {
	b := testBuilder(t)
	src := testSources()
	first := b.BuildFrom(src)
	second := b.BuildFrom(src)
	assert.Equal(t, first, second)
}

func TestStats(t *testing.T) {
	docs := testBuilder(t).BuildFrom(testSources())
	counts := Stats(docs)
	assert.Equal(t, 2, counts["match_detailed"])
	assert.Equal(t, 2, counts["match_summary"])
	assert.Equal(t, 1, counts["event"])
	assert.Equal(t, 1, counts["player"])

	line := StatsLine(docs)
	assert.Contains(t, line, "10 documents")
	assert.Contains(t, line, "event: 1")
}
