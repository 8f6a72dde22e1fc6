package corpus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kataras/golog"

	"canrag/internal/aliases"
	"canrag/internal/config"
	"canrag/internal/domain"
	"canrag/internal/loader"
)

// Builder runs every processor over the loaded sources in a fixed order and
// concatenates their output into one corpus. Building never mutates the
// input records and holds no state between invocations, so it is safe to
// rebuild on a schedule while an older corpus stays servable.
type Builder struct {
	loader *loader.Loader
	reg    *aliases.Registry
	cfg    *config.AppConfig
}

// NewBuilder wires a builder over a loader, an alias registry and the
// application config.
func NewBuilder(l *loader.Loader, reg *aliases.Registry, cfg *config.AppConfig) *Builder {
	return &Builder{loader: l, reg: reg, cfg: cfg}
}

// Build loads every source and produces the full ordered corpus.
func (b *Builder) Build() []domain.Document {
	return b.BuildFrom(b.loader.LoadAll())
}

// BuildFrom produces the corpus from already loaded sources. Processor order
// is fixed: matches, teams, players, standings, stadiums. Documents are not
// deduplicated across processors.
func (b *Builder) BuildFrom(src *loader.Sources) []domain.Document {
	files := b.cfg.Data.Files

	matchDocs := ProcessMatches(b.reg, src.Matches, files.Matches)
	golog.Infof("matches: %d documents", len(matchDocs))

	teamDocs := ProcessTeams(b.reg, src, b.cfg.Corpus)
	golog.Infof("teams: %d documents", len(teamDocs))

	playerDocs := ProcessPlayers(b.reg, src.Squads, files.Squads)
	golog.Infof("players: %d documents", len(playerDocs))

	standingDocs := ProcessStandings(b.reg, src.Standings, files.Standings)
	golog.Infof("standings: %d documents", len(standingDocs))

	stadiumDocs := ProcessStadiums(src.Stadiums, files.Stadiums)
	golog.Infof("stadiums: %d documents", len(stadiumDocs))

	docs := make([]domain.Document, 0,
		len(matchDocs)+len(teamDocs)+len(playerDocs)+len(standingDocs)+len(stadiumDocs))
	docs = append(docs, matchDocs...)
	docs = append(docs, teamDocs...)
	docs = append(docs, playerDocs...)
	docs = append(docs, standingDocs...)
	docs = append(docs, stadiumDocs...)

	golog.Infof("corpus built: %d documents", len(docs))
	return docs
}

// Stats counts documents per type tag.
func Stats(docs []domain.Document) map[string]int {
	counts := make(map[string]int)
	for _, d := range docs {
		t, _ := d.Metadata["type"].(string)
		if t == "" {
			t = "unknown"
		}
		counts[t]++
	}
	return counts
}

// StatsLine renders a one-line corpus summary, types sorted alphabetically.
func StatsLine(docs []domain.Document) string {
	counts := Stats(docs)
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s: %d", t, counts[t]))
	}
	return fmt.Sprintf("%d documents (%s)", len(docs), strings.Join(parts, ", "))
}
