// Package loader reads the raw JSON data sources. A missing or malformed
// source degrades to an empty record set with a logged warning: an absent
// optional source must never abort corpus building.
package loader

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/kataras/golog"

	"canrag/internal/config"
	"canrag/internal/domain"
)

// Sources holds every loaded record collection for one corpus build.
type Sources struct {
	Matches    []domain.Match
	Teams      []domain.Team
	Coaches    []domain.Coach
	Squads     []domain.SquadRecord
	Stadiums   []domain.Stadium
	Standings  []domain.StandingsGroup
	BestThirds []domain.StandingsGroup
}

// Empty reports whether no source yielded any record at all. Callers must
// check this explicitly: an all-empty load is not a successful build input.
func (s *Sources) Empty() bool {
	return len(s.Matches) == 0 && len(s.Teams) == 0 && len(s.Coaches) == 0 &&
		len(s.Squads) == 0 && len(s.Stadiums) == 0 && len(s.Standings) == 0 &&
		len(s.BestThirds) == 0
}

// Loader reads record collections from a data directory.
type Loader struct {
	dir   string
	files config.SourceFiles
}

// New creates a loader over the configured data directory.
func New(cfg *config.AppConfig) *Loader {
	return &Loader{dir: cfg.Data.Dir, files: cfg.Data.Files}
}

// LoadAll eagerly reads every source. Each source loads independently; a
// failure in one does not block the others.
func (l *Loader) LoadAll() *Sources {
	return &Sources{
		Matches:    loadJSON[domain.Match](l.dir, l.files.Matches),
		Teams:      loadJSON[domain.Team](l.dir, l.files.Teams),
		Coaches:    loadJSON[domain.Coach](l.dir, l.files.Coaches),
		Squads:     loadJSON[domain.SquadRecord](l.dir, l.files.Squads),
		Stadiums:   loadJSON[domain.Stadium](l.dir, l.files.Stadiums),
		Standings:  loadJSON[domain.StandingsGroup](l.dir, l.files.Standings),
		BestThirds: loadJSON[domain.StandingsGroup](l.dir, l.files.BestThirds),
	}
}

func loadJSON[T any](dir, file string) []T {
	path := filepath.Join(dir, file)
	data, err := os.ReadFile(path)
	if err != nil {
		golog.Warnf("source %s unavailable: %v", path, err)
		return nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		golog.Warnf("source %s unreadable: %v", path, err)
		return nil
	}
	return records
}
