// Package aliases resolves the many surface forms of a team name (official
// name, translations, country code, nickname) to a single canonical name.
// This is the join key for cross-referencing team, coach and squad records
// that spell names inconsistently.
package aliases

import (
	"sort"
	"strings"
)

// Entry maps a canonical team name to its known variants.
type Entry struct {
	Canonical string
	Aliases   []string
}

// Registry is an ordered alias table. Lookup order is the entry order, so
// normalization is deterministic.
type Registry struct {
	entries []Entry
}

// New builds a registry from ordered entries. Every entry is guaranteed to
// contain its own canonical name among its aliases.
func New(entries []Entry) *Registry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Canonical == "" {
			continue
		}
		if !contains(e.Aliases, e.Canonical) {
			e.Aliases = append([]string{e.Canonical}, e.Aliases...)
		}
		out = append(out, e)
	}
	return &Registry{entries: out}
}

// FromMap builds a registry from an unordered table (e.g. YAML config),
// sorting canonical names for a stable lookup order.
func FromMap(table map[string][]string) *Registry {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Canonical: k, Aliases: table[k]})
	}
	return New(entries)
}

// NewDefault returns a registry over the built-in tournament alias table.
func NewDefault() *Registry {
	return New(defaultTable())
}

// Normalize resolves a raw name to its canonical form. Unknown names pass
// through trimmed: they become their own canonical bucket. Matching is exact
// after trimming, case- and accent-sensitive.
func (r *Registry) Normalize(raw string) string {
	clean := strings.TrimSpace(raw)
	for _, e := range r.entries {
		if contains(e.Aliases, clean) {
			return e.Canonical
		}
	}
	return clean
}

// AliasesOf returns every known variant of a name, or a singleton list when
// the name is not in the table.
func (r *Registry) AliasesOf(raw string) []string {
	clean := strings.TrimSpace(raw)
	for _, e := range r.entries {
		if contains(e.Aliases, clean) {
			return append([]string(nil), e.Aliases...)
		}
	}
	return []string{clean}
}

// Canonicals returns the canonical names in lookup order.
func (r *Registry) Canonicals() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Canonical
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func defaultTable() []Entry {
	return []Entry{
		{Canonical: "Maroc", Aliases: []string{"Maroc", "Morocco", "MAR", "Lions de l'Atlas", "Al Maghrib"}},
		{Canonical: "Burkina Faso", Aliases: []string{"Burkina Faso", "Burkina", "BFA", "Étalons"}},
		{Canonical: "Cameroun", Aliases: []string{"Cameroun", "Cameroon", "CMR", "Lions Indomptables"}},
		{Canonical: "Algérie", Aliases: []string{"Algérie", "Algeria", "ALG", "Fennecs"}},
		{Canonical: "RD Congo", Aliases: []string{"RD Congo", "RDC", "DR Congo", "Congo DR", "COD", "Léopards"}},
		{Canonical: "Sénégal", Aliases: []string{"Sénégal", "Senegal", "SEN", "Lions de la Teranga"}},
		{Canonical: "Égypte", Aliases: []string{"Égypte", "Egypt", "EGY", "Pharaons"}},
		{Canonical: "Angola", Aliases: []string{"Angola", "ANG", "Palancas Negras"}},
		{Canonical: "Guinée équatoriale", Aliases: []string{"Guinée équatoriale", "Equatorial Guinea", "GEQ", "EQG", "Nzalang Nacional"}},
		{Canonical: "Côte d'Ivoire", Aliases: []string{"Côte d'Ivoire", "Ivory Coast", "CIV", "Éléphants"}},
		{Canonical: "Gabon", Aliases: []string{"Gabon", "GAB", "Panthères"}},
		{Canonical: "Ouganda", Aliases: []string{"Ouganda", "Uganda", "UGA", "Cranes"}},
		{Canonical: "Afrique du Sud", Aliases: []string{"Afrique du Sud", "South Africa", "RSA", "Bafana Bafana"}},
		{Canonical: "Tunisie", Aliases: []string{"Tunisie", "Tunisia", "TUN", "Aigles de Carthage"}},
		{Canonical: "Nigeria", Aliases: []string{"Nigeria", "NGA", "Super Eagles"}},
		{Canonical: "Mali", Aliases: []string{"Mali", "MLI", "Aigles du Mali"}},
		{Canonical: "Zambie", Aliases: []string{"Zambie", "Zambia", "ZAM", "Chipolopolo"}},
		{Canonical: "Zimbabwe", Aliases: []string{"Zimbabwe", "ZIM", "Warriors"}},
		{Canonical: "Comores", Aliases: []string{"Comores", "Comoros", "COM", "Cœlacanthes"}},
		{Canonical: "Soudan", Aliases: []string{"Soudan", "Sudan", "SDN", "Faucons de Jediane"}},
		{Canonical: "Bénin", Aliases: []string{"Bénin", "Benin", "BEN", "Guépards"}},
		{Canonical: "Tanzanie", Aliases: []string{"Tanzanie", "Tanzania", "TAN", "Taifa Stars"}},
		{Canonical: "Botswana", Aliases: []string{"Botswana", "BOT", "Zebras"}},
		{Canonical: "Mozambique", Aliases: []string{"Mozambique", "MOZ", "Mambas"}},
	}
}
