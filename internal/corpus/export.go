package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"canrag/internal/aliases"
	"canrag/internal/domain"
)

// ExportText writes the whole corpus to a plain-text file for inspection:
// one numbered section per document with its type, content and
// pretty-printed metadata. Diagnostic only, never read back at query time.
func ExportText(docs []domain.Document, path string) error {
	var b strings.Builder
	bar := strings.Repeat("=", 80)
	for i, doc := range docs {
		docType, _ := doc.Metadata["type"].(string)
		if docType == "" {
			docType = "unknown"
		}
		fmt.Fprintf(&b, "\n%s\n", bar)
		fmt.Fprintf(&b, "DOCUMENT %d/%d\n", i+1, len(docs))
		fmt.Fprintf(&b, "Type: %s\n", docType)
		fmt.Fprintf(&b, "%s\n\n", bar)
		b.WriteString(doc.Content)
		meta, err := marshalMetadata(doc.Metadata)
		if err != nil {
			return fmt.Errorf("export document %d: %w", i+1, err)
		}
		fmt.Fprintf(&b, "\n\nMÉTADONNÉES:\n%s\n", meta)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// marshalMetadata pretty-prints metadata without escaping the accented
// characters the data is full of.
func marshalMetadata(md map[string]any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(md); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// FilterByType returns the documents whose type tag equals docType.
func FilterByType(docs []domain.Document, docType string) []domain.Document {
	var out []domain.Document
	for _, d := range docs {
		if t, _ := d.Metadata["type"].(string); t == docType {
			out = append(out, d)
		}
	}
	return out
}

// FilterByTeam returns every document related to a team, whatever alias the
// caller used. It matches the three team-key shapes the processors emit:
// team_name (team docs), teams (match and standings docs), team (player docs).
func FilterByTeam(reg *aliases.Registry, docs []domain.Document, rawTeam string) []domain.Document {
	normalized := reg.Normalize(rawTeam)
	var out []domain.Document
	for _, d := range docs {
		if name, _ := d.Metadata["team_name"].(string); name == normalized {
			out = append(out, d)
			continue
		}
		if metadataListContains(d.Metadata["teams"], normalized) {
			out = append(out, d)
			continue
		}
		if team, _ := d.Metadata["team"].(string); team == normalized {
			out = append(out, d)
		}
	}
	return out
}

// metadataListContains tolerates both []string (fresh corpus) and []any
// (metadata decoded back from JSON).
func metadataListContains(v any, s string) bool {
	switch list := v.(type) {
	case []string:
		for _, item := range list {
			if item == s {
				return true
			}
		}
	case []any:
		for _, item := range list {
			if str, ok := item.(string); ok && str == s {
				return true
			}
		}
	}
	return false
}
