package site

import (
	"encoding/json"
	"os"
	"strings"
)

// SearchEntry represents a single searchable page of the site.
type SearchEntry struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// BuildSearchIndex builds one entry per page from its Markdown.
func BuildSearchIndex(pages []Page) []SearchEntry {
	entries := make([]SearchEntry, 0, len(pages))
	for _, p := range pages {
		entries = append(entries, searchEntry(p))
	}
	return entries
}

// searchEntry uses the first paragraph after the title as the summary and
// the remaining prose, without table rows or code, as content.
func searchEntry(p Page) SearchEntry {
	entry := SearchEntry{Path: p.Path, Title: p.Title}

	var content []string
	inCode := false
	for _, line := range strings.Split(p.Markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			continue
		}
		if inCode || trimmed == "" || strings.HasPrefix(trimmed, "|") {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if entry.Summary == "" {
			entry.Summary = plain(trimmed)
			continue
		}
		content = append(content, plain(strings.TrimPrefix(trimmed, "- ")))
	}

	text := strings.Join(content, " ")
	if len(text) > 2000 {
		text = text[:2000]
	}
	entry.Content = text
	return entry
}

var markdownStripper = strings.NewReplacer(`\\`, `\`, `\`, "", "**", "")

// plain strips the escapes and emphasis added to catalog text.
func plain(s string) string { return markdownStripper.Replace(s) }

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
