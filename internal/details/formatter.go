package details

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/ziadkadry99/asset-atlas/internal/selection"
)

// Format renders a selected entity as display text. The text doubles as
// Markdown: headings are plain lines and lists use "- " bullets.
func Format(e selection.Entity) string {
	switch v := e.(type) {
	case *selection.SelectedArea:
		return formatArea(v)
	case *selection.SelectedAsset:
		return formatAsset(v)
	default:
		return ""
	}
}

func formatArea(a *selection.SelectedArea) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Functional Area: %s\n\n", a.Name)
	b.WriteString("Assets in this area:\n")
	for _, m := range a.Members {
		fmt.Fprintf(&b, "- %s\n", m)
	}
	b.WriteString("\nConnected Areas:\n")
	for _, c := range a.ConnectedAreas {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	return b.String()
}

func formatAsset(s *selection.SelectedAsset) string {
	a := s.Asset
	var b strings.Builder
	fmt.Fprintf(&b, "Asset: %s\n\n", a.ID)
	fmt.Fprintf(&b, "Functional Area: %s\n\n", a.Area)
	fmt.Fprintf(&b, "Description: %s\n\n", a.Description)
	b.WriteString("Key Features:\n")
	for _, f := range a.KeyFeatures {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	fmt.Fprintf(&b, "\nRelated Systems: %s\n\n", strings.Join(a.RelatedSystems, ", "))
	fmt.Fprintf(&b, "Data Flow: %s\n\n", a.DataFlow)
	fmt.Fprintf(&b, "Business Impact: %s", a.BusinessImpact)
	return b.String()
}

var md = goldmark.New()

// HTML renders the formatted text of e as an HTML fragment for web surfaces.
// goldmark's default renderer drops raw HTML found in catalog text.
func HTML(e selection.Entity) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Format(e)), &buf); err != nil {
		return "", fmt.Errorf("rendering details: %w", err)
	}
	return buf.String(), nil
}
