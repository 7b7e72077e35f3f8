package diagrams

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ziadkadry99/asset-atlas/internal/atlas"
)

// ViewDiagram renders a frame as a mermaid flowchart. Nodes appear in draw
// order and carry the frame's colours.
func ViewDiagram(f atlas.Frame) string {
	var b strings.Builder
	direction := "LR"
	if f.Overview {
		direction = "TD"
	}
	fmt.Fprintf(&b, "---\ntitle: %s\n---\n", escapeMermaid(f.Title))
	fmt.Fprintf(&b, "flowchart %s\n", direction)

	ids := nodeIDs(f.Nodes)
	for _, n := range f.Nodes {
		fmt.Fprintf(&b, "    %s[\"%s\"]\n", ids[n], escapeMermaid(n))
	}
	for _, e := range f.Edges {
		fmt.Fprintf(&b, "    %s --> %s\n", ids[e.Source], ids[e.Target])
	}
	for _, n := range f.Nodes {
		if c, ok := f.Colors[n]; ok {
			fmt.Fprintf(&b, "    style %s fill:%s\n", ids[n], c)
		}
	}
	return b.String()
}

// nodeIDs assigns each node a safe, unique mermaid id.
func nodeIDs(nodes []string) map[string]string {
	ids := make(map[string]string, len(nodes))
	used := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		id := sanitizeID(n)
		for i := 2; used[id]; i++ {
			id = fmt.Sprintf("%s_%d", sanitizeID(n), i)
		}
		used[id] = true
		ids[n] = id
	}
	return ids
}

// sanitizeID converts a string into a safe mermaid node ID.
func sanitizeID(s string) string {
	id := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, s)
	// Mermaid reserves "end" and ids must not start with a digit.
	if id == "" || unicode.IsDigit(rune(id[0])) || strings.EqualFold(id, "end") {
		id = "n_" + id
	}
	return id
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "(", "#lpar;")
	s = strings.ReplaceAll(s, ")", "#rpar;")
	s = strings.ReplaceAll(s, "[", "#lsqb;")
	s = strings.ReplaceAll(s, "]", "#rsqb;")
	s = strings.ReplaceAll(s, "{", "#lbrace;")
	s = strings.ReplaceAll(s, "}", "#rbrace;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
