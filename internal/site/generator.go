package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/asset-atlas/internal/atlas"
	"github.com/ziadkadry99/asset-atlas/internal/diagrams"
	"github.com/ziadkadry99/asset-atlas/internal/progress"
)

// Page is one view of the atlas rendered as Markdown.
type Page struct {
	Path     string // output path relative to the site root, e.g. "areas/sales.html"
	Label    string
	Title    string
	Markdown string
	Diagram  string
}

// Generator renders every view of an atlas into a static HTML site.
type Generator struct {
	Atlas     *atlas.Atlas
	OutputDir string
	Progress  progress.Reporter
}

// NewGenerator creates a Generator writing into outputDir.
func NewGenerator(a *atlas.Atlas, outputDir string) *Generator {
	return &Generator{
		Atlas:     a,
		OutputDir: outputDir,
	}
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title       string
	ProjectName string
	Content     template.HTML
	Diagram     string
	TreeHTML    template.HTML
	BasePath    string
}

// Generate builds the full static site. Returns the number of pages generated.
func (g *Generator) Generate() (int, error) {
	pages, err := g.Pages()
	if err != nil {
		return 0, err
	}

	tree := BuildTree(pages)

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}
	if err := WriteSearchIndex(BuildSearchIndex(pages), filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing page template: %w", err)
	}

	if g.Progress != nil {
		g.Progress.Start(len(pages))
		defer g.Progress.Finish()
	}
	for i, p := range pages {
		if err := g.renderPage(md, tmpl, tree, p); err != nil {
			return 0, fmt.Errorf("rendering %s: %w", p.Path, err)
		}
		if g.Progress != nil {
			g.Progress.Update(i+1, p.Label)
		}
	}
	return len(pages), nil
}

// Pages builds one page per menu entry: the Overview first, then every area.
func (g *Generator) Pages() ([]Page, error) {
	menu := g.Atlas.Menu()
	paths := pagePaths(menu)

	pages := make([]Page, 0, len(menu))
	for _, label := range menu {
		f, err := g.Atlas.FrameFor(label)
		if err != nil {
			return nil, err
		}
		text, err := g.pageMarkdown(f, paths)
		if err != nil {
			return nil, fmt.Errorf("page %q: %w", label, err)
		}
		pages = append(pages, Page{
			Path:     paths[label],
			Label:    label,
			Title:    f.Title,
			Markdown: text,
			Diagram:  diagrams.ViewDiagram(f),
		})
	}
	return pages, nil
}

// pagePaths maps each menu label to its output path. The Overview is the
// site index; areas live under areas/ with unique slugs.
func pagePaths(menu []string) map[string]string {
	paths := make(map[string]string, len(menu))
	used := make(map[string]bool, len(menu))
	for i, label := range menu {
		if i == 0 {
			paths[label] = "index.html"
			continue
		}
		base := slugify(label)
		slug := base
		for n := 2; used[slug]; n++ {
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		used[slug] = true
		paths[label] = "areas/" + slug + ".html"
	}
	return paths
}

// pageMarkdown renders a frame as Markdown: a node table in draw order, the
// edge list and the details of every node.
func (g *Generator) pageMarkdown(f atlas.Frame, paths map[string]string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", f.Title)
	if f.Overview {
		fmt.Fprintf(&b, "%s.\n\n", g.Atlas.Summary())
	} else {
		fmt.Fprintf(&b, "Functional area **%s**: %d assets, %d edges between them.\n\n",
			escapeInline(f.Area), len(f.Nodes), len(f.Edges))
	}

	b.WriteString("## Nodes\n\n| # | Name | Colour |\n|---:|---|---|\n")
	for i, n := range f.Nodes {
		name := escapeInline(n)
		if p, ok := paths[n]; ok && f.Overview {
			name = fmt.Sprintf("[%s](%s)", name, p)
		}
		fmt.Fprintf(&b, "| %d | %s | `%s` |\n", i, name, f.Colors[n])
	}

	b.WriteString("\n## Edges\n\n")
	if len(f.Edges) == 0 {
		b.WriteString("No edges.\n")
	}
	for _, e := range f.Edges {
		fmt.Fprintf(&b, "- %s → %s\n", escapeInline(e.Source), escapeInline(e.Target))
	}

	b.WriteString("\n## Details\n")
	for i, n := range f.Nodes {
		text, err := g.Atlas.Describe(f, i)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\n### %s\n\n%s\n", escapeInline(n), escapeText(text))
		if f.Overview {
			continue
		}
		asset, err := g.Atlas.Catalog().Asset(n)
		if err != nil {
			return "", err
		}
		record, err := yaml.Marshal(asset)
		if err != nil {
			return "", fmt.Errorf("encoding %s: %w", n, err)
		}
		fmt.Fprintf(&b, "\n```yaml\n%s```\n", record)
	}
	return b.String(), nil
}

// renderPage converts a single page to HTML.
func (g *Generator) renderPage(md goldmark.Markdown, tmpl *template.Template, tree *NavTree, p Page) error {
	var htmlBuf bytes.Buffer
	if err := md.Convert([]byte(p.Markdown), &htmlBuf); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(p.Path))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	// Compute base path for CSS/JS references.
	basePath := strings.Repeat("../", strings.Count(p.Path, "/"))

	data := pageData{
		Title:       p.Label,
		ProjectName: g.Atlas.Title(),
		Content:     template.HTML(htmlBuf.String()),
		Diagram:     p.Diagram,
		TreeHTML:    template.HTML(tree.ToHTML(p.Path, basePath)),
		BasePath:    basePath,
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

// slugify lowercases s and joins its ASCII letters and digits with hyphens.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "area"
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "#", `\#`, "|", `\|`,
)

// escapeInline escapes catalog text used inside a Markdown line or table cell.
func escapeInline(s string) string { return markdownEscaper.Replace(s) }

// escapeText escapes formatted details line by line, keeping the "- "
// bullets that Format emits.
func escapeText(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if rest, ok := strings.CutPrefix(l, "- "); ok {
			lines[i] = "- " + escapeInline(rest)
			continue
		}
		lines[i] = escapeInline(l)
	}
	return strings.Join(lines, "\n")
}
