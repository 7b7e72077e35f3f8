package site

import (
	"fmt"
	"html"
	"strings"
)

// NavTree is a node in the sidebar navigation.
type NavTree struct {
	Name     string
	Title    string // Human-readable display name.
	Path     string // For pages: output path. For dirs: directory path (e.g., "areas").
	IsDir    bool
	Children []*NavTree
}

// BuildTree groups pages by directory for the sidebar. Pages keep the order
// they are given in, which is the menu order.
func BuildTree(pages []Page) *NavTree {
	root := &NavTree{Name: "site", IsDir: true}

	for _, p := range pages {
		parts := strings.Split(p.Path, "/")
		current := root
		for i, part := range parts[:len(parts)-1] {
			dir := current.child(part)
			if dir == nil {
				dir = &NavTree{
					Name:  part,
					Title: formatDirName(part),
					Path:  strings.Join(parts[:i+1], "/"),
					IsDir: true,
				}
				current.Children = append(current.Children, dir)
			}
			current = dir
		}
		current.Children = append(current.Children, &NavTree{
			Name:  parts[len(parts)-1],
			Title: p.Label,
			Path:  p.Path,
		})
	}
	return root
}

func (t *NavTree) child(name string) *NavTree {
	for _, c := range t.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ToHTML renders the tree as nested <ul><li> HTML for the sidebar.
// basePath is the relative prefix to get back to root (e.g., "../" for a page one level deep).
func (t *NavTree) ToHTML(activePath, basePath string) string {
	var b strings.Builder
	homeActive := ""
	if activePath == "index.html" {
		homeActive = ` class="active"`
	}
	fmt.Fprintf(&b, `<ul><li class="file home-link"><a href="%sindex.html"%s>Overview</a></li></ul>`+"\n", basePath, homeActive)

	renderChildren(&b, t, activePath, basePath)
	return b.String()
}

func renderChildren(b *strings.Builder, node *NavTree, activePath, basePath string) {
	if len(node.Children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, child := range node.Children {
		if child.IsDir {
			expanded := ""
			if strings.HasPrefix(activePath, child.Path+"/") || activePath == "index.html" {
				expanded = "expanded"
			}
			fmt.Fprintf(b, `<li class="dir %s"><span class="dir-toggle">%s</span>`+"\n", expanded, html.EscapeString(child.Title))
			renderChildren(b, child, activePath, basePath)
			b.WriteString("</li>\n")
			continue
		}
		if child.Path == "index.html" {
			continue
		}
		activeClass := ""
		if child.Path == activePath {
			activeClass = ` class="active"`
		}
		fmt.Fprintf(b, `<li class="file"><a href="%s%s"%s>%s</a></li>`+"\n",
			basePath, child.Path, activeClass, html.EscapeString(child.Title))
	}
	b.WriteString("</ul>\n")
}

// formatDirName converts a directory name to a human-readable display name.
func formatDirName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
