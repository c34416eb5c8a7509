// Package render executes the site's embedded html/template layouts.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/content"
	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/dates"
	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/model"
)

// Page layouts. Each is parsed into its own copy of the base layout and partials.
const (
	PageHome = "home.html"
	PageBlog = "blog.html"
	PagePost = "post.html"
	PageTag  = "tag.html"
	PageTags = "tags.html"
)

var pageNames = []string{PageHome, PageBlog, PagePost, PageTag, PageTags}

//go:embed layouts
var layouts embed.FS

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded layouts with date helpers bound to f.
func New(f *dates.Formatter) (*Renderer, error) {
	base, err := template.New("layout").Funcs(funcs(f)).ParseFS(layouts, "layouts/base.html", "layouts/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base layout and partials: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone base layout for %s: %w", name, err)
		}
		t, err := clone.ParseFS(layouts, "layouts/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page layout %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes page with data into w.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("layout '%s' not found", page)
	}
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("failed to execute template '%s': %w", page, err)
	}
	return nil
}

func funcs(f *dates.Formatter) template.FuncMap {
	return template.FuncMap{
		"formatLong":  f.Long,
		"formatShort": f.Short,
		"formatISO":   f.ISO,
		"monthYear":   f.MonthYear,
		"postPath":    content.PostPath,
		"tagPath":     content.TagPath,
		"slugify":     content.Slugify,
		"join":        strings.Join,
		"firstName":   firstName,
		"paragraphs":  paragraphs,
		"external":    external,
		"socialLabel": socialLabel,
	}
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

// paragraphs splits text on blank lines.
func paragraphs(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func external(url string) bool {
	return strings.HasPrefix(url, "http")
}

func socialLabel(key string, s model.Social) string {
	if s.Label != "" {
		return s.Label
	}
	return cases.Title(language.English).String(key)
}
