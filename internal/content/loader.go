package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/model"
)

// BlogDir is the directory under the content root holding posts.
const BlogDir = "blog"

var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// Loader reads markdown posts and validates their front matter.
type Loader struct {
	log    *zap.Logger
	schema *Schema
	md     goldmark.Markdown
}

// NewLoader builds a loader with the post schema compiled.
func NewLoader(log *zap.Logger) (*Loader, error) {
	schema, err := NewSchema()
	if err != nil {
		return nil, err
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
	return &Loader{log: log, schema: schema, md: md}, nil
}

// LoadDir loads every .md file below dir. A missing dir yields no posts. Any
// invalid post fails the whole load.
func (l *Loader) LoadDir(dir string) ([]*model.ContentItem, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		l.log.Warn("blog directory not found, no posts loaded", zap.String("dir", dir))
		return nil, nil
	}

	var posts []*model.ContentItem
	bySlug := make(map[string]string)

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s': %w", p, walkErr)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", p, err)
		}
		src, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read file '%s': %w", p, err)
		}

		l.log.Debug("processing post", zap.String("path", p))
		item, err := l.Load(p, slugFromPath(rel), src)
		if err != nil {
			return err
		}
		if other, ok := bySlug[item.Slug]; ok {
			return fmt.Errorf("%w %q: %s and %s", ErrDuplicateSlug, item.Slug, other, p)
		}
		bySlug[item.Slug] = p
		posts = append(posts, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.Info("loaded posts", zap.String("dir", dir), zap.Int("count", len(posts)))
	return posts, nil
}

// Load parses one post. slug is used unless the front matter overrides it.
func (l *Loader) Load(sourcePath, slug string, src []byte) (*model.ContentItem, error) {
	fields := make(map[string]any)
	body, err := frontmatter.Parse(bytes.NewReader(src), &fields, frontMatterFormats...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", sourcePath, ErrInvalidFrontMatter, err)
	}

	fm, date, err := l.schema.Decode(fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourcePath, err)
	}

	var html bytes.Buffer
	if err := l.md.Convert(body, &html); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML for file '%s': %w", sourcePath, err)
	}

	if fm.Slug != "" {
		slug = fm.Slug
	}
	if !validSlug(slug) {
		return nil, fmt.Errorf("%s: %w: no usable URL slug %q, set slug in the front matter",
			sourcePath, ErrInvalidFrontMatter, slug)
	}
	return &model.ContentItem{
		Slug:            slug,
		Title:           fm.Title,
		Date:            date,
		ReadTime:        fm.ReadTime,
		Tags:            fm.Tags,
		Excerpt:         fm.Excerpt,
		FeatureImage:    fm.FeatureImage,
		FeatureImageAlt: fm.FeatureImageAlt,
		Draft:           fm.Draft,
		SourcePath:      sourcePath,
		Body:            template.HTML(html.String()),
	}, nil
}

// slugFromPath derives a slug from a path relative to the blog dir:
// "Hello World.md" -> "hello-world", "k8s/intro/index.md" -> "k8s/intro".
func slugFromPath(rel string) string {
	p := filepath.ToSlash(rel)
	p = strings.TrimSuffix(p, path.Ext(p))
	if path.Base(p) == "index" && path.Dir(p) != "." {
		p = path.Dir(p)
	}
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = Slugify(seg)
	}
	return strings.Join(segments, "/")
}

// validSlug rejects slugs with an empty path segment; "" would write over
// /blog/index.html and "a//b" over a neighbour.
func validSlug(slug string) bool {
	for _, seg := range strings.Split(slug, "/") {
		if seg == "" {
			return false
		}
	}
	return true
}
