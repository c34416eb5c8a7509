// Package site turns content, data tables and layouts into the output directory.
package site

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/config"
	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/content"
	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/data"
	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/dates"
	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/model"
	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/render"
	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/typewriter"
)

// ErrUnsafeOutputDir is returned when the output dir would clean the working tree.
var ErrUnsafeOutputDir = errors.New("refusing to clean output directory")

// Builder runs one full site build per Build call.
type Builder struct {
	cfg         config.Config
	log         *zap.Logger
	now         func() time.Time
	development bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock sets the time used for the footer year and certification expiry.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithDevelopment shows draft posts when dev is true.
func WithDevelopment(dev bool) Option {
	return func(b *Builder) { b.development = dev }
}

// NewBuilder returns a builder for cfg. Drafts follow cfg.Development unless
// overridden by WithDevelopment.
func NewBuilder(cfg config.Config, log *zap.Logger, opts ...Option) *Builder {
	b := &Builder{cfg: cfg, log: log, now: time.Now, development: cfg.Development}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Result summarises a finished build.
type Result struct {
	Posts int
	Tags  int
	Pages int
}

type site struct {
	tables *data.Tables
	posts  []*model.ContentItem
	tags   []*content.Tag
}

// Build loads and validates everything first; the output directory is only
// touched once all inputs are known to be good.
func (b *Builder) Build() (*Result, error) {
	start := b.now()
	b.log.Info("starting build",
		zap.String("outputDir", b.cfg.OutputDir),
		zap.String("baseURL", b.cfg.BaseURL),
		zap.Bool("development", b.development),
	)

	formatter, err := dates.New(b.cfg.Locale)
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(formatter)
	if err != nil {
		return nil, err
	}
	s, err := b.load()
	if err != nil {
		return nil, err
	}

	if err := b.prepareOutput(); err != nil {
		return nil, err
	}

	w := &pageWriter{outputDir: b.cfg.OutputDir, renderer: renderer, log: b.log}
	if err := b.writePages(w, s, start); err != nil {
		return nil, err
	}

	res := &Result{Posts: len(s.posts), Tags: len(s.tags), Pages: w.count}
	b.log.Info("build completed",
		zap.Int("posts", res.Posts),
		zap.Int("tags", res.Tags),
		zap.Int("pages", res.Pages),
		zap.Duration("took", b.now().Sub(start)),
	)
	return res, nil
}

func (b *Builder) load() (*site, error) {
	tables, err := data.Load(b.cfg.DataDir)
	if err != nil {
		return nil, err
	}

	loader, err := content.NewLoader(b.log)
	if err != nil {
		return nil, err
	}
	all, err := loader.LoadDir(filepath.Join(b.cfg.ContentDir, content.BlogDir))
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	posts := content.SortByDateDescending(content.VisiblePosts(all, b.development))
	if hidden := len(all) - len(posts); hidden > 0 {
		b.log.Info("draft posts hidden", zap.Int("count", hidden))
	}
	return &site{tables: tables, posts: posts, tags: content.GroupByTag(posts)}, nil
}

func (b *Builder) prepareOutput() error {
	out := filepath.Clean(b.cfg.OutputDir)
	if b.cfg.OutputDir == "" || out == "." || out == string(filepath.Separator) {
		return fmt.Errorf("%w %q", ErrUnsafeOutputDir, b.cfg.OutputDir)
	}

	b.log.Debug("cleaning output directory", zap.String("dir", out))
	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("failed to remove output directory '%s': %w", out, err)
	}
	if err := os.MkdirAll(out, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", out, err)
	}

	staticDir := b.cfg.StaticDir
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		b.log.Debug("static assets directory not found, skipping copy", zap.String("dir", staticDir))
		return nil
	}
	if err := copyDirContents(staticDir, out); err != nil {
		return fmt.Errorf("failed to copy static assets: %w", err)
	}
	b.log.Debug("static assets copied", zap.String("from", staticDir))
	return nil
}

func (b *Builder) pageData(now time.Time, s *site, path, title, active string) model.PageData {
	return model.PageData{
		SiteTitle: b.cfg.SiteTitle,
		BaseURL:   b.cfg.BaseURL,
		PageTitle: title,
		Path:      path,
		Active:    active,
		Profile:   s.tables.Profile,
		Now:       now,
	}
}

func (b *Builder) writePages(w *pageWriter, s *site, now time.Time) error {
	recent := s.posts
	if len(recent) > render.RecentPosts {
		recent = recent[:render.RecentPosts]
	}
	home := render.HomePage{
		PageData:       b.pageData(now, s, "/", b.cfg.SiteTitle, "home"),
		Work:           s.tables.WorkHistory,
		Certifications: render.NewCertCards(s.tables.Certifications, now),
		Posts:          render.NewBlogCards(recent),
		Plan:           typewriter.NewPlan(s.tables.Profile.Roles, typewriter.DefaultPause),
	}
	if err := w.write("/", render.PageHome, home); err != nil {
		return err
	}

	blog := render.BlogPage{
		PageData: b.pageData(now, s, "/blog/", "Blog", "blog"),
		Posts:    render.NewBlogCards(s.posts),
		Tags:     s.tags,
	}
	if err := w.write("/blog/", render.PageBlog, blog); err != nil {
		return err
	}

	for _, p := range s.posts {
		path := content.PostPath(p.Slug)
		page := render.PostPage{PageData: b.pageData(now, s, path, p.Title, "blog"), Post: p}
		if err := w.write(path, render.PagePost, page); err != nil {
			return err
		}
	}

	tags := render.TagsPage{PageData: b.pageData(now, s, "/tags/", "Tags", "blog"), Tags: s.tags}
	if err := w.write("/tags/", render.PageTags, tags); err != nil {
		return err
	}
	for _, tag := range s.tags {
		path := content.TagPath(tag.Name)
		page := render.TagPage{
			PageData: b.pageData(now, s, path, tag.Name, "blog"),
			Tag:      tag,
			Posts:    render.NewBlogCards(tag.Posts),
		}
		if err := w.write(path, render.PageTag, page); err != nil {
			return err
		}
	}
	return nil
}

type pageWriter struct {
	outputDir string
	renderer  *render.Renderer
	log       *zap.Logger
	count     int
}

// write renders page to <outputDir>/<urlPath>/index.html.
func (w *pageWriter) write(urlPath, page string, data any) error {
	var buf bytes.Buffer
	if err := w.renderer.Render(&buf, page, data); err != nil {
		return fmt.Errorf("render %s: %w", urlPath, err)
	}

	outputPath := filepath.Join(w.outputDir, filepath.FromSlash(urlPath), "index.html")
	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", urlPath, err)
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", outputPath, err)
	}
	w.count++
	w.log.Debug("generated page", zap.String("path", outputPath), zap.String("layout", page))
	return nil
}
