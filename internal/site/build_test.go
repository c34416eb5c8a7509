package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/net/html"

	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/config"
	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/content"
)

const (
	publishedPost = `---
title: Building a Platform on AKS
date: 2024-03-29
readTime: 8 min read
tags: [Kubernetes, Azure, Platform Engineering, GitOps]
excerpt: Notes from rolling out a shared platform.
---

Hello **platform**.
`
	olderPost = `+++
title = "Terraform Modules"
date = 2023-06-01
readTime = "5 min read"
tags = ["Terraform", "kubernetes"]
excerpt = "Module layout that scales."
+++

Body.
`
	draftPost = `---
title: Half Written
date: 2024-05-01
readTime: 2 min read
tags: [Drafts]
excerpt: Not yet.
draft: true
---

WIP
`
	expiringCerts = `
certifications:
  - name: Old Cert
    issuer: CNCF
    issuerColor: "#326CE5"
    simpleIconSlug: kubernetes
    achievedDate: "2017-01-01"
    validUntil: "2020-01-01"
`
)

var fixedNow = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Defaults()
	cfg.OutputDir = filepath.Join(root, "public")
	cfg.ContentDir = filepath.Join(root, "content")
	cfg.StaticDir = filepath.Join(root, "static")

	blog := filepath.Join(cfg.ContentDir, content.BlogDir)
	writeFile(t, filepath.Join(blog, "aks-platform.md"), publishedPost)
	writeFile(t, filepath.Join(blog, "terraform", "index.md"), olderPost)
	writeFile(t, filepath.Join(blog, "half-written.md"), draftPost)
	writeFile(t, filepath.Join(cfg.StaticDir, "css", "site.css"), "body{}")
	return cfg
}

func build(t *testing.T, cfg config.Config, opts ...Option) *Result {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	res, err := NewBuilder(cfg, zaptest.NewLogger(t), opts...).Build()
	require.NoError(t, err)
	return res
}

func readPage(t *testing.T, cfg config.Config, urlPath string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(cfg.OutputDir, filepath.FromSlash(urlPath), "index.html"))
	require.NoError(t, err)
	return string(b)
}

func TestBuild_WritesPages(t *testing.T) {
	cfg := testConfig(t)
	res := build(t, cfg)

	assert.Equal(t, 2, res.Posts)
	for _, p := range []string{
		"/",
		"/blog/",
		"/blog/aks-platform/",
		"/blog/terraform/",
		"/tags/",
		"/tags/kubernetes/",
		"/tags/platform-engineering/",
		"/tags/gitops/",
	} {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, filepath.FromSlash(p), "index.html"), p)
	}
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "css", "site.css"))

	// home, blog, two posts, tags index and one page per tag
	assert.Equal(t, 4+res.Tags, res.Pages)
	assert.Equal(t, 5, res.Tags)
}

func TestBuild_HidesDraftsOutsideDevelopment(t *testing.T) {
	cfg := testConfig(t)
	build(t, cfg)

	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "blog", "half-written", "index.html"))
	assert.NoDirExists(t, filepath.Join(cfg.OutputDir, "tags", "drafts"))
	assert.NotContains(t, readPage(t, cfg, "/blog/"), "Half Written")
}

func TestBuild_DevelopmentShowsDrafts(t *testing.T) {
	cfg := testConfig(t)
	res := build(t, cfg, WithDevelopment(true))

	assert.Equal(t, 3, res.Posts)
	page := readPage(t, cfg, "/blog/half-written/")
	assert.Contains(t, page, "draft-badge")
}

func TestBuild_DevelopmentFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Development = true
	res := build(t, cfg)
	assert.Equal(t, 3, res.Posts)
}

func TestBuild_BlogIndexNewestFirst(t *testing.T) {
	cfg := testConfig(t)
	build(t, cfg)

	page := readPage(t, cfg, "/blog/")
	newer := strings.Index(page, "Building a Platform on AKS")
	older := strings.Index(page, "Terraform Modules")
	require.NotEqual(t, -1, newer)
	require.NotEqual(t, -1, older)
	assert.Less(t, newer, older)
}

func TestBuild_TagPageMergesSpellings(t *testing.T) {
	cfg := testConfig(t)
	build(t, cfg)

	page := readPage(t, cfg, "/tags/kubernetes/")
	assert.Contains(t, page, "Building a Platform on AKS")
	assert.Contains(t, page, "Terraform Modules")
}

func TestBuild_ExpiredCertificationHasNoActiveBadge(t *testing.T) {
	cfg := testConfig(t)
	cfg.DataDir = filepath.Join(filepath.Dir(cfg.OutputDir), "data")
	writeFile(t, filepath.Join(cfg.DataDir, "certifications.yaml"), expiringCerts)
	build(t, cfg)

	doc, err := html.Parse(strings.NewReader(readPage(t, cfg, "/")))
	require.NoError(t, err)

	var cards, badges int
	var walk func(n *html.Node, inCard bool)
	walk = func(n *html.Node, inCard bool) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key != "class" {
					continue
				}
				classes := strings.Fields(a.Val)
				for _, c := range classes {
					switch {
					case c == "cert-card":
						cards++
						inCard = true
					case c == "status-badge" && inCard:
						badges++
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inCard)
		}
	}
	walk(doc, false)

	assert.Equal(t, 1, cards)
	assert.Zero(t, badges)
}

func TestBuild_FooterYearFromClock(t *testing.T) {
	cfg := testConfig(t)
	build(t, cfg)
	assert.Contains(t, readPage(t, cfg, "/"), "2024 Max Anderson")
}

func TestBuild_InvalidPostAbortsAndKeepsOutput(t *testing.T) {
	cfg := testConfig(t)
	build(t, cfg)

	writeFile(t, filepath.Join(cfg.ContentDir, content.BlogDir, "broken.md"), "---\ndate: 2024-01-01\n---\nbody\n")

	_, err := NewBuilder(cfg, zaptest.NewLogger(t)).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, content.ErrInvalidFrontMatter)
	assert.ErrorContains(t, err, "broken.md")
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "index.html"), "previous output is left in place")
}

func TestBuild_FileNameWithoutSlugKeepsBlogIndex(t *testing.T) {
	cfg := testConfig(t)
	build(t, cfg)

	writeFile(t, filepath.Join(cfg.ContentDir, content.BlogDir, "日本語.md"), publishedPost)
	_, err := NewBuilder(cfg, zaptest.NewLogger(t), WithClock(func() time.Time { return fixedNow })).Build()
	require.ErrorIs(t, err, content.ErrInvalidFrontMatter)
	assert.ErrorContains(t, err, "日本語.md")

	page := readPage(t, cfg, "/blog/")
	assert.Contains(t, page, "blog-card", "blog index is still the listing")
	assert.Contains(t, page, "Terraform Modules")
}

func TestBuild_MissingBlogDir(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.RemoveAll(cfg.ContentDir))

	res := build(t, cfg)
	assert.Zero(t, res.Posts)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "index.html"))
}

func TestBuild_RefusesUnsafeOutputDir(t *testing.T) {
	for _, dir := range []string{"", ".", "/"} {
		cfg := testConfig(t)
		cfg.OutputDir = dir
		_, err := NewBuilder(cfg, zaptest.NewLogger(t)).Build()
		assert.ErrorIs(t, err, ErrUnsafeOutputDir, dir)
	}
}

func TestBuild_UnsupportedLocale(t *testing.T) {
	cfg := testConfig(t)
	cfg.Locale = "ja-JP"
	_, err := NewBuilder(cfg, zaptest.NewLogger(t)).Build()
	assert.Error(t, err)
}

func TestCopyDirContents(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "a.txt"), "a")
	writeFile(t, filepath.Join(src, "nested", "b.txt"), "b")

	require.NoError(t, copyDirContents(src, dst))

	got, err := os.ReadFile(filepath.Join(dst, "nested", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))
	assert.FileExists(t, filepath.Join(dst, "a.txt"))
}
