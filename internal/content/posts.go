package content

import (
	"sort"

	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/model"
)

// VisiblePosts returns every post in development, and only non-draft posts
// otherwise. Input order is preserved.
func VisiblePosts(posts []*model.ContentItem, development bool) []*model.ContentItem {
	visible := make([]*model.ContentItem, 0, len(posts))
	for _, p := range posts {
		if development || !p.Draft {
			visible = append(visible, p)
		}
	}
	return visible
}

// SortByDateDescending returns a new slice ordered newest first. Posts sharing
// a date keep their relative order.
func SortByDateDescending(posts []*model.ContentItem) []*model.ContentItem {
	sorted := make([]*model.ContentItem, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

// Tag is one tag listing: the display name is the first spelling seen.
type Tag struct {
	Name  string
	Slug  string
	Posts []*model.ContentItem
}

// GroupByTag buckets posts by slugified tag, keeping post order within each
// bucket. Tags are returned sorted by slug.
func GroupByTag(posts []*model.ContentItem) []*Tag {
	bySlug := make(map[string]*Tag)
	for _, p := range posts {
		seen := make(map[string]bool, len(p.Tags))
		for _, name := range p.Tags {
			slug := Slugify(name)
			if slug == "" || seen[slug] {
				continue
			}
			seen[slug] = true
			tag, ok := bySlug[slug]
			if !ok {
				tag = &Tag{Name: name, Slug: slug}
				bySlug[slug] = tag
			}
			tag.Posts = append(tag.Posts, p)
		}
	}

	tags := make([]*Tag, 0, len(bySlug))
	for _, tag := range bySlug {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Slug < tags[j].Slug })
	return tags
}
