package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/content"
	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/model"
	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/typewriter"
)

const (
	// maxCardTags is how many tags a blog card shows.
	maxCardTags = 3
	// RecentPosts is how many posts the home page lists.
	RecentPosts = 3
)

// simpleIconsCDN serves simple-icons logos as SVG in a requested colour.
const simpleIconsCDN = "https://cdn.simpleicons.org/"

// CertCard is a certification with its display state resolved.
type CertCard struct {
	model.Certification
	IsExpired bool
	IconURL   string
	Tint      string
	Delay     string
}

// NewCertCards resolves expiry against today, which the caller supplies.
func NewCertCards(certs []model.Certification, today time.Time) []CertCard {
	cards := make([]CertCard, len(certs))
	for i, c := range certs {
		card := CertCard{
			Certification: c,
			IsExpired:     c.Expired(today),
			Tint:          c.IssuerColor + "15",
			Delay:         delay(0.15, i),
		}
		if slug := c.SimpleIconSlug(); slug != "" {
			card.IconURL = simpleIconsCDN + slug + "/" + strings.TrimPrefix(c.IssuerColor, "#")
		}
		cards[i] = card
	}
	return cards
}

// BlogCard is a post as listed on index pages.
type BlogCard struct {
	*model.ContentItem
	TopTags []string
	Delay   string
}

// NewBlogCards wraps posts for listing, keeping their order.
func NewBlogCards(posts []*model.ContentItem) []BlogCard {
	cards := make([]BlogCard, len(posts))
	for i, p := range posts {
		tags := p.Tags
		if len(tags) > maxCardTags {
			tags = tags[:maxCardTags]
		}
		cards[i] = BlogCard{ContentItem: p, TopTags: tags, Delay: delay(0.1, i)}
	}
	return cards
}

func delay(base float64, index int) string {
	return fmt.Sprintf("%.2fs", base+float64(index)*0.1)
}

// HomePage is the data for PageHome.
type HomePage struct {
	model.PageData
	Work           []model.WorkEntry
	Certifications []CertCard
	Posts          []BlogCard
	Plan           []typewriter.Step
}

// BlogPage is the data for PageBlog.
type BlogPage struct {
	model.PageData
	Posts []BlogCard
	Tags  []*content.Tag
}

// PostPage is the data for PagePost.
type PostPage struct {
	model.PageData
	Post *model.ContentItem
}

// TagPage is the data for PageTag.
type TagPage struct {
	model.PageData
	Tag   *content.Tag
	Posts []BlogCard
}

// TagsPage is the data for PageTags.
type TagsPage struct {
	model.PageData
	Tags []*content.Tag
}
