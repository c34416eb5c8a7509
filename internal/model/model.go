package model

import (
	"html/template"
	"time"
)

// ContentItem represents a single blog post loaded from a markdown file.
type ContentItem struct {
	Slug            string
	Title           string
	Date            time.Time
	ReadTime        string
	Tags            []string
	Excerpt         string
	FeatureImage    string
	FeatureImageAlt string
	Draft           bool
	SourcePath      string
	Body            template.HTML
}

// Position is one role held at a company. StartDate and EndDate use "YYYY-MM";
// a nil EndDate means the position is currently held.
type Position struct {
	Title       string  `yaml:"title"`
	StartDate   string  `yaml:"startDate"`
	EndDate     *string `yaml:"endDate"`
	Description string  `yaml:"description"`
}

// Current reports whether the position is still held.
func (p Position) Current() bool { return p.EndDate == nil }

// WorkEntry groups the positions held at one company, most recent first.
type WorkEntry struct {
	Company    string     `yaml:"company"`
	CompanyURL string     `yaml:"companyUrl"`
	Location   string     `yaml:"location"`
	Positions  []Position `yaml:"positions"`
}

// Earliest returns the start of the oldest position.
func (w WorkEntry) Earliest() string {
	return w.Positions[len(w.Positions)-1].StartDate
}

// Latest returns the end of the most recent position, nil when it is current.
func (w WorkEntry) Latest() *string {
	return w.Positions[0].EndDate
}

// Current reports whether the most recent position is still held.
func (w WorkEntry) Current() bool { return w.Latest() == nil }

// Social is one entry of the profile's social links.
type Social struct {
	URL     string `yaml:"url"`
	Handle  string `yaml:"handle"`
	Address string `yaml:"address"`
	Label   string `yaml:"label"`
}

// SiteProfile is the owner's bio and social metadata.
type SiteProfile struct {
	Name    string            `yaml:"name"`
	Bio     string            `yaml:"bio"`
	Roles   []string          `yaml:"roles"`
	Socials map[string]Social `yaml:"socials"`
}
