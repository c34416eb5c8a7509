package model

import (
	"errors"
	"html/template"
	"time"
)

// ErrIconVariant is returned when an icon does not name exactly one representation.
var ErrIconVariant = errors.New("icon must set exactly one of simpleIconSlug or customIconSvg")

// Icon is the issuer logo of a certification. It is either a SimpleIcon or a
// CustomIcon; no other implementations exist.
type Icon interface {
	icon()
}

// SimpleIcon references a logo from the simple-icons set by slug.
type SimpleIcon struct {
	Slug string
}

// CustomIcon carries raw SVG inner markup rendered inside a 0 0 24 24 viewBox.
type CustomIcon struct {
	Markup template.HTML
}

func (SimpleIcon) icon() {}
func (CustomIcon) icon() {}

// NewIcon builds the icon variant from the two authored fields.
func NewIcon(simpleIconSlug, customIconSVG string) (Icon, error) {
	switch {
	case simpleIconSlug != "" && customIconSVG != "":
		return nil, ErrIconVariant
	case simpleIconSlug != "":
		return SimpleIcon{Slug: simpleIconSlug}, nil
	case customIconSVG != "":
		return CustomIcon{Markup: template.HTML(customIconSVG)}, nil
	default:
		return nil, ErrIconVariant
	}
}

// Certification is one entry of the certifications showcase. Dates use
// "YYYY-MM-DD"; a nil ValidUntil never expires.
type Certification struct {
	Name         string
	Issuer       string
	IssuerColor  string
	Icon         Icon
	AchievedDate string
	ValidUntil   *string
	URL          string
}

// Expired reports whether ValidUntil lies strictly before today's calendar date.
func (c Certification) Expired(today time.Time) bool {
	if c.ValidUntil == nil {
		return false
	}
	return *c.ValidUntil < today.Format(time.DateOnly)
}

// SimpleIconSlug returns the slug when the icon is a SimpleIcon.
func (c Certification) SimpleIconSlug() string {
	if s, ok := c.Icon.(SimpleIcon); ok {
		return s.Slug
	}
	return ""
}

// CustomIconMarkup returns the markup when the icon is a CustomIcon.
func (c Certification) CustomIconMarkup() template.HTML {
	if ci, ok := c.Icon.(CustomIcon); ok {
		return ci.Markup
	}
	return ""
}
