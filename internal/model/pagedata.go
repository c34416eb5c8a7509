package model

import "time"

// PageData is the context every layout executes with.
type PageData struct {
	SiteTitle string
	BaseURL   string
	PageTitle string
	Path      string
	Active    string // navbar section: "home" or "blog"
	Profile   SiteProfile
	Now       time.Time
}
