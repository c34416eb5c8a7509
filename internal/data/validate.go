package data

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/dates"
	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/model"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks every table and reports all problems at once.
func (t *Tables) Validate() error {
	var errs []error
	errs = append(errs, validateProfile(t.Profile)...)
	for i, w := range t.WorkHistory {
		errs = append(errs, validateWorkEntry(i, w)...)
	}
	for i, c := range t.Certifications {
		errs = append(errs, validateCertification(i, c)...)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidData, errors.Join(errs...))
}

func validateProfile(p model.SiteProfile) []error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, errors.New("profile: name is required"))
	}
	for key, s := range p.Socials {
		if s.URL == "" {
			errs = append(errs, fmt.Errorf("profile: socials.%s: url is required", key))
		}
	}
	return errs
}

func parseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not YYYY-MM", s)
	}
	return t, nil
}

func validateWorkEntry(i int, w model.WorkEntry) []error {
	where := fmt.Sprintf("work history[%d] %q", i, w.Company)
	var errs []error
	if w.Company == "" {
		errs = append(errs, fmt.Errorf("%s: company is required", where))
	}
	if len(w.Positions) == 0 {
		return append(errs, fmt.Errorf("%s: at least one position is required", where))
	}

	var prevStart time.Time
	for j, p := range w.Positions {
		at := fmt.Sprintf("%s position[%d] %q", where, j, p.Title)
		if p.Title == "" {
			errs = append(errs, fmt.Errorf("%s: title is required", at))
		}
		start, err := parseMonth(p.StartDate)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: startDate %w", at, err))
			continue
		}

		if p.EndDate == nil {
			if j > 0 {
				errs = append(errs, fmt.Errorf("%s: only the most recent position may be current", at))
			}
		} else {
			end, err := parseMonth(*p.EndDate)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: endDate %w", at, err))
			} else if end.Before(start) {
				errs = append(errs, fmt.Errorf("%s: endDate %s before startDate %s", at, *p.EndDate, p.StartDate))
			}
		}

		if j > 0 {
			if start.After(prevStart) {
				errs = append(errs, fmt.Errorf("%s: positions must be ordered most recent first", at))
			}
			if prev := w.Positions[j-1]; prev.EndDate != nil && *prev.EndDate < p.StartDate {
				errs = append(errs, fmt.Errorf("%s: previous position ends %s before this one starts", at, *prev.EndDate))
			}
		}
		prevStart = start
	}
	return errs
}

func validateCertification(i int, c model.Certification) []error {
	at := fmt.Sprintf("certifications[%d] %q", i, c.Name)
	var errs []error
	if c.Name == "" {
		errs = append(errs, fmt.Errorf("%s: name is required", at))
	}
	if c.Issuer == "" {
		errs = append(errs, fmt.Errorf("%s: issuer is required", at))
	}
	if !hexColor.MatchString(c.IssuerColor) {
		errs = append(errs, fmt.Errorf("%s: issuerColor %q is not #rrggbb", at, c.IssuerColor))
	}
	if c.Icon == nil {
		errs = append(errs, fmt.Errorf("%s: %w", at, model.ErrIconVariant))
	}
	achieved, err := dates.ParseDay(c.AchievedDate)
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: achievedDate: %w", at, err))
	}
	if c.ValidUntil != nil {
		until, err := dates.ParseDay(*c.ValidUntil)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: validUntil: %w", at, err))
		} else if achieved.After(until) {
			errs = append(errs, fmt.Errorf("%s: validUntil %s before achievedDate %s", at, *c.ValidUntil, c.AchievedDate))
		}
	}
	return errs
}
