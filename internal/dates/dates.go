// Package dates renders calendar dates for display. Output depends only on the
// locale resolved when the Formatter is built, never on host locale or timezone.
package dates

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
)

var (
	// ErrUnsupportedLocale is returned by New for locales without a month table.
	ErrUnsupportedLocale = errors.New("unsupported locale")
	// ErrMalformedDate is returned when a static date string does not parse.
	ErrMalformedDate = errors.New("malformed date")
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en-US"

// Formatter renders dates using one resolved locale.
type Formatter struct {
	loc *locale
}

// New resolves name (a BCP 47 tag such as "en-US") against the supported locales.
func New(name string) (*Formatter, error) {
	if name == "" {
		name = DefaultLocale
	}
	tag, err := language.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnsupportedLocale, name, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedLocale, name)
	}
	return &Formatter{loc: locales[idx]}, nil
}

// Locale returns the tag the formatter resolved to.
func (f *Formatter) Locale() language.Tag { return f.loc.tag }

// Long renders "March 29, 2024" (en-US).
func (f *Formatter) Long(t time.Time) string {
	return f.loc.date(f.loc.months[t.Month()-1], t.Day(), t.Year())
}

// Short renders "Mar 29, 2024" (en-US).
func (f *Formatter) Short(t time.Time) string {
	return f.loc.date(f.loc.abbrev[t.Month()-1], t.Day(), t.Year())
}

// ISO renders the UTC calendar date as "YYYY-MM-DD".
func (f *Formatter) ISO(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// MonthYear renders a "YYYY-MM" or "YYYY-MM-DD" string as "Feb 2024".
func (f *Formatter) MonthYear(s string) (string, error) {
	t, err := ParseYearMonth(s)
	if err != nil {
		return "", err
	}
	return f.loc.abbrev[t.Month()-1] + " " + strconv.Itoa(t.Year()), nil
}

// ParseYearMonth reads the year and month of a "YYYY-MM" or "YYYY-MM-DD"
// string. The day defaults to 1 and the result is always in UTC.
func ParseYearMonth(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01", s); err == nil {
		return t, nil
	}
	t, err := ParseDay(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// ParseDay reads a "YYYY-MM-DD" string as midnight UTC.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrMalformedDate, s)
	}
	return t, nil
}
