package dates

import (
	"strconv"

	"golang.org/x/text/language"
)

type locale struct {
	tag      language.Tag
	months   [12]string
	abbrev   [12]string
	dayFirst bool
}

func (l *locale) date(month string, day, year int) string {
	if l.dayFirst {
		return strconv.Itoa(day) + " " + month + " " + strconv.Itoa(year)
	}
	return month + " " + strconv.Itoa(day) + ", " + strconv.Itoa(year)
}

var englishMonths = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// locales is indexed in the same order as the matcher's supported tags.
var locales = []*locale{
	{
		tag:    language.AmericanEnglish,
		months: englishMonths,
		abbrev: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	},
	{
		tag:      language.BritishEnglish,
		months:   englishMonths,
		abbrev:   [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sept", "Oct", "Nov", "Dec"},
		dayFirst: true,
	},
}

var matcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
})
