package reldate

import (
	"sync"
	"time"
)

var (
	defaultOnce      sync.Once
	defaultFormatter *Formatter
)

// Default returns the shared formatter built from the embedded catalogs and
// the process environment. Construction errors leave a formatter that renders
// the built-in English phrases.
func Default() *Formatter {
	defaultOnce.Do(func() {
		f, err := New()
		if err != nil {
			f = &Formatter{language: ResolveLanguage(""), loc: time.Local}
		}
		defaultFormatter = f
	})
	return defaultFormatter
}

// RelativeDateToNow describes date relative to the current instant
func RelativeDateToNow(date time.Time) string {
	return Default().RelativeToNow(date)
}

// RelativeDateToDate describes from relative to to
func RelativeDateToDate(from, to time.Time) string {
	return Default().RelativeToDate(from, to)
}

// RelativeDateFromMidnightUTC describes the calendar day whose UTC midnight is date
func RelativeDateFromMidnightUTC(date time.Time) string {
	return Default().RelativeFromMidnightUTC(date)
}

// YearsAgoPhrase returns the localized "years ago" fragment for lang
func YearsAgoPhrase(lang string) string {
	return Default().YearsAgoPhrase(lang)
}
