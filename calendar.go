package reldate

import "time"

// Decompose splits the interval between date and reference into calendar
// components evaluated in loc. Years, months and days follow wall-clock
// calendar arithmetic, so daylight saving transitions never shift a day count;
// the remainder below one day is measured as elapsed time.
func Decompose(date, reference time.Time, loc *time.Location) Span {
	if loc == nil {
		loc = time.UTC
	}

	from := date.In(loc)
	to := reference.In(loc)

	span := Span{Direction: Past}
	if from.After(to) {
		from, to = to, from
		span.Direction = Future
	}

	years := to.Year() - from.Year()
	if years > 0 && from.AddDate(years, 0, 0).After(to) {
		years--
	}
	anchor := from.AddDate(years, 0, 0)

	months := 0
	for months < 12 && !anchor.AddDate(0, months+1, 0).After(to) {
		months++
	}
	anchor = anchor.AddDate(0, months, 0)

	days := civilDateOf(to).daysSince(civilDateOf(anchor))
	for days > 0 && anchor.AddDate(0, 0, days).After(to) {
		days--
	}
	if days < 0 {
		days = 0
	}
	anchor = anchor.AddDate(0, 0, days)

	rest := to.Sub(anchor)
	if rest < 0 {
		rest = 0
	}

	span.Years = years
	span.Months = months
	span.Days = days
	span.Hours = int(rest / time.Hour)
	rest -= time.Duration(span.Hours) * time.Hour
	span.Minutes = int(rest / time.Minute)
	rest -= time.Duration(span.Minutes) * time.Minute
	span.Seconds = int(rest / time.Second)

	return span
}

// dayOffset returns the number of calendar days from today to day.
// Negative values are in the past.
func dayOffset(day, today civilDate) int {
	return day.daysSince(today)
}
