package reldate

import "time"

// Unit is the calendar component a relative phrase is expressed in
type Unit int

const (
	UnitNone Unit = iota
	UnitSecond
	UnitMinute
	UnitHour
	UnitDay
	UnitMonth
	UnitYear
)

var unitNames = map[Unit]string{
	UnitNone:   "none",
	UnitSecond: "seconds",
	UnitMinute: "minutes",
	UnitHour:   "hours",
	UnitDay:    "days",
	UnitMonth:  "months",
	UnitYear:   "years",
}

func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return "unknown"
}

// Direction tells whether the date lies before or after its reference
type Direction int

const (
	Past Direction = iota
	Future
)

func (d Direction) String() string {
	if d == Future {
		return "future"
	}
	return "past"
}

// Span is the calendar decomposition of the interval between two instants.
// Components are never negative; Direction carries the sign.
type Span struct {
	Years     int
	Months    int
	Days      int
	Hours     int
	Minutes   int
	Seconds   int
	Direction Direction
}

// Largest returns the coarsest non-zero component.
// UnitNone is returned when the instants are less than a second apart.
func (s Span) Largest() (Unit, int) {
	switch {
	case s.Years > 0:
		return UnitYear, s.Years
	case s.Months > 0:
		return UnitMonth, s.Months
	case s.Days > 0:
		return UnitDay, s.Days
	case s.Hours > 0:
		return UnitHour, s.Hours
	case s.Minutes > 0:
		return UnitMinute, s.Minutes
	case s.Seconds > 0:
		return UnitSecond, s.Seconds
	default:
		return UnitNone, 0
	}
}

// IsZero reports whether the span is shorter than one second
func (s Span) IsZero() bool {
	unit, _ := s.Largest()
	return unit == UnitNone
}

// Operation identifies the formatter entry point in hook contexts
type Operation string

const (
	OpRelativeToDate          Operation = "relative_to_date"
	OpRelativeToNow           Operation = "relative_to_now"
	OpRelativeFromMidnightUTC Operation = "relative_from_midnight_utc"
	OpYearsAgoPhrase          Operation = "years_ago_phrase"
	OpYearsAgo                Operation = "years_ago"
)

// message identifiers used by the phrase catalogs
const (
	msgNow       = "relative.now"
	msgToday     = "relative.today"
	msgYesterday = "relative.yesterday"
	msgTomorrow  = "relative.tomorrow"
	msgYearsAgo  = "relative.years_ago"
	msgThisYear  = "relative.this_year"
	msgLastYear  = "relative.last_year"
)

func unitMessageID(unit Unit, direction Direction) string {
	return "relative." + unit.String() + "." + direction.String()
}

// civilDate is a calendar day without a time of day or zone
type civilDate struct {
	Year  int
	Month time.Month
	Day   int
}

func civilDateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{Year: y, Month: m, Day: d}
}

const secondsPerDay = 24 * 60 * 60

// daysSince returns the number of calendar days from other to d.
// Unix seconds keep the count exact past the range of time.Duration.
func (d civilDate) daysSince(other civilDate) int {
	a := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	b := time.Date(other.Year, other.Month, other.Day, 0, 0, 0, 0, time.UTC)
	return int((a.Unix() - b.Unix()) / secondsPerDay)
}
