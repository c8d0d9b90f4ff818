package reldate

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/text/language"
)

// Formatter renders localized relative date phrases.
// It is immutable after construction and safe for concurrent use.
type Formatter struct {
	store    PhraseStore
	catalog  *LanguageCatalog
	resolver FallbackResolver
	clock    clockwork.Clock
	loc      *time.Location
	language string
	allowed  map[string]struct{}
	hooks    []FormatHook
}

// Language returns the language used when a call does not name one
func (f *Formatter) Language() string {
	if f == nil {
		return "en"
	}
	return f.language
}

// Location returns the zone calendar arithmetic is evaluated in
func (f *Formatter) Location() *time.Location {
	if f == nil || f.loc == nil {
		return time.UTC
	}
	return f.loc
}

// Catalog exposes the language table the formatter was built with
func (f *Formatter) Catalog() *LanguageCatalog {
	if f == nil {
		return nil
	}
	return f.catalog
}

// In returns a view of the formatter bound to lang. An empty lang returns f.
func (f *Formatter) In(lang string) *Formatter {
	lang = normalizeLanguage(lang)
	if f == nil || lang == "" || lang == f.language {
		return f
	}
	clone := *f
	clone.language = lang
	return &clone
}

// Span decomposes the interval between date and reference in the formatter's zone
func (f *Formatter) Span(date, reference time.Time) Span {
	return Decompose(date, reference, f.Location())
}

// RelativeToNow describes date relative to the current instant.
// The clock is read exactly once.
func (f *Formatter) RelativeToNow(date time.Time) string {
	return f.relative(OpRelativeToNow, date, f.now())
}

// RelativeToDate describes date relative to reference, "2 days ago" when date
// is earlier and "in 2 days" when it is later.
func (f *Formatter) RelativeToDate(date, reference time.Time) string {
	return f.relative(OpRelativeToDate, date, reference)
}

func (f *Formatter) relative(op Operation, date, reference time.Time) string {
	span := f.Span(date, reference)
	unit, value := span.Largest()

	ctx := f.newContext(op, f.Language())
	ctx.Unit = unit
	ctx.Value = value
	ctx.Direction = span.Direction

	return f.format(ctx, func(ctx *FormatContext) (string, int) {
		if ctx.Unit == UnitNone {
			return msgNow, -1
		}
		return unitMessageID(ctx.Unit, ctx.Direction), ctx.Value
	})
}

// RelativeFromMidnightUTC treats date as the UTC midnight of a calendar day and
// compares that day with the current day in the formatter's zone.
func (f *Formatter) RelativeFromMidnightUTC(date time.Time) string {
	today := civilDateOf(f.now().In(f.Location()))
	offset := dayOffset(civilDateOf(date.UTC()), today)

	ctx := f.newContext(OpRelativeFromMidnightUTC, f.Language())
	ctx.Unit = UnitDay
	ctx.Value = offset
	ctx.Direction = Past
	if offset > 0 {
		ctx.Direction = Future
	} else {
		ctx.Value = -offset
	}

	return f.format(ctx, func(ctx *FormatContext) (string, int) {
		switch {
		case ctx.Value == 0:
			return msgToday, -1
		case ctx.Value == 1 && ctx.Direction == Past:
			return msgYesterday, -1
		case ctx.Value == 1 && ctx.Direction == Future:
			return msgTomorrow, -1
		default:
			return unitMessageID(UnitDay, ctx.Direction), ctx.Value
		}
	})
}

// YearsAgoPhrase returns the bare "years ago" fragment for lang. An empty lang
// uses the formatter language; unknown languages fall back silently.
func (f *Formatter) YearsAgoPhrase(lang string) string {
	ctx := f.newContext(OpYearsAgoPhrase, f.requested(lang))
	return f.format(ctx, func(*FormatContext) (string, int) {
		return msgYearsAgo, -1
	})
}

// FormatYearsAgo composes an anniversary caption: "This year", "Last year"
// or "n years ago".
func (f *Formatter) FormatYearsAgo(lang string, years int) string {
	ctx := f.newContext(OpYearsAgo, f.requested(lang))
	ctx.Unit = UnitYear
	ctx.Value = years
	ctx.Direction = Past
	if years < 0 {
		ctx.Value = -years
		ctx.Direction = Future
	}

	return f.format(ctx, func(ctx *FormatContext) (string, int) {
		switch {
		case ctx.Value == 0:
			return msgThisYear, -1
		case ctx.Value == 1 && ctx.Direction == Past:
			return msgLastYear, -1
		default:
			return unitMessageID(UnitYear, ctx.Direction), ctx.Value
		}
	})
}

func (f *Formatter) now() time.Time {
	if f == nil || f.clock == nil {
		return time.Now()
	}
	return f.clock.Now()
}

func (f *Formatter) requested(lang string) string {
	if lang = normalizeLanguage(lang); lang != "" {
		return lang
	}
	return f.Language()
}

func (f *Formatter) newContext(op Operation, lang string) *FormatContext {
	return &FormatContext{
		Operation:         op,
		RequestedLanguage: lang,
	}
}

// format resolves the message chosen by pick, after the Before hooks had a
// chance to adjust the context.
func (f *Formatter) format(ctx *FormatContext, pick func(ctx *FormatContext) (id string, count int)) string {
	var hooks []FormatHook
	if f != nil {
		hooks = f.hooks
	}

	return runHooks(hooks, ctx, func(ctx *FormatContext) {
		id, count := pick(ctx)
		candidates := f.candidates(ctx.RequestedLanguage)

		var phrase Phrase
		if f != nil && f.store != nil {
			phrase = f.store.Phrase(candidates, id, count)
		}
		if strings.TrimSpace(phrase.Text) == "" {
			phrase = builtinPhrase(id, count)
		}

		ctx.Result = phrase.Text
		ctx.Language = phrase.Language
		ctx.Fallback = len(candidates) == 0 || !sameBaseLanguage(candidates[0], phrase.Language)
	})
}

// candidates lists the lookup tags for lang, most preferred first: the catalog
// tag, catalog fallbacks, resolver fallbacks, then the parents of each.
// The default language is appended last.
func (f *Formatter) candidates(lang string) []string {
	code := normalizeLanguage(lang)
	if f == nil {
		return []string{"en"}
	}
	if len(f.allowed) > 0 && code != "" {
		if _, ok := f.allowed[code]; !ok {
			code = f.language
		}
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(tag string) {
		key := strings.ToLower(tag)
		if key == "" {
			return
		}
		if _, exists := seen[key]; exists {
			return
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}

	var chain []string
	if code != "" {
		chain = append(chain, code)
		chain = append(chain, f.catalog.Fallbacks(code)...)
		if f.resolver != nil {
			chain = append(chain, f.resolver.Resolve(code)...)
		}
	}
	chain = append(chain, f.language)

	for _, member := range chain {
		tag := f.catalog.Tag(member)
		add(tag)
		for _, parent := range languageParentChain(tag) {
			add(parent)
		}
	}

	return out
}

var builtinOne = map[string]string{
	msgNow:       "now",
	msgToday:     "Today",
	msgYesterday: "Yesterday",
	msgTomorrow:  "Tomorrow",
	msgYearsAgo:  "years ago",
	msgThisYear:  "This year",
	msgLastYear:  "Last year",
}

var englishCounts = newCountPrinter(language.English)

// builtinPhrase is the English rendering used when no catalog provides id
func builtinPhrase(id string, count int) Phrase {
	if text, ok := builtinOne[id]; ok {
		return Phrase{Text: text, Language: "en"}
	}

	parts := strings.Split(strings.TrimPrefix(id, "relative."), ".")
	if len(parts) != 2 {
		return Phrase{Text: builtinOne[msgNow], Language: "en"}
	}

	unit := parts[0]
	if count == 1 {
		unit = strings.TrimSuffix(unit, "s")
	}
	value := englishCounts.format(count)

	if parts[1] == Future.String() {
		return Phrase{Text: fmt.Sprintf("in %s %s", value, unit), Language: "en"}
	}
	return Phrase{Text: fmt.Sprintf("%s %s ago", value, unit), Language: "en"}
}
