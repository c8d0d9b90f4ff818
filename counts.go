package reldate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// countPrinter renders plural counts with the digits and grouping of a language
type countPrinter struct {
	tag     language.Tag
	printer *message.Printer
}

func newCountPrinter(tag language.Tag) *countPrinter {
	return &countPrinter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

func (p *countPrinter) format(value int) string {
	if p == nil || p.printer == nil {
		return message.NewPrinter(language.English).Sprintf("%v", number.Decimal(value))
	}
	return p.printer.Sprintf("%v", number.Decimal(value))
}
