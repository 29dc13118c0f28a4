package templates

import (
	"fmt"
	"time"

	"croniq/pkg/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is shown for absent values
const Placeholder = "N/A"

const timeLayout = "Jan 2, 2006 15:04:05 MST"

// Formatter renders numbers and timestamps for display
type Formatter struct {
	printer *message.Printer
	loc     *time.Location
}

// NewFormatter creates a formatter for a BCP 47 locale and an IANA time
// zone name ("Local" for the host zone)
func NewFormatter(locale, timezone string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Formatter{printer: message.NewPrinter(tag), loc: loc}, nil
}

// DefaultFormatter formats for English in UTC
func DefaultFormatter() *Formatter {
	return &Formatter{printer: message.NewPrinter(language.English), loc: time.UTC}
}

// Number formats n with the locale's digit grouping
func (f *Formatter) Number(n int) string {
	return f.printer.Sprintf("%d", n)
}

// Time formats ts in the formatter's zone, or returns Placeholder when
// ts is unset
func (f *Formatter) Time(ts models.Timestamp) string {
	if ts.IsZero() {
		return Placeholder
	}
	return ts.In(f.loc).Format(timeLayout)
}
