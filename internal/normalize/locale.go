// ABOUTME: Locale-aware date and number formatting for export rows.
// ABOUTME: Matches a requested language tag to a supported layout set via golang.org/x/text.
package normalize

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ISODateLayout is used when no locale-specific layout applies.
const ISODateLayout = "2006-01-02 15:04:05"

// Locale holds the formatters for one language. It is read-only after
// construction and safe to share between exports.
type Locale struct {
	Tag language.Tag
	// DateLayout is the Go time layout for display strings.
	DateLayout string
	// ExcelDateFormat and ExcelNumberFormat are spreadsheet number formats.
	// Empty means the writer's fallback applies.
	ExcelDateFormat   string
	ExcelNumberFormat string

	printer *message.Printer
}

type localeDef struct {
	tag         language.Tag
	dateLayout  string
	excelDate   string
	excelNumber string
}

// The first entry is the fallback for unmatched languages.
var localeDefs = []localeDef{
	{language.Und, ISODateLayout, "", ""},
	{language.AmericanEnglish, "1/2/06, 3:04 PM", "m/d/yy h:mm AM/PM", "#,##0.00"},
	{language.BritishEnglish, "02/01/2006, 15:04", "dd/mm/yyyy hh:mm", "#,##0.00"},
	{language.German, "02.01.06, 15:04", "dd.mm.yy hh:mm", "#,##0.00"},
	{language.French, "02/01/2006 15:04", "dd/mm/yyyy hh:mm", "#,##0.00"},
	{language.Japanese, "2006/01/02 15:04", "yyyy/mm/dd hh:mm", "#,##0.00"},
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(localeDefs))
	for i, d := range localeDefs {
		tags[i] = d.tag
	}
	return language.NewMatcher(tags)
}()

// LoadLocale returns the best supported locale for a BCP 47 tag such as
// "en-US" or "de". An empty name selects the ISO fallback.
func LoadLocale(name string) (*Locale, error) {
	if name == "" {
		return newLocale(localeDefs[0]), nil
	}

	tag, err := language.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", name, err)
	}

	_, index, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		index = 0
	}
	return newLocale(localeDefs[index]), nil
}

// ISOLocale returns the fallback locale with ISO-like dates.
func ISOLocale() *Locale {
	return newLocale(localeDefs[0])
}

func newLocale(d localeDef) *Locale {
	return &Locale{
		Tag:               d.tag,
		DateLayout:        d.dateLayout,
		ExcelDateFormat:   d.excelDate,
		ExcelNumberFormat: d.excelNumber,
		printer:           message.NewPrinter(d.tag),
	}
}

// FormatNumber renders v with exactly two fraction digits and the locale's
// grouping and decimal separators.
func (l *Locale) FormatNumber(v float64) string {
	return l.printer.Sprint(number.Decimal(v, number.Scale(2)))
}

// FormatTime renders t in loc using the locale's date layout.
func (l *Locale) FormatTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(l.DateLayout)
}
