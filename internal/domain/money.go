package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceFormatter renders whole-unit prices with locale digit grouping.
type PriceFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewPriceFormatter builds a formatter for a BCP 47 locale such as "id" or
// "en-US". Unknown locales fall back to English grouping.
func NewPriceFormatter(locale, symbol string) (*PriceFormatter, error) {
	tag := language.English
	if strings.TrimSpace(locale) != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", locale, err)
		}
		tag = parsed
	}
	return &PriceFormatter{
		printer: message.NewPrinter(tag),
		symbol:  strings.TrimSpace(symbol),
	}, nil
}

// Format renders amount without decimals, e.g. "Rp 1.500.000".
func (f *PriceFormatter) Format(amount int64) string {
	digits := f.printer.Sprintf("%d", amount)
	if f.symbol == "" {
		return digits
	}
	return f.symbol + " " + digits
}
