// Package pricing renders money amounts for display and converts them to the
// payment processor's minor units.
package pricing

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Default locale and currency of the storefront.
const (
	DefaultLocale   = "es-MX"
	DefaultCurrency = "MXN"
	DefaultSymbol   = "$"
)

var hundred = decimal.NewFromInt(100)

// Formatter renders amounts as localized currency strings.
type Formatter struct {
	printer  *message.Printer
	currency currency.Unit
	symbol   string
}

// NewFormatter creates a formatter for a BCP 47 locale and an ISO 4217 currency code.
func NewFormatter(locale, currencyCode, symbol string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", currencyCode, err)
	}

	if symbol == "" {
		symbol = DefaultSymbol
	}

	return &Formatter{
		printer:  message.NewPrinter(tag),
		currency: unit,
		symbol:   symbol,
	}, nil
}

// MustNewFormatter is like NewFormatter but panics on invalid input.
func MustNewFormatter(locale, currencyCode, symbol string) *Formatter {
	f, err := NewFormatter(locale, currencyCode, symbol)
	if err != nil {
		panic(err)
	}
	return f
}

// Default returns the storefront formatter (es-MX, MXN).
func Default() *Formatter {
	return MustNewFormatter(DefaultLocale, DefaultCurrency, DefaultSymbol)
}

// FormatCurrency renders amount with the currency symbol, locale grouping and
// two decimals. NaN and infinities are printed as fmt renders them.
func (f *Formatter) FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprint(amount)
	}

	// Round first so amounts that display as zero carry no sign.
	rounded := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	amount = rounded.Abs().InexactFloat64()

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(f.symbol)
	b.WriteString(f.printer.Sprint(number.Decimal(amount, number.Scale(2))))
	return b.String()
}

// Currency returns the lower-case ISO code, as the payment processor expects it.
func (f *Formatter) Currency() string {
	return strings.ToLower(f.currency.String())
}

// ToMinorUnits converts an amount to cents, rounding half away from zero.
func ToMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart()
}

// FromMinorUnits converts cents back to a major-unit amount.
func FromMinorUnits(minor int64) float64 {
	return decimal.NewFromInt(minor).Div(hundred).InexactFloat64()
}
