package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name        string
		locale      string
		currency    string
		expectError bool
	}{
		{name: "Default storefront settings", locale: "es-MX", currency: "MXN"},
		{name: "US dollars", locale: "en-US", currency: "USD"},
		{name: "Invalid locale", locale: "not a locale!", currency: "MXN", expectError: true},
		{name: "Invalid currency", locale: "es-MX", currency: "XXXX", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFormatter(tt.locale, tt.currency, "$")
			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, f)
		})
	}
}

func TestFormatter_FormatCurrency(t *testing.T) {
	f := MustNewFormatter("en-US", "USD", "$")

	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "Zero", amount: 0, expected: "$0.00"},
		{name: "Whole amount with grouping", amount: 1000, expected: "$1,000.00"},
		{name: "Fractional amount", amount: 99.5, expected: "$99.50"},
		{name: "Large amount", amount: 1250000, expected: "$1,250,000.00"},
		{name: "Negative amount", amount: -450, expected: "-$450.00"},
		{name: "Negative amount rounding to zero", amount: -0.001, expected: "$0.00"},
		{name: "Negative half cent", amount: -0.005, expected: "-$0.01"},
		{name: "Rounds half away from zero", amount: 2.675, expected: "$2.68"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.FormatCurrency(tt.amount))
		})
	}
}

func TestFormatter_FormatCurrency_DefaultLocale(t *testing.T) {
	f := Default()

	formatted := f.FormatCurrency(1000)
	assert.True(t, len(formatted) > 1)
	assert.Equal(t, "$", formatted[:1])
	assert.Equal(t, "mxn", f.Currency())
}

func TestFormatter_FormatCurrency_NonFinite(t *testing.T) {
	f := Default()

	assert.Equal(t, "NaN", f.FormatCurrency(math.NaN()))
	assert.Equal(t, "+Inf", f.FormatCurrency(math.Inf(1)))
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected int64
	}{
		{name: "Whole amount", amount: 1000, expected: 100000},
		{name: "Cents", amount: 19.99, expected: 1999},
		{name: "Float noise rounds to nearest cent", amount: 0.1 + 0.2, expected: 30},
		{name: "Half cent rounds up", amount: 10.005, expected: 1001},
		{name: "Discounted total", amount: 900, expected: 90000},
		{name: "Zero", amount: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToMinorUnits(tt.amount))
		})
	}
}

func TestFromMinorUnits(t *testing.T) {
	assert.Equal(t, 19.99, FromMinorUnits(1999))
	assert.Equal(t, 1000.0, FromMinorUnits(100000))
	assert.Equal(t, 0.0, FromMinorUnits(0))
}
