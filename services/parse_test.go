package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"formato europeo con moneda", "1.234,56 EUR", "1234.56"},
		{"punto decimal simple", "295.1 EUR", "295.1"},
		{"formato americano", "1,234.56", "1234.56"},
		{"coma como decimal", "45,90", "45.9"},
		{"símbolo de euro", "€ 120,00", "120"},
		{"miles sin decimales", "1.234.567", "1234567"},
		{"varios miles con coma", "1,234,567", "1234567"},
		{"negativo", "-45,50", "-45.5"},
		{"vacío", "", "0"},
		{"basura", "n/a", "0"},
		{"solo texto", "pendiente", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseAmountWithCurrency(t *testing.T) {
	tests := []struct {
		input        string
		wantAmount   string
		wantCurrency string
	}{
		{"1.234,56 EUR", "1234.56", "EUR"},
		{"100.50 USD", "100.5", "USD"},
		{"£80", "80", "GBP"},
		{"99,90", "99.9", "EUR"}, // sin moneda: EUR por defecto
		{"55 CHF", "55", "CHF"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			amount, currency := ParseAmountWithCurrency(tt.input)
			assert.Equal(t, tt.wantAmount, amount.String())
			assert.Equal(t, tt.wantCurrency, currency)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *time.Time
	}{
		{"ISO", "2025-03-15", timePtr(2025, 3, 15)},
		{"europeo con barras", "15/03/2025", timePtr(2025, 3, 15)},
		{"europeo con guiones", "15-03-2025", timePtr(2025, 3, 15)},
		{"con hora", "2025-03-15 14:30:00", timePtr(2025, 3, 15)},
		{"ilegible", "el quince de marzo", nil},
		{"vacío", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want.Year(), got.Year())
			assert.Equal(t, tt.want.Month(), got.Month())
			assert.Equal(t, tt.want.Day(), got.Day())
		})
	}
}

func timePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
