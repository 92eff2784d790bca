package services

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Monedas reconocidas en los exports; por defecto EUR.
var knownCurrencies = []string{"EUR", "USD", "GBP", "CHF"}

var currencySymbols = map[string]string{
	"€": "EUR",
	"$": "USD",
	"£": "GBP",
}

// ParseAmount convierte un importe en texto a decimal. Admite tanto el
// formato europeo "1.234,56" como "1,234.56": si aparecen coma y punto,
// el separador situado más a la derecha es el decimal. Una entrada
// ilegible devuelve 0, nunca error, para que una fila corrupta no
// aborte la importación.
func ParseAmount(text string) decimal.Decimal {
	cleaned := cleanAmount(text)
	if cleaned == "" {
		return decimal.Zero
	}

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			// formato europeo: el punto es separador de miles
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasComma:
		if strings.Count(cleaned, ",") == 1 {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasDot:
		if strings.Count(cleaned, ".") > 1 {
			// "1.234.567" solo puede ser agrupación de miles
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// ParseAmountWithCurrency separa importe y moneda ("1.234,56 EUR").
func ParseAmountWithCurrency(text string) (decimal.Decimal, string) {
	currency := "EUR"

	upper := strings.ToUpper(text)
	for _, code := range knownCurrencies {
		if strings.Contains(upper, code) {
			currency = code
			break
		}
	}
	for symbol, code := range currencySymbols {
		if strings.Contains(text, symbol) {
			currency = code
			break
		}
	}

	return ParseAmount(text), currency
}

// cleanAmount se queda con dígitos, signo y separadores
func cleanAmount(text string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(text) {
		if unicode.IsDigit(r) || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Formatos de fecha aceptados, en orden de preferencia. Los exports de
// las OTAs mezclan ISO y formatos locales según la revisión.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"02.01.2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate intenta los formatos conocidos y devuelve nil si ninguno
// encaja, para que el llamador descarte la fila con su motivo en vez
// de abortar el lote.
func ParseDate(text string) *time.Time {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t
		}
	}
	return nil
}
