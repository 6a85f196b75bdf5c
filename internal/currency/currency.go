// Package currency resolves the displayed currency code and maps it to the
// applicable tax factor.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"

	"fullprice/internal/page"
)

var (
	taxNone = decimal.NewFromInt(1)
	taxAU   = decimal.RequireFromString("1.1")
)

// Resolve reads the currently displayed currency code from the page.
// Returns "" while the page is still loading or the element is absent;
// absence is not an error, it degrades to untaxed behavior.
func Resolve(doc *page.Document) string {
	el := doc.Find(doc.Selectors().Currency)
	if el.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(el.First().Text())
}

// TaxFor maps a currency code to its multiplicative tax factor. Total
// function: the Australian jurisdiction (three accepted spellings,
// case-sensitive) carries 10% tax, every other code none.
func TaxFor(code string) decimal.Decimal {
	switch code {
	case "AUD", "AU", "A":
		return taxAU
	default:
		return taxNone
	}
}
