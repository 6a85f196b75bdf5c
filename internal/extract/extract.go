// Package extract parses free-form price and shipping text into numeric
// values. Host pages render prices as loose text ("US $12.50 - $15.00",
// "Shipping: $3.20", "Free Shipping"), so matching is tolerant: decimal
// amounts with an optional fractional part, no thousands separators.
package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	fperrors "fullprice/pkg/errors"
)

// priceRange captures a leading dollar amount and, optionally, a second
// amount separated by a dash (a price range). The second amount may or may
// not repeat the dollar sign.
var priceRange = regexp.MustCompile(`\$(\d+\.?\d*)(?:\s*-\s*\$?(\d+\.?\d*))?`)

// singleAmount matches one dollar amount anywhere in the text.
var singleAmount = regexp.MustCompile(`\$(\d+\.?\d*)`)

// Prices reads the price text at priceSelector within item and returns the
// base prices found: one element, or two for a ranged price (lower first).
// An empty slice means no price could be extracted; this is recoverable and
// logged for operators, the item is simply skipped downstream.
func Prices(item *goquery.Selection, priceSelector string) []decimal.Decimal {
	text := item.Find(priceSelector).Text()
	if text == "" {
		slog.Warn("price element empty or missing",
			"error", fperrors.NewElementNotFoundError(priceSelector))
		return nil
	}

	m := priceRange.FindStringSubmatch(text)
	if m == nil {
		slog.Warn("could not extract item price",
			"error", fperrors.NewPriceNotFoundError(priceSelector, text))
		return nil
	}

	lower, err := parseAmount(m[1])
	if err != nil {
		slog.Warn("unparseable price amount",
			"error", fperrors.NewParseFailedError(priceSelector, m[1]))
		return nil
	}
	prices := []decimal.Decimal{lower}

	if m[2] != "" {
		upper, err := parseAmount(m[2])
		if err == nil {
			prices = append(prices, upper)
		}
	}
	return prices
}

// parseAmount turns a matched amount into a decimal. The pattern admits a
// bare trailing dot ("12."), which the decimal parser does not.
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSuffix(s, "."))
}

// Shipping reads the shipping text at shippingSelector within item and
// returns the shipping cost. No dollar match means free or unspecified
// shipping and yields zero; explicitly not an error.
func Shipping(item *goquery.Selection, shippingSelector string) decimal.Decimal {
	text := item.Find(shippingSelector).Text()

	m := singleAmount.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero
	}

	cost, err := parseAmount(m[1])
	if err != nil {
		return decimal.Zero
	}
	return cost
}
