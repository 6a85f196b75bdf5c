// Package augment injects the computed full price into an item's subtree
// and de-emphasizes the original price and shipping text. It never removes
// host elements; refresh flows strip the previous block via Remove before
// re-applying.
package augment

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"fullprice/internal/page"
	"fullprice/internal/pricing"
)

const dimStyle = "font-size: 8px; color: lightgrey"

// Input carries everything needed to render one item's augmentation block.
type Input struct {
	Currency string
	Quote    pricing.Quote
	Quantity int
	Tax      decimal.Decimal

	PriceSelector    string
	ShippingSelector string
}

// IsApplied reports whether the item already carries an augmentation block.
func IsApplied(item *goquery.Selection) bool {
	return item.Find("."+page.MarkerClass).Length() > 0
}

// Remove strips a previously injected augmentation block, returning whether
// one was present. Used on the refresh path so an item never carries more
// than one block.
func Remove(item *goquery.Selection) bool {
	block := item.Find("." + page.MarkerClass)
	if block.Length() == 0 {
		return false
	}
	block.Remove()
	return true
}

// Apply computes the final prices for the item and inserts a fresh
// augmentation block immediately before the original price element. The
// original price and shipping elements are dimmed, not deleted. Returns the
// full-precision final prices for the caller to attach as sortable
// attributes; display values are rounded to 2 decimal places.
//
// Missing price or shipping elements are skipped defensively; nothing is
// inserted when the price element itself is absent.
func Apply(item *goquery.Selection, in Input) []decimal.Decimal {
	finals := pricing.Finalize(in.Quote, in.Quantity, in.Tax)
	if len(finals) == 0 {
		return nil
	}

	priceTag := item.Find(in.PriceSelector).First()
	shippingTag := item.Find(in.ShippingSelector).First()

	if priceTag.Length() > 0 {
		priceTag.SetAttr("style", dimStyle)
	}
	if shippingTag.Length() > 0 {
		shippingTag.SetAttr("style", dimStyle)
	}

	if priceTag.Length() == 0 {
		return finals
	}
	priceTag.BeforeHtml(renderBlock(in, finals))

	return finals
}

func renderBlock(in Input, finals []decimal.Decimal) string {
	var b strings.Builder

	b.WriteString(`<span class="` + page.MarkerClass + `">`)
	b.WriteString(`<span style="font-size: 8px; color: blueviolet">full price applied</span><br/>`)

	if in.Tax.GreaterThan(decimal.NewFromInt(1)) {
		b.WriteString(`<span style="font-size: 10px">(Shipping + AU Tax included)</span><br/>`)
	} else {
		b.WriteString(`<span style="font-size: 10px">(Shipping included)</span><br/>`)
	}

	for _, final := range finals {
		perUnit := ""
		if in.Quantity > 1 {
			perUnit = fmt.Sprintf(`<span style="font-size: 10px"> (1 pc: %s)</span>`,
				pricing.PerUnit(final, in.Quantity).StringFixed(2))
		}
		b.WriteString(fmt.Sprintf(`<span class="price-current">%s $%s%s</span><br/>`,
			html.EscapeString(in.Currency), final.StringFixed(2), perUnit))
	}

	b.WriteString(`</span>`)
	return b.String()
}
