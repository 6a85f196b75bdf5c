package augment

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fullprice/internal/page"
	"fullprice/internal/pricing"
)

const itemHTML = `<html><body><div class="list-item">
  <span class="price-current">$10.00</span>
  <span class="shipping-value">Shipping: $5.00</span>
</div></body></html>`

func parseItem(t *testing.T, raw string) (*page.Document, *goquery.Selection) {
	t.Helper()
	doc, err := page.ParseString(raw, page.DefaultSelectors())
	require.NoError(t, err)
	item := doc.Find(".list-item")
	require.Equal(t, 1, item.Length())
	return doc, item
}

func quote(prices ...string) pricing.Quote {
	q := pricing.Quote{}
	for _, p := range prices {
		q.BasePrices = append(q.BasePrices, decimal.RequireFromString(p))
	}
	return q
}

func taxedInput() Input {
	q := quote("10")
	q.Shipping = decimal.RequireFromString("5")
	return Input{
		Currency:         "AUD",
		Quote:            q,
		Quantity:         2,
		Tax:              decimal.RequireFromString("1.1"),
		PriceSelector:    "span.price-current",
		ShippingSelector: ".shipping-value",
	}
}

func TestApplyInsertsBlockBeforePrice(t *testing.T) {
	doc, item := parseItem(t, itemHTML)

	finals := Apply(item, taxedInput())

	require.Len(t, finals, 1)
	assert.True(t, finals[0].Equal(decimal.RequireFromString("27.5")))
	assert.True(t, IsApplied(item))

	rendered, err := doc.RenderString()
	require.NoError(t, err)
	assert.Contains(t, rendered, "AUD $27.50")
	assert.Contains(t, rendered, "(1 pc: 13.75)")
	assert.Contains(t, rendered, "(Shipping + AU Tax included)")

	// Block precedes the original (now dimmed) price element.
	block := item.Find("." + page.MarkerClass)
	require.Equal(t, 1, block.Length())
	next := block.Next()
	assert.True(t, next.HasClass("price-current"))
	style, _ := next.Attr("style")
	assert.Contains(t, style, "lightgrey")
}

func TestApplyUntaxedAnnotation(t *testing.T) {
	doc, item := parseItem(t, itemHTML)

	in := taxedInput()
	in.Currency = "USD"
	in.Tax = decimal.NewFromInt(1)
	Apply(item, in)

	rendered, err := doc.RenderString()
	require.NoError(t, err)
	assert.Contains(t, rendered, "(Shipping included)")
	assert.NotContains(t, rendered, "AU Tax")
}

func TestApplyRangeRendersOneLinePerPrice(t *testing.T) {
	doc, item := parseItem(t, itemHTML)

	in := Input{
		Currency:      "USD",
		Quote:         quote("12.50", "15.00"),
		Quantity:      1,
		Tax:           decimal.NewFromInt(1),
		PriceSelector: "span.price-current",
	}
	finals := Apply(item, in)

	require.Len(t, finals, 2)
	rendered, err := doc.RenderString()
	require.NoError(t, err)
	assert.Contains(t, rendered, "USD $12.50")
	assert.Contains(t, rendered, "USD $15.00")
	// quantity 1: no per-unit line
	assert.NotContains(t, rendered, "1 pc:")
}

func TestApplyMissingPriceElementIsNoOp(t *testing.T) {
	_, item := parseItem(t, `<html><body><div class="list-item"><span class="title">x</span></div></body></html>`)

	finals := Apply(item, taxedInput())

	// Computation still succeeds; nothing is inserted.
	require.Len(t, finals, 1)
	assert.False(t, IsApplied(item))
}

func TestApplyEmptyQuote(t *testing.T) {
	_, item := parseItem(t, itemHTML)

	in := taxedInput()
	in.Quote = pricing.Quote{}
	assert.Nil(t, Apply(item, in))
	assert.False(t, IsApplied(item))
}

func TestRemove(t *testing.T) {
	_, item := parseItem(t, itemHTML)

	Apply(item, taxedInput())
	require.True(t, IsApplied(item))

	assert.True(t, Remove(item))
	assert.False(t, IsApplied(item))
	assert.False(t, Remove(item))
}
