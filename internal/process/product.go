package process

import (
	"strconv"
	"strings"

	"fullprice/internal/augment"
	"fullprice/internal/currency"
	"fullprice/internal/extract"
	"fullprice/internal/page"
	"fullprice/internal/pricing"
	fperrors "fullprice/pkg/errors"
)

// ProcessProduct mirrors the listing flow for the single-product detail
// view. It always force-refreshes: only one item exists and its quantity or
// price may have just changed, so any prior block is removed unconditionally
// before recomputing.
func (p *Pipeline) ProcessProduct(doc *page.Document, cur string) {
	sel := doc.Selectors()

	info := doc.ProductInfo()
	if info.Length() == 0 {
		p.log.Warn("product info block missing", "selector", sel.ProductInfo)
		return
	}

	augment.Remove(info)

	quote := pricing.Quote{
		BasePrices: extract.Prices(info, sel.ProductPrice),
		Shipping:   extract.Shipping(info, sel.ProductShipping),
	}
	if quote.Empty() {
		return
	}

	qty := p.readQuantity(doc)
	finals := augment.Apply(info, augment.Input{
		Currency:         cur,
		Quote:            quote,
		Quantity:         qty,
		Tax:              currency.TaxFor(cur),
		PriceSelector:    sel.ProductPrice,
		ShippingSelector: sel.ProductShipping,
	})
	stampPrices(info, finals)
}

// readQuantity reads the numeric quantity input. Anything missing,
// unparseable, or below 1 degrades to 1.
func (p *Pipeline) readQuantity(doc *page.Document) int {
	sel := doc.Selectors()

	input := doc.Find(sel.Quantity).First()
	if input.Length() == 0 {
		return 1
	}
	raw, _ := input.Attr("value")
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty < 1 {
		p.log.Warn("invalid quantity input, using 1",
			"error", fperrors.NewBadQuantityError(raw))
		return 1
	}
	return qty
}
