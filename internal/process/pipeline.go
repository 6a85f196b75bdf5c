// Package process drives the per-item pipeline: extraction, calculation,
// augmentation, the one-shot listing sort, and the feedback banner.
package process

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"fullprice/internal/augment"
	"fullprice/internal/currency"
	"fullprice/internal/extract"
	"fullprice/internal/page"
	"fullprice/internal/pricing"
)

// Pipeline applies full-price augmentation to a document. It is stateless
// across invocations; per-page state lives in Session.
type Pipeline struct {
	log *slog.Logger

	// pageSize is the item count that marks a fully loaded listing and
	// triggers the one-shot sort. Defaults to page.FullPageSize.
	pageSize int
}

func New(log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{log: log, pageSize: page.FullPageSize}
}

// WithPageSize overrides the full-page item count.
func (p *Pipeline) WithPageSize(n int) *Pipeline {
	if n > 0 {
		p.pageSize = n
	}
	return p
}

// Execute is the pipeline entry point for one trigger: it resolves the
// displayed currency, selects the single-product or item-list flow based on
// the product marker element, then, on listing pages, attempts the one-shot
// sort.
func (p *Pipeline) Execute(doc *page.Document, s *Session, refresh bool) {
	p.ExecuteWith(doc, s, currency.Resolve(doc), refresh)
}

// ExecuteWith runs the same flow with an explicit currency code, for hosts
// that resolve or override the currency themselves.
func (p *Pipeline) ExecuteWith(doc *page.Document, s *Session, cur string, refresh bool) {
	if doc.IsProductPage() {
		p.ProcessProduct(doc, cur)
		return
	}

	p.ProcessListing(doc, cur, refresh)
	p.maybeSort(doc, s)
}

// ProcessListing runs extraction, calculation, and augmentation over every
// item card. Quantity is fixed at 1 on listing pages. Items already carrying
// the augmentation marker are skipped unless refresh is set; refresh strips
// the previous block before recomputing, so an item never holds two blocks.
func (p *Pipeline) ProcessListing(doc *page.Document, cur string, refresh bool) {
	sel := doc.Selectors()
	tax := currency.TaxFor(cur)

	doc.Items().Each(func(_ int, item *goquery.Selection) {
		if augment.IsApplied(item) {
			if !refresh {
				return
			}
			// Strip first so extraction below reads the original price
			// text, not the injected block.
			augment.Remove(item)
		}

		quote := pricing.Quote{
			BasePrices: extract.Prices(item, sel.ItemPrice),
			Shipping:   extract.Shipping(item, sel.ItemShipping),
		}
		if quote.Empty() {
			// Recoverable: item stays untouched and carries no sortable
			// attributes. Diagnostic already logged by the extractor.
			return
		}

		finals := augment.Apply(item, augment.Input{
			Currency:         cur,
			Quote:            quote,
			Quantity:         1,
			Tax:              tax,
			PriceSelector:    sel.ItemPrice,
			ShippingSelector: sel.ItemShipping,
		})
		stampPrices(item, finals)
	})
}

// stampPrices records the computed bounds as attributes for the sort step.
// Upper equals lower when the source price was not a range. Exact decimal
// strings, so sorting never goes through floats.
func stampPrices(item *goquery.Selection, finals []decimal.Decimal) {
	if len(finals) == 0 {
		return
	}
	lower := finals[0]
	upper := lower
	if len(finals) > 1 {
		upper = finals[1]
	}
	item.SetAttr(page.AttrLowerPrice, lower.String())
	item.SetAttr(page.AttrUpperPrice, upper.String())
}
