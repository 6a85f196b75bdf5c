package process

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"

	"fullprice/internal/page"
)

// maybeSort runs the one-shot stable sort once the listing first holds
// exactly one full page of items. The latch in the session guarantees it
// never runs again, even if the container keeps mutating.
func (p *Pipeline) maybeSort(doc *page.Document, s *Session) {
	if s.Sorted {
		return
	}

	count := doc.Items().Length()
	if count != p.pageSize {
		ShowBanner(doc, MsgKeepScrolling)
		return
	}

	s.Sorted = true
	p.sortItems(doc)
	ShowBanner(doc, MsgSorted)
	p.log.Info("listing sorted by full price", "session", s.ID, "items", count)
}

type sortEntry struct {
	node  *html.Node
	price decimal.Decimal
	ok    bool
}

// sortItems detaches every item card, orders by ascending lower-bound full
// price, and re-appends to the container. The sort is stable, so ties keep
// their prior relative order. Items that never got a computed price carry no
// attribute and are kept after all priced items rather than compared as
// garbage.
func (p *Pipeline) sortItems(doc *page.Document) {
	container := doc.ListContainer()
	if container == nil {
		p.log.Warn("list container missing, skipping sort",
			"selector", doc.Selectors().ListContainer)
		return
	}

	entries := make([]sortEntry, 0, p.pageSize)
	for _, n := range doc.Items().Nodes {
		e := sortEntry{node: n}
		if raw, found := nodeAttr(n, page.AttrLowerPrice); found {
			if d, err := decimal.NewFromString(raw); err == nil {
				e.price = d
				e.ok = true
			}
		}
		entries = append(entries, e)
	}

	for _, e := range entries {
		if e.node.Parent != nil {
			e.node.Parent.RemoveChild(e.node)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.ok != b.ok {
			return a.ok // priced items before unpriced
		}
		if !a.ok {
			return false
		}
		return a.price.LessThan(b.price)
	})

	for _, e := range entries {
		container.AppendChild(e.node)
	}
}

func nodeAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
