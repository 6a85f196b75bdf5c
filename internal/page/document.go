package page

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is the in-memory rendition of the host page. The pipeline reads
// and decorates it; item lifecycle (creation, removal) belongs to the host.
type Document struct {
	doc *goquery.Document
	sel Selectors
}

// Parse builds a Document from raw HTML.
func Parse(r io.Reader, sel Selectors) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return &Document{doc: doc, sel: sel}, nil
}

// ParseString is a convenience wrapper for tests and embedding hosts.
func ParseString(s string, sel Selectors) (*Document, error) {
	return Parse(strings.NewReader(s), sel)
}

// ParseFile loads and parses a page snapshot from disk.
func ParseFile(path string, sel Selectors) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page file: %w", err)
	}
	defer f.Close()
	return Parse(f, sel)
}

// Selectors returns the selector configuration the document was built with.
func (d *Document) Selectors() Selectors { return d.sel }

// Find exposes raw selection for components that need it.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// IsProductPage reports whether the single-product marker element is present.
func (d *Document) IsProductPage() bool {
	return d.doc.Find(d.sel.ProductMain).Length() > 0
}

// Items returns every item card in the listing.
func (d *Document) Items() *goquery.Selection {
	return d.doc.Find(d.sel.ListItem)
}

// ListContainer returns the listing container node, or nil when absent.
func (d *Document) ListContainer() *html.Node {
	s := d.doc.Find(d.sel.ListContainer)
	if s.Length() == 0 {
		return nil
	}
	return s.Get(0)
}

// ProductInfo returns the root selection of the product detail block.
func (d *Document) ProductInfo() *goquery.Selection {
	return d.doc.Find(d.sel.ProductInfo)
}

// HeaderRight returns the banner region.
func (d *Document) HeaderRight() *goquery.Selection {
	return d.doc.Find(d.sel.HeaderRight)
}

// Render writes the whole document back out as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.doc.Get(0))
}

// RenderString renders the document to a string, for diffing and tests.
func (d *Document) RenderString() (string, error) {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RegionHTML serializes the subtree at the given selector. Used by the
// mutation layer to detect whether a region actually changed between
// notifications. Missing region renders as "".
func (d *Document) RegionHTML(selector string) string {
	s := d.doc.Find(selector)
	if s.Length() == 0 {
		return ""
	}
	h, err := goquery.OuterHtml(s.First())
	if err != nil {
		return ""
	}
	return h
}
