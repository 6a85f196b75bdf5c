package process

import (
	"fmt"
	"html"

	"fullprice/internal/page"
)

// Banner messages shown in the header region. Advisory only; pricing
// correctness never depends on them.
const (
	MsgSorted        = "Items sorted."
	MsgKeepScrolling = "Keep scrolling to load all products and sort them"
)

// ShowBanner replaces any previous status message with a fresh one in the
// header region. No-op when the region is absent.
func ShowBanner(doc *page.Document, msg string) {
	region := doc.HeaderRight()
	if region.Length() == 0 {
		return
	}
	region.Find("#" + page.BannerID).Remove()
	region.AppendHtml(fmt.Sprintf(
		`<span id="%s" style="float: left; font-size: 14px; color: blueviolet">%s</span>`,
		page.BannerID, html.EscapeString(msg)))
}

// ClearBanner removes the status message, wherever it sits.
func ClearBanner(doc *page.Document) {
	doc.Find("#" + page.BannerID).Remove()
}
