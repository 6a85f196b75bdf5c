package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<html><body>
<div class="nav-global"><span class="currency">USD</span></div>
<div class="header-right-content"></div>
<div class="list-items">
  <div class="list-item"><span class="price-current">$1.00</span></div>
  <div class="list-item"><span class="price-current">$2.00</span></div>
</div>
</body></html>`

func TestParseListing(t *testing.T) {
	doc, err := ParseString(listingHTML, DefaultSelectors())
	require.NoError(t, err)

	assert.False(t, doc.IsProductPage())
	assert.Equal(t, 2, doc.Items().Length())
	assert.NotNil(t, doc.ListContainer())
	assert.Equal(t, 1, doc.HeaderRight().Length())
}

func TestParseProductPage(t *testing.T) {
	doc, err := ParseString(`<html><body><div class="product-main"><div class="product-info"></div></div></body></html>`, DefaultSelectors())
	require.NoError(t, err)

	assert.True(t, doc.IsProductPage())
	assert.Equal(t, 0, doc.Items().Length())
	assert.Nil(t, doc.ListContainer())
}

func TestRenderRoundTrip(t *testing.T) {
	doc, err := ParseString(listingHTML, DefaultSelectors())
	require.NoError(t, err)

	doc.Find(".list-item").First().SetAttr(AttrLowerPrice, "1")

	out, err := doc.RenderString()
	require.NoError(t, err)
	assert.Contains(t, out, AttrLowerPrice+`="1"`)
	assert.Contains(t, out, `class="currency"`)
}

func TestRegionHTML(t *testing.T) {
	doc, err := ParseString(listingHTML, DefaultSelectors())
	require.NoError(t, err)

	region := doc.RegionHTML(".nav-global")
	assert.Contains(t, region, "USD")
	assert.Equal(t, "", doc.RegionHTML(".does-not-exist"))
}
