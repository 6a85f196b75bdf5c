// Package page wraps the parsed listing/product HTML document and the
// selector configuration used to locate every element the pipeline touches.
package page

// Selectors enumerates each page location the pipeline reads or decorates.
// All coupling to the host page's markup lives here; processors receive the
// struct at startup instead of reaching for hardcoded strings.
type Selectors struct {
	// Header region
	Currency    string // element whose text is the displayed currency code
	HeaderNav   string // navigation region watched for currency availability
	HeaderRight string // region the feedback banner is appended to

	// Listing page
	ListContainer string // container holding all item cards
	ListItem      string // one item card
	ItemPrice     string // price text inside an item card
	ItemShipping  string // shipping text inside an item card

	// Single-product page
	ProductMain     string // marker element identifying the product view
	ProductInfo     string // root of the product detail block
	ProductPrice    string // product price text
	ProductShipping string // product shipping text
	Quantity        string // numeric quantity input
}

// DefaultSelectors returns the locations observed on the target retail site.
func DefaultSelectors() Selectors {
	return Selectors{
		Currency:    "span.currency",
		HeaderNav:   ".nav-global",
		HeaderRight: ".header-right-content",

		ListContainer: ".list-items",
		ListItem:      ".list-item",
		ItemPrice:     "span.price-current",
		ItemShipping:  ".shipping-value",

		ProductMain:     ".product-main",
		ProductInfo:     ".product-info",
		ProductPrice:    ".product-price-value",
		ProductShipping: ".product-shipping-price",
		Quantity:        ".product-number-picker input",
	}
}

// Attribute and marker names written onto items by the pipeline.
const (
	MarkerClass    = "total-price-updated"
	AttrLowerPrice = "data-lower-price"
	AttrUpperPrice = "data-upper-price"
	BannerID       = "fullprice-message"
)

// FullPageSize is the item count of one completely loaded listing page.
// The one-shot sort step fires only when the listing holds exactly this
// many items.
const FullPageSize = 60
