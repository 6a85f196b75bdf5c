// Package pricing computes the full price of an item: base price plus
// shipping, multiplied by the jurisdiction tax factor.
package pricing

import "github.com/shopspring/decimal"

// Quote is the ephemeral extraction result for one item: one or two base
// prices (lower first, two for a ranged price) and a non-negative shipping
// cost (zero when free or unspecified).
type Quote struct {
	BasePrices []decimal.Decimal
	Shipping   decimal.Decimal
}

// Empty reports whether no base price could be extracted for the item.
func (q Quote) Empty() bool { return len(q.BasePrices) == 0 }

// Finalize computes the final full prices for a quote, preserving the order
// of the base prices (index 0 = lower bound):
//
//	final_i = (base_i * quantity + shipping) * tax
//
// Full precision is retained; display rounding is the augmenter's concern.
func Finalize(q Quote, quantity int, tax decimal.Decimal) []decimal.Decimal {
	if q.Empty() {
		return nil
	}
	qty := decimal.NewFromInt(int64(quantity))

	finals := make([]decimal.Decimal, 0, len(q.BasePrices))
	for _, base := range q.BasePrices {
		finals = append(finals, base.Mul(qty).Add(q.Shipping).Mul(tax))
	}
	return finals
}

// PerUnit is the single-piece share of a final price. Only shown to the
// user when quantity > 1.
func PerUnit(final decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 1 {
		return final
	}
	return final.Div(decimal.NewFromInt(int64(quantity)))
}
