package order

import (
	"Hostel-Food-Ordering/entities"

	"github.com/shopspring/decimal"
)

// UnitPrice is the variant price, or the base price without a variant, less
// the item's offer discount (base - offer) when an offer below base is set.
func UnitPrice(item *entities.MenuItem, variant *entities.MenuVariant) decimal.Decimal {
	price := item.Price
	if variant != nil {
		price = variant.Price
	}

	if item.OfferPrice.Valid && item.OfferPrice.Decimal.LessThan(item.Price) {
		price = price.Sub(item.Price.Sub(item.OfferPrice.Decimal))
	}
	if price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// Totals returns subtotal, tax and total rounded to cents.
func Totals(subtotal decimal.Decimal, taxRate decimal.Decimal) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	return subtotal, tax, subtotal.Add(tax)
}
