package order

import "github.com/shopspring/decimal"

// LineTotal is quantity times unit price. A deleted product contributes zero.
func (i *OrderItem) LineTotal() decimal.Decimal {
	if i == nil || i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity))).Round(2)
}

// ItemCount sums quantities over items whose product still exists.
func (o *Order) ItemCount() int {
	if o == nil {
		return 0
	}
	count := 0
	for _, it := range o.Items {
		if it == nil || it.Product == nil {
			continue
		}
		count += it.Quantity
	}
	return count
}

// Total sums line totals over items whose product still exists.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	if o == nil {
		return total
	}
	for _, it := range o.Items {
		total = total.Add(it.LineTotal())
	}
	return total.Round(2)
}
