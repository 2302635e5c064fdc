package cart

const (
	// Orders strictly above FreeDeliveryOver ship free.
	FreeDeliveryOver int64 = 999
	DeliveryFee      int64 = 99
)

// Summary is the price breakdown shown next to the cart.
type Summary struct {
	ItemCount     int   `json:"item_count"`
	Subtotal      int64 `json:"subtotal"`
	OriginalTotal int64 `json:"original_total"`
	Savings       int64 `json:"savings"`
	DeliveryFee   int64 `json:"delivery_fee"`
	Total         int64 `json:"total"`
	// FreeDeliveryGap is how much more unlocks free delivery; 0 once it applies.
	FreeDeliveryGap int64 `json:"free_delivery_gap"`
}

func summarize(lines []Line) Summary {
	sum := Summary{
		ItemCount: itemCount(lines),
		Subtotal:  cartTotal(lines),
	}
	for _, l := range lines {
		sum.OriginalTotal += l.Product.ListPrice() * int64(l.Quantity)
	}
	sum.Savings = sum.OriginalTotal - sum.Subtotal

	if len(lines) > 0 && sum.Subtotal <= FreeDeliveryOver {
		sum.DeliveryFee = DeliveryFee
		sum.FreeDeliveryGap = FreeDeliveryOver + 1 - sum.Subtotal
	}
	sum.Total = sum.Subtotal + sum.DeliveryFee
	return sum
}
