package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// CartItem is a single line in the cart. Name, price and image are captured
// at the moment the product is added and are not re-synced with later
// catalog changes.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    *string `json:"image"`
	Quantity int     `json:"quantity"`
}

// Cart holds line items in insertion order. No two items share an ID and
// every quantity is at least 1.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Total returns the sum of price * quantity over all items. An empty cart
// totals 0.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count returns the sum of all quantities, the number shown on the header
// badge.
func (c Cart) Count() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Clone returns a copy with its own backing slice so callers never hold a
// reference into live store state.
func (c Cart) Clone() Cart {
	if c.Items == nil {
		return Cart{}
	}
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

// ParsePrice coerces a price that may arrive as a number or a numeric string
// (the CMS serializes big integers as strings). Invalid or missing input
// coerces to 0; the returned error lets the caller log that case separately
// from a clean numeric string.
func ParsePrice(v any) (float64, error) {
	switch p := v.(type) {
	case nil:
		return 0, fmt.Errorf("price is missing")
	case float64:
		return p, nil
	case float32:
		return float64(p), nil
	case int:
		return float64(p), nil
	case int64:
		return float64(p), nil
	case json.Number:
		f, err := p.Float64()
		if err != nil {
			return 0, fmt.Errorf("price %q is not numeric", p.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("price %q is not numeric", p)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("price has unsupported type %T", v)
	}
}
