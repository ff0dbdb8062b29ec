package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// DeliveryDetails is collected at checkout. Payment is cash on delivery, so
// this is all the order needs besides the cart snapshot.
type DeliveryDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// Order is the cart snapshot submitted to the CMS, as the CMS stores and
// returns it.
type Order struct {
	ID              int64           `json:"id"`
	Items           []CartItem      `json:"items"`
	Total           float64         `json:"total"`
	DeliveryDetails DeliveryDetails `json:"deliveryDetails"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}
