package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ArsemaYemiru/ak-storefront/internal/domain"
)

// Strapi expects writes wrapped in a data envelope.
type orderPayload struct {
	Data orderData `json:"data"`
}

type orderData struct {
	Items           []domain.CartItem      `json:"items"`
	Total           float64                `json:"total"`
	DeliveryDetails domain.DeliveryDetails `json:"deliveryDetails"`
	User            int64                  `json:"user"`
	Status          domain.OrderStatus     `json:"status"`
}

type orderResponse struct {
	Data domain.Order `json:"data"`
}

type ordersResponse struct {
	Data []domain.Order `json:"data"`
}

// CreateOrder submits the order for userID. A nil error means the CMS
// confirmed it; the caller may only clear the cart on that confirmation.
func (c *Client) CreateOrder(ctx context.Context, token string, userID int64, order domain.Order) (*domain.Order, error) {
	payload := orderPayload{
		Data: orderData{
			Items:           order.Items,
			Total:           order.Total,
			DeliveryDetails: order.DeliveryDetails,
			User:            userID,
			Status:          order.Status,
		},
	}

	data, err := c.do(ctx, http.MethodPost, "/api/orders", token, payload)
	if err != nil {
		return nil, err
	}

	var resp orderResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode order failed: %w", err)
	}

	return &resp.Data, nil
}

// Orders returns the caller's order history, newest first. The CMS scopes
// the result to the token's owner.
func (c *Client) Orders(ctx context.Context, token string) ([]domain.Order, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/orders?populate=*&sort=createdAt:desc", token, nil)
	if err != nil {
		return nil, err
	}

	var resp ordersResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode orders failed: %w", err)
	}

	return resp.Data, nil
}
