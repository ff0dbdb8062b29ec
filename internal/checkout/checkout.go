package checkout

import (
	"context"
	"errors"
	"log"

	"github.com/ArsemaYemiru/ak-storefront/internal/domain"
	"github.com/ArsemaYemiru/ak-storefront/internal/store"
)

var (
	ErrEmptyCart        = errors.New("cart is empty, nothing to checkout")
	ErrNotAuthenticated = errors.New("must be logged in to place an order")
)

// OrdersClient submits orders to the CMS.
// Consumers define this interface, not the CMS implementation.
type OrdersClient interface {
	CreateOrder(ctx context.Context, token string, userID int64, order domain.Order) (*domain.Order, error)
}

type Service struct {
	orders OrdersClient
}

func NewService(orders OrdersClient) *Service {
	return &Service{orders: orders}
}

// Submit snapshots the cart, sends it to the CMS as a cash-on-delivery
// order and clears the cart. The clear happens strictly after the CMS
// confirmed the order: on any error, including a timeout that may or may
// not have landed, the cart stays intact for retry.
func (s *Service) Submit(
	ctx context.Context,
	cart *store.CartStore,
	session domain.Session,
	details domain.DeliveryDetails) (*domain.Order, error) {

	snap := cart.Snapshot()
	if len(snap.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if !session.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	order := domain.Order{
		Items:           snap.Items,
		Total:           snap.Total(),
		DeliveryDetails: details,
		Status:          domain.OrderStatusPending,
	}

	created, err := s.orders.CreateOrder(ctx, session.Token, session.User.ID, order)
	if err != nil {
		log.Printf("order submission failed for user %d: %v", session.User.ID, err)
		return nil, err
	}

	cart.Clear(ctx)
	return created, nil
}
