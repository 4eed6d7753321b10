package order

import (
	"Hostel-Food-Ordering/entities"
	"context"
)

// PaymentGateway starts an online payment for a placed order and returns the
// URL the student is redirected to.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, order *entities.Order) (string, error)
}
