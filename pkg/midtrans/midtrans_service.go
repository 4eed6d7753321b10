package midtrans

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/entities"
	"Hostel-Food-Ordering/pkg/events"
	"Hostel-Food-Ordering/pkg/order"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"

	"github.com/gofiber/fiber/v2/log"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
)

type (
	MidtransService interface {
		CreatePayment(ctx context.Context, order *entities.Order) (string, error)
		HandleNotification(ctx context.Context, req domain.MidtransNotificationRequest) (string, error)
	}

	snapClient interface {
		CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
	}

	statusClient interface {
		CheckTransaction(param string) (*coreapi.TransactionStatusResponse, *midtrans.Error)
	}

	midtransService struct {
		orderRepository order.OrderRepository
		publisher       events.Publisher
		snap            snapClient
		core            statusClient
		serverKey       string
	}
)

func NewMidtransService(orderRepository order.OrderRepository, publisher events.Publisher, serverKey string, isProd bool) MidtransService {
	env := midtrans.Sandbox
	if isProd {
		env = midtrans.Production
	}

	var s snap.Client
	s.New(serverKey, env)
	var c coreapi.Client
	c.New(serverKey, env)

	return &midtransService{
		orderRepository: orderRepository,
		publisher:       publisher,
		snap:            &s,
		core:            &c,
		serverKey:       serverKey,
	}
}

// CreatePayment opens a Snap transaction keyed by the order number and
// returns its redirect URL.
func (s *midtransService) CreatePayment(ctx context.Context, o *entities.Order) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  o.OrderNumber,
			GrossAmt: o.TotalAmount.Ceil().IntPart(),
		},
	}
	if o.User != nil {
		req.CustomerDetail = &midtrans.CustomerDetails{
			FName: o.User.Name,
			Email: o.User.Email,
			Phone: o.User.Phone,
		}
	}

	resp, mErr := s.snap.CreateTransaction(req)
	if mErr != nil {
		log.Errorf("midtrans snap error for %s: %s", o.OrderNumber, mErr.GetMessage())
		return "", domain.ErrPaymentGatewayFailed
	}
	return resp.RedirectURL, nil
}

// HandleNotification verifies a webhook call against the Core API and records
// the resulting payment status. It returns the status that was stored.
func (s *midtransService) HandleNotification(ctx context.Context, req domain.MidtransNotificationRequest) (string, error) {
	if req.SignatureKey != "" && req.SignatureKey != s.signature(req) {
		return "", domain.ErrPaymentNotVerified
	}

	res, mErr := s.core.CheckTransaction(req.OrderID)
	if mErr != nil || res == nil {
		if mErr != nil {
			log.Errorf("midtrans status check failed for %s: %s", req.OrderID, mErr.GetMessage())
		}
		return "", domain.ErrPaymentNotVerified
	}

	status, final := PaymentStatusFor(res.TransactionStatus, res.FraudStatus)
	if !final {
		return domain.PaymentStatusPending, nil
	}

	if err := s.orderRepository.UpdatePaymentStatus(ctx, req.OrderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrOrderNotFound
		}
		return "", err
	}

	if err := s.publisher.Publish(ctx, req.OrderID, events.EventPaymentUpdated, events.PaymentUpdatedPayload{
		OrderNumber:   req.OrderID,
		PaymentStatus: status,
	}); err != nil {
		log.Warnf("failed to publish payment update for %s: %v", req.OrderID, err)
	}
	return status, nil
}

func (s *midtransService) signature(req domain.MidtransNotificationRequest) string {
	sum := sha512.Sum512([]byte(req.OrderID + req.StatusCode + req.GrossAmount + s.serverKey))
	return hex.EncodeToString(sum[:])
}

// PaymentStatusFor maps a Midtrans transaction to PAID or FAILED. The second
// result is false while the transaction is still pending.
func PaymentStatusFor(transactionStatus, fraudStatus string) (string, bool) {
	switch transactionStatus {
	case "settlement":
		return domain.PaymentStatusPaid, true
	case "capture":
		if fraudStatus == "accept" {
			return domain.PaymentStatusPaid, true
		}
		if fraudStatus == "deny" {
			return domain.PaymentStatusFailed, true
		}
		return domain.PaymentStatusPending, false
	case "deny", "cancel", "expire", "failure":
		return domain.PaymentStatusFailed, true
	default:
		return domain.PaymentStatusPending, false
	}
}
