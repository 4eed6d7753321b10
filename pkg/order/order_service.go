package order

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/entities"
	"Hostel-Food-Ordering/internal/utils"
	"Hostel-Food-Ordering/pkg/cache"
	"Hostel-Food-Ordering/pkg/cart"
	"Hostel-Food-Ordering/pkg/events"
	"Hostel-Food-Ordering/pkg/menu"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const idempotencyPending = "pending"

type (
	OrderService interface {
		QuoteCart(ctx context.Context, actor domain.Actor, req domain.PlaceOrderRequest) (*domain.OrderQuote, error)
		PlaceOrder(ctx context.Context, actor domain.Actor, req domain.PlaceOrderRequest, idempotencyKey string) (*domain.PlaceOrderResponse, error)
		GetOrder(ctx context.Context, actor domain.Actor, id string) (*domain.OrderResponse, error)
		GetOrderStatus(ctx context.Context, actor domain.Actor, id string) (*domain.OrderStatusResponse, error)
		GetOrders(ctx context.Context, actor domain.Actor, filter domain.OrderFilter) ([]*domain.OrderResponse, int64, error)
		UpdateOrderStatus(ctx context.Context, actor domain.Actor, id string, req domain.UpdateOrderStatusRequest) (*domain.OrderResponse, error)
		CancelOrder(ctx context.Context, actor domain.Actor, id string, req domain.CancelOrderRequest) (*domain.OrderResponse, error)
		DeleteOrder(ctx context.Context, actor domain.Actor, id string) error

		GetTodayReadyOrders(ctx context.Context, actor domain.Actor) ([]*domain.OrderResponse, error)
		ServeOrder(ctx context.Context, actor domain.Actor, id string) (*domain.OrderResponse, error)
		ScanQR(ctx context.Context, actor domain.Actor, req domain.ScanQRRequest) (*domain.OrderResponse, error)
		GetQRPayload(ctx context.Context, actor domain.Actor, id string) (*domain.QRPayload, error)
	}

	// Settings carries the ordering rules that vary per deployment.
	Settings struct {
		Location   *time.Location
		TaxRate    decimal.Decimal
		CutoffHour int
		Now        func() time.Time
	}

	orderService struct {
		orderRepository OrderRepository
		menuRepository  menu.MenuRepository
		cache           cache.Cache
		publisher       events.Publisher
		carts           cart.CartService
		payments        PaymentGateway
		settings        Settings
	}

	// statusEntry is the cached form of an order's status. Unlike
	// OrderStatusResponse it keeps the owner fields needed for access checks.
	statusEntry struct {
		OrderID      string    `json:"order_id"`
		UserID       string    `json:"user_id"`
		UniversityID string    `json:"university_id"`
		Status       string    `json:"status"`
		UpdatedAt    time.Time `json:"updated_at"`
	}
)

func NewOrderService(
	orderRepository OrderRepository,
	menuRepository menu.MenuRepository,
	c cache.Cache,
	publisher events.Publisher,
	carts cart.CartService,
	payments PaymentGateway,
	settings Settings,
) OrderService {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	return &orderService{
		orderRepository: orderRepository,
		menuRepository:  menuRepository,
		cache:           c,
		publisher:       publisher,
		carts:           carts,
		payments:        payments,
		settings:        settings,
	}
}

func (s *orderService) QuoteCart(ctx context.Context, actor domain.Actor, req domain.PlaceOrderRequest) (*domain.OrderQuote, error) {
	quote, _, err := s.buildQuote(ctx, actor, req.OrderDate, req.Items)
	return quote, err
}

// buildQuote prices lines against the current menu. Duplicate lines for the
// same item and variant are merged before pricing.
func (s *orderService) buildQuote(ctx context.Context, actor domain.Actor, orderDate string, lines []domain.CartLine) (*domain.OrderQuote, time.Time, error) {
	if len(lines) == 0 {
		return nil, time.Time{}, domain.ErrEmptyCart
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, time.Time{}, domain.ErrInvalidQuantity
		}
	}

	day, err := utils.ParseDate(orderDate)
	if err != nil {
		return nil, time.Time{}, err
	}
	cutoff := CutoffFor(day, s.settings.Location, s.settings.CutoffHour)
	if !s.settings.Now().Before(cutoff) {
		return nil, time.Time{}, domain.ErrOrderCutoffPassed
	}

	merged := cart.FromLines(orderDate, lines).Lines()
	ids := make([]string, 0, len(merged))
	for _, l := range merged {
		ids = append(ids, l.MenuItemID)
	}
	items, err := s.menuRepository.GetMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, time.Time{}, err
	}
	byID := make(map[string]*entities.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID.String()] = item
	}

	quote := &domain.OrderQuote{
		OrderDate: orderDate,
		Cutoff:    cutoff,
		Lines:     make([]domain.QuoteLine, 0, len(merged)),
	}
	subtotal := decimal.Zero
	for _, l := range merged {
		item, ok := byID[l.MenuItemID]
		if !ok || item.UniversityID.String() != actor.UniversityID {
			return nil, time.Time{}, domain.ErrMenuItemNotFound
		}
		if !item.IsActive {
			return nil, time.Time{}, domain.ErrMenuItemInactive
		}

		var variant *entities.MenuVariant
		if l.VariantID != "" {
			for _, v := range item.Variants {
				if v.ID.String() == l.VariantID {
					variant = v
					break
				}
			}
			if variant == nil {
				return nil, time.Time{}, domain.ErrVariantNotFound
			}
			if !variant.IsActive {
				return nil, time.Time{}, domain.ErrVariantInactive
			}
		}

		unit := UnitPrice(item, variant)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(l.Quantity)))
		subtotal = subtotal.Add(lineTotal)

		line := domain.QuoteLine{
			MenuItemID: l.MenuItemID,
			VariantID:  l.VariantID,
			Name:       item.Name,
			Quantity:   l.Quantity,
			UnitPrice:  unit,
			LineTotal:  lineTotal,
		}
		if variant != nil {
			line.VariantName = variant.Name
		}
		quote.Lines = append(quote.Lines, line)
	}

	quote.Subtotal, quote.TaxAmount, quote.TotalAmount = Totals(subtotal, s.settings.TaxRate)
	return quote, day, nil
}

func (s *orderService) PlaceOrder(ctx context.Context, actor domain.Actor, req domain.PlaceOrderRequest, idempotencyKey string) (*domain.PlaceOrderResponse, error) {
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	universityID, err := uuid.Parse(actor.UniversityID)
	if err != nil {
		return nil, domain.ErrUniversityRequired
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.PaymentMethodCash
	}
	if paymentMethod != domain.PaymentMethodCash && paymentMethod != domain.PaymentMethodOnline {
		return nil, domain.ErrInvalidPaymentMethod
	}
	if paymentMethod == domain.PaymentMethodOnline && s.payments == nil {
		return nil, domain.ErrInvalidPaymentMethod
	}

	idemKey := ""
	if idempotencyKey != "" {
		idemKey = cache.IdemOrderKey(actor.UserID, idempotencyKey)
		previous, err := s.claimIdempotencyKey(ctx, idemKey)
		if err != nil {
			return nil, err
		}
		if previous != nil {
			return &domain.PlaceOrderResponse{
				Order:      *previous,
				PaymentURL: previous.PaymentURL,
				Idempotent: true,
			}, nil
		}
	}

	res, err := s.placeOrder(ctx, actor, userID, universityID, paymentMethod, req)
	if idemKey != "" {
		if err != nil {
			_ = s.cache.Delete(ctx, idemKey)
		} else if setErr := s.cache.Set(ctx, idemKey, res.Order.ID, cache.TTLIdempotency); setErr != nil {
			log.Warnf("failed to record idempotency key for order %s: %v", res.Order.ID, setErr)
		}
	}
	return res, err
}

// claimIdempotencyKey reserves key for this request. It returns the order a
// previous request with the same key created, if any.
func (s *orderService) claimIdempotencyKey(ctx context.Context, key string) (*domain.OrderResponse, error) {
	claimed, err := s.cache.SetNX(ctx, key, idempotencyPending, cache.TTLIdempotency)
	if err != nil {
		log.Warnf("idempotency cache unavailable, placing order without it: %v", err)
		return nil, nil
	}
	if claimed {
		return nil, nil
	}

	orderID, err := s.cache.Get(ctx, key)
	if err != nil || orderID == idempotencyPending {
		return nil, domain.ErrDuplicateRequest
	}

	order, err := s.orderRepository.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// the first order was deleted since; treat the key as fresh
			return nil, nil
		}
		return nil, err
	}
	return ToOrderResponse(order), nil
}

func (s *orderService) placeOrder(ctx context.Context, actor domain.Actor, userID, universityID uuid.UUID, paymentMethod string, req domain.PlaceOrderRequest) (*domain.PlaceOrderResponse, error) {
	quote, day, err := s.buildQuote(ctx, actor, req.OrderDate, req.Items)
	if err != nil {
		return nil, err
	}

	if req.ClientTotal != nil && !req.ClientTotal.Equal(quote.TotalAmount) {
		log.Warnf("client total %s differs from computed total %s for user %s", req.ClientTotal.String(), quote.TotalAmount.String(), actor.UserID)
	}

	now := s.settings.Now()
	order := &entities.Order{
		ID:            uuid.New(),
		UserID:        userID,
		UniversityID:  universityID,
		OrderNumber:   GenerateOrderNumber(now.In(s.settings.Location)),
		OrderDate:     day,
		Subtotal:      quote.Subtotal,
		TaxAmount:     quote.TaxAmount,
		TotalAmount:   quote.TotalAmount,
		PaymentMethod: paymentMethod,
		PaymentStatus: domain.PaymentStatusPending,
		Status:        domain.OrderStatusPending,
		Notes:         req.Notes,
	}
	for _, l := range quote.Lines {
		item := &entities.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			MenuItemID:  uuid.MustParse(l.MenuItemID),
			Name:        l.Name,
			VariantName: l.VariantName,
			Quantity:    l.Quantity,
			Price:       l.UnitPrice,
		}
		if l.VariantID != "" {
			variantID := uuid.MustParse(l.VariantID)
			item.VariantID = &variantID
		}
		order.Items = append(order.Items, item)
	}

	if err := s.orderRepository.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := s.carts.ClearCart(ctx, actor.UserID, req.OrderDate); err != nil {
		log.Warnf("failed to clear cart for user %s: %v", actor.UserID, err)
	}
	s.cacheStatus(ctx, order)
	s.publish(ctx, order.ID.String(), events.EventOrderPlaced, events.OrderPlacedPayload{
		OrderID:      order.ID.String(),
		OrderNumber:  order.OrderNumber,
		UserID:       order.UserID.String(),
		UniversityID: order.UniversityID.String(),
		OrderDate:    req.OrderDate,
		TotalAmount:  order.TotalAmount.StringFixed(2),
		ItemCount:    len(order.Items),
	})

	if saved, err := s.orderRepository.GetOrderByID(ctx, order.ID.String()); err == nil {
		order = saved
	}

	res := &domain.PlaceOrderResponse{}
	if paymentMethod == domain.PaymentMethodOnline {
		url, err := s.payments.CreatePayment(ctx, order)
		if err != nil {
			log.Errorf("failed to create payment for order %s: %v", order.OrderNumber, err)
		} else {
			order.PaymentURL = url
			res.PaymentURL = url
			if err := s.orderRepository.UpdatePaymentURL(ctx, order.ID.String(), url); err != nil {
				log.Warnf("failed to store payment url for order %s: %v", order.OrderNumber, err)
			}
		}
	}

	res.Order = *ToOrderResponse(order)
	return res, nil
}

func (s *orderService) GetOrder(ctx context.Context, actor domain.Actor, id string) (*domain.OrderResponse, error) {
	order, err := s.getVisibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// GetOrderStatus serves polling clients from the status cache and falls back
// to the database on a miss.
func (s *orderService) GetOrderStatus(ctx context.Context, actor domain.Actor, id string) (*domain.OrderStatusResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}

	if raw, err := s.cache.Get(ctx, cache.OrderStatusKey(id)); err == nil {
		var entry statusEntry
		if json.Unmarshal([]byte(raw), &entry) == nil {
			if err := canView(actor, entry.UserID, entry.UniversityID); err != nil {
				return nil, err
			}
			return &domain.OrderStatusResponse{
				OrderID:      entry.OrderID,
				UserID:       entry.UserID,
				UniversityID: entry.UniversityID,
				Status:       entry.Status,
				UpdatedAt:    entry.UpdatedAt,
			}, nil
		}
	}

	order, err := s.getVisibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	s.cacheStatus(ctx, order)
	return &domain.OrderStatusResponse{
		OrderID:      order.ID.String(),
		UserID:       order.UserID.String(),
		UniversityID: order.UniversityID.String(),
		Status:       order.Status,
		UpdatedAt:    order.UpdatedAt,
	}, nil
}

func (s *orderService) GetOrders(ctx context.Context, actor domain.Actor, filter domain.OrderFilter) ([]*domain.OrderResponse, int64, error) {
	switch actor.Role {
	case domain.RoleStudent:
		filter.UserID = actor.UserID
		filter.UniversityID = ""
	case domain.RoleManager:
		filter.UniversityID = actor.UniversityID
	case domain.RoleAdmin:
	default:
		return nil, 0, domain.ErrUnauthorizedOrder
	}
	if filter.Date != "" {
		if _, err := utils.ParseDate(filter.Date); err != nil {
			return nil, 0, err
		}
	}

	orders, count, err := s.orderRepository.GetOrders(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, ToOrderResponse(o))
	}
	return result, count, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, actor domain.Actor, id string, req domain.UpdateOrderStatusRequest) (*domain.OrderResponse, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrUnauthorizedOrder
	}

	order, err := s.getVisibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, actor, order, req.Status, req.Reason, req.Version); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// CancelOrder lets a student withdraw their own order while it is PENDING.
func (s *orderService) CancelOrder(ctx context.Context, actor domain.Actor, id string, req domain.CancelOrderRequest) (*domain.OrderResponse, error) {
	order, err := s.getVisibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if order.UserID.String() != actor.UserID {
		return nil, domain.ErrUnauthorizedOrder
	}
	if order.Status != domain.OrderStatusPending {
		return nil, domain.ErrInvalidStatusTransition
	}

	if err := s.transition(ctx, actor, order, domain.OrderStatusCancelled, req.Reason, nil); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

func (s *orderService) DeleteOrder(ctx context.Context, actor domain.Actor, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrUnauthorizedOrder
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrParseUUID
	}

	if err := s.orderRepository.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrOrderNotFound
		}
		return err
	}
	_ = s.cache.Delete(ctx, cache.OrderStatusKey(id))
	return nil
}

func (s *orderService) GetTodayReadyOrders(ctx context.Context, actor domain.Actor) ([]*domain.OrderResponse, error) {
	if actor.UniversityID == "" {
		return nil, domain.ErrUniversityRequired
	}

	orders, err := s.orderRepository.GetOrdersByDateAndStatus(ctx, actor.UniversityID, s.today(), domain.OrderStatusReady)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, ToOrderResponse(o))
	}
	return result, nil
}

func (s *orderService) ServeOrder(ctx context.Context, actor domain.Actor, id string) (*domain.OrderResponse, error) {
	order, err := s.getVisibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.serve(ctx, actor, order); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// ScanQR resolves a scanned collection code to one of today's orders and
// serves it. Codes that do not identify a current order of the caterer's
// university are reported as no match.
func (s *orderService) ScanQR(ctx context.Context, actor domain.Actor, req domain.ScanQRRequest) (*domain.OrderResponse, error) {
	var payload domain.QRPayload
	if err := json.Unmarshal([]byte(req.Payload), &payload); err != nil {
		return nil, domain.ErrInvalidQRPayload
	}
	if _, err := uuid.Parse(payload.OrderID); err != nil || payload.OrderNumber == "" {
		return nil, domain.ErrInvalidQRPayload
	}

	order, err := s.orderRepository.GetOrderByID(ctx, payload.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQRNoMatch
		}
		return nil, err
	}
	if order.OrderNumber != payload.OrderNumber ||
		order.UniversityID.String() != actor.UniversityID ||
		!order.OrderDate.Equal(s.today()) {
		return nil, domain.ErrQRNoMatch
	}

	if err := s.serve(ctx, actor, order); err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// serve performs READY -> SERVED for today's order. The conditional update
// makes each order servable exactly once.
func (s *orderService) serve(ctx context.Context, actor domain.Actor, order *entities.Order) error {
	switch order.Status {
	case domain.OrderStatusReady:
	case domain.OrderStatusServed:
		return domain.ErrOrderAlreadyServed
	default:
		return domain.ErrOrderNotReady
	}
	if actor.Role == domain.RoleCaterer && !order.OrderDate.Equal(s.today()) {
		return domain.ErrOrderNotToday
	}

	err := s.transition(ctx, actor, order, domain.OrderStatusServed, "", nil)
	if errors.Is(err, domain.ErrOrderStatusConflict) {
		return domain.ErrOrderAlreadyServed
	}
	return err
}

func (s *orderService) GetQRPayload(ctx context.Context, actor domain.Actor, id string) (*domain.QRPayload, error) {
	order, err := s.getVisibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if order.UserID.String() != actor.UserID {
		return nil, domain.ErrUnauthorizedOrder
	}

	payload := &domain.QRPayload{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		Timestamp:   s.settings.Now().UTC().Format(time.RFC3339),
		Items:       make([]domain.QRItem, 0, len(order.Items)),
	}
	if order.User != nil {
		payload.StudentName = order.User.Name
	}
	for _, item := range order.Items {
		payload.Items = append(payload.Items, domain.QRItem{
			Name:        item.Name,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
		})
	}
	return payload, nil
}

// transition moves order to status "to" with a conditional update on the
// status and version that were read. Only the side fields belonging to the
// target status are written.
func (s *orderService) transition(ctx context.Context, actor domain.Actor, order *entities.Order, to string, reason string, expectedVersion *int) error {
	if !CanTransition(order.Status, to) {
		return domain.ErrInvalidStatusTransition
	}
	if actor.Role == domain.RoleCaterer && to != domain.OrderStatusServed {
		return domain.ErrUnauthorizedOrder
	}
	if expectedVersion != nil && *expectedVersion != order.Version {
		return domain.ErrOrderStatusConflict
	}

	now := s.settings.Now()
	updates := map[string]interface{}{"status": to}
	switch to {
	case domain.OrderStatusApproved:
		updates["approved_at"] = now
	case domain.OrderStatusServed:
		updates["completed_at"] = now
	case domain.OrderStatusRejected:
		if reason != "" {
			updates["rejection_reason"] = reason
		}
	case domain.OrderStatusCancelled:
		if reason != "" {
			updates["cancellation_reason"] = reason
		}
	}

	from := order.Status
	if err := s.orderRepository.UpdateStatus(ctx, order.ID.String(), from, order.Version, updates); err != nil {
		return err
	}

	order.Status = to
	order.Version++
	order.UpdatedAt = now
	switch to {
	case domain.OrderStatusApproved:
		order.ApprovedAt = &now
	case domain.OrderStatusServed:
		order.CompletedAt = &now
	case domain.OrderStatusRejected:
		if reason != "" {
			order.RejectionReason = reason
		}
	case domain.OrderStatusCancelled:
		if reason != "" {
			order.CancellationReason = reason
		}
	}

	s.cacheStatus(ctx, order)
	s.publish(ctx, order.ID.String(), events.EventOrderStatusChanged, events.OrderStatusChangedPayload{
		OrderID:      order.ID.String(),
		OrderNumber:  order.OrderNumber,
		UserID:       order.UserID.String(),
		UniversityID: order.UniversityID.String(),
		From:         from,
		To:           to,
		Reason:       reason,
		ActorID:      actor.UserID,
		ActorRole:    actor.Role,
	})
	return nil
}

func (s *orderService) getVisibleOrder(ctx context.Context, actor domain.Actor, id string) (*entities.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}

	order, err := s.orderRepository.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	if err := canView(actor, order.UserID.String(), order.UniversityID.String()); err != nil {
		return nil, err
	}
	return order, nil
}

func canView(actor domain.Actor, ownerID, universityID string) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleStudent:
		if ownerID == actor.UserID {
			return nil
		}
	case domain.RoleManager, domain.RoleCaterer:
		if universityID == actor.UniversityID {
			return nil
		}
	}
	return domain.ErrUnauthorizedOrder
}

func (s *orderService) today() time.Time {
	return utils.CalendarDate(s.settings.Now(), s.settings.Location)
}

func (s *orderService) cacheStatus(ctx context.Context, order *entities.Order) {
	updatedAt := order.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.settings.Now()
	}
	raw, err := json.Marshal(statusEntry{
		OrderID:      order.ID.String(),
		UserID:       order.UserID.String(),
		UniversityID: order.UniversityID.String(),
		Status:       order.Status,
		UpdatedAt:    updatedAt,
	})
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cache.OrderStatusKey(order.ID.String()), string(raw), cache.TTLStatusCache); err != nil {
		log.Warnf("failed to cache status of order %s: %v", order.ID, err)
	}
}

func (s *orderService) publish(ctx context.Context, key, eventType string, payload any) {
	if err := s.publisher.Publish(ctx, key, eventType, payload); err != nil {
		log.Warnf("failed to publish %s for order %s: %v", eventType, key, err)
	}
}

func ToOrderResponse(order *entities.Order) *domain.OrderResponse {
	items := make([]domain.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		res := domain.OrderItemResponse{
			ID:          item.ID.String(),
			MenuItemID:  item.MenuItemID.String(),
			Name:        item.Name,
			VariantName: item.VariantName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
		if item.VariantID != nil {
			res.VariantID = item.VariantID.String()
		}
		items = append(items, res)
	}

	res := &domain.OrderResponse{
		ID:                 order.ID.String(),
		OrderNumber:        order.OrderNumber,
		UserID:             order.UserID.String(),
		UniversityID:       order.UniversityID.String(),
		OrderDate:          order.OrderDate.Format(domain.DateLayout),
		Status:             order.Status,
		Subtotal:           order.Subtotal,
		TaxAmount:          order.TaxAmount,
		TotalAmount:        order.TotalAmount,
		PaymentMethod:      order.PaymentMethod,
		PaymentStatus:      order.PaymentStatus,
		PaymentURL:         order.PaymentURL,
		Notes:              order.Notes,
		RejectionReason:    order.RejectionReason,
		CancellationReason: order.CancellationReason,
		ApprovedAt:         order.ApprovedAt,
		CompletedAt:        order.CompletedAt,
		Version:            order.Version,
		Items:              items,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
	if order.User != nil {
		res.StudentName = order.User.Name
	}
	return res
}
