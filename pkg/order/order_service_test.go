package order

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/entities"
	"Hostel-Food-Ordering/pkg/cache"
	"Hostel-Food-Ordering/pkg/cart"
	"Hostel-Food-Ordering/pkg/menu"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeOrderRepository struct {
	mu     sync.Mutex
	orders map[string]*entities.Order
	users  map[uuid.UUID]*entities.User
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{
		orders: map[string]*entities.Order{},
		users:  map[uuid.UUID]*entities.User{},
	}
}

func (f *fakeOrderRepository) copyOf(o *entities.Order) *entities.Order {
	cp := *o
	cp.User = f.users[o.UserID]
	return &cp
}

func (f *fakeOrderRepository) CreateOrder(_ context.Context, order *entities.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	cp := *order
	f.orders[order.ID.String()] = &cp
	return nil
}

func (f *fakeOrderRepository) GetOrderByID(_ context.Context, id string) (*entities.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f.copyOf(o), nil
}

func (f *fakeOrderRepository) GetOrderByNumber(_ context.Context, orderNumber string) (*entities.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.OrderNumber == orderNumber {
			return f.copyOf(o), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepository) GetOrders(_ context.Context, filter domain.OrderFilter) ([]*entities.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Order
	for _, o := range f.orders {
		if filter.UserID != "" && o.UserID.String() != filter.UserID {
			continue
		}
		if filter.UniversityID != "" && o.UniversityID.String() != filter.UniversityID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, f.copyOf(o))
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepository) GetOrdersByDateAndStatus(_ context.Context, universityID string, date time.Time, status string) ([]*entities.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Order
	for _, o := range f.orders {
		if o.UniversityID.String() == universityID && o.OrderDate.Equal(date) && o.Status == status {
			out = append(out, f.copyOf(o))
		}
	}
	return out, nil
}

func (f *fakeOrderRepository) UpdateStatus(_ context.Context, id string, fromStatus string, version int, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.Status != fromStatus || o.Version != version {
		return domain.ErrOrderStatusConflict
	}
	for k, v := range updates {
		switch k {
		case "status":
			o.Status = v.(string)
		case "approved_at":
			t := v.(time.Time)
			o.ApprovedAt = &t
		case "completed_at":
			t := v.(time.Time)
			o.CompletedAt = &t
		case "rejection_reason":
			o.RejectionReason = v.(string)
		case "cancellation_reason":
			o.CancellationReason = v.(string)
		}
	}
	o.Version++
	return nil
}

func (f *fakeOrderRepository) UpdatePaymentURL(_ context.Context, id string, paymentURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[id].PaymentURL = paymentURL
	return nil
}

func (f *fakeOrderRepository) UpdatePaymentStatus(_ context.Context, orderNumber string, paymentStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.OrderNumber == orderNumber {
			o.PaymentStatus = paymentStatus
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeOrderRepository) DeleteOrder(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.orders, id)
	return nil
}

// fakeMenuRepository only serves the lookups pricing needs.
type fakeMenuRepository struct {
	menu.MenuRepository
	items map[string]*entities.MenuItem
}

func (f *fakeMenuRepository) GetMenuItemsByIDs(_ context.Context, ids []string) ([]*entities.MenuItem, error) {
	var out []*entities.MenuItem
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

type publishedEvent struct {
	key       string
	eventType string
	payload   any
}

type fakePublisher struct {
	events []publishedEvent
}

func (f *fakePublisher) Publish(_ context.Context, key string, eventType string, payload any) error {
	f.events = append(f.events, publishedEvent{key: key, eventType: eventType, payload: payload})
	return nil
}

type fakePaymentGateway struct {
	calls int
	err   error
}

func (f *fakePaymentGateway) CreatePayment(_ context.Context, order *entities.Order) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "https://pay.example/" + order.OrderNumber, nil
}

type fixture struct {
	svc       OrderService
	orders    *fakeOrderRepository
	cache     cache.Cache
	carts     cart.CartService
	publisher *fakePublisher
	payments  *fakePaymentGateway
	now       time.Time
	loc       *time.Location

	uni      uuid.UUID
	student  domain.Actor
	other    domain.Actor
	manager  domain.Actor
	caterer  domain.Actor
	admin    domain.Actor
	dosa     *entities.MenuItem
	regular  *entities.MenuVariant
	masala   *entities.MenuVariant
	idli     *entities.MenuItem
	foreign  *entities.MenuItem
	tomorrow string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		orders:    newFakeOrderRepository(),
		cache:     cache.NewMemoryCache(),
		publisher: &fakePublisher{},
		payments:  &fakePaymentGateway{},
		loc:       time.FixedZone("IST", 5*3600+1800),
		uni:       uuid.New(),
	}
	f.now = time.Date(2026, 10, 17, 10, 0, 0, 0, f.loc)
	f.tomorrow = "2026-10-18"
	f.carts = cart.NewCartService(f.cache)

	studentID := uuid.New()
	otherID := uuid.New()
	f.orders.users[studentID] = &entities.User{ID: studentID, Name: "Asha"}
	f.student = domain.Actor{UserID: studentID.String(), Role: domain.RoleStudent, UniversityID: f.uni.String()}
	f.other = domain.Actor{UserID: otherID.String(), Role: domain.RoleStudent, UniversityID: f.uni.String()}
	f.manager = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleManager, UniversityID: f.uni.String()}
	f.caterer = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleCaterer, UniversityID: f.uni.String()}
	f.admin = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	f.dosa = &entities.MenuItem{ID: uuid.New(), UniversityID: f.uni, Name: "Dosa", Price: decimal.RequireFromString("45"), IsActive: true}
	f.regular = &entities.MenuVariant{ID: uuid.New(), MenuItemID: f.dosa.ID, Name: "Regular", Price: decimal.RequireFromString("45"), IsDefault: true, IsActive: true}
	f.masala = &entities.MenuVariant{ID: uuid.New(), MenuItemID: f.dosa.ID, Name: "Masala", Price: decimal.RequireFromString("55"), IsActive: false}
	f.dosa.Variants = []*entities.MenuVariant{f.regular, f.masala}
	f.idli = &entities.MenuItem{ID: uuid.New(), UniversityID: f.uni, Name: "Idli", Price: decimal.RequireFromString("30"), IsActive: true}
	f.foreign = &entities.MenuItem{ID: uuid.New(), UniversityID: uuid.New(), Name: "Poha", Price: decimal.RequireFromString("25"), IsActive: true}

	menuRepo := &fakeMenuRepository{items: map[string]*entities.MenuItem{
		f.dosa.ID.String():    f.dosa,
		f.idli.ID.String():    f.idli,
		f.foreign.ID.String(): f.foreign,
	}}

	f.svc = NewOrderService(f.orders, menuRepo, f.cache, f.publisher, f.carts, f.payments, Settings{
		Location:   f.loc,
		TaxRate:    decimal.RequireFromString("0.10"),
		CutoffHour: 22,
		Now:        func() time.Time { return f.now },
	})
	return f
}

func (f *fixture) dosaOrder() domain.PlaceOrderRequest {
	return domain.PlaceOrderRequest{
		OrderDate: f.tomorrow,
		Items: []domain.CartLine{
			{MenuItemID: f.dosa.ID.String(), VariantID: f.regular.ID.String(), Quantity: 2},
		},
	}
}

func (f *fixture) place(t *testing.T) *domain.OrderResponse {
	t.Helper()
	res, err := f.svc.PlaceOrder(context.Background(), f.student, f.dosaOrder(), "")
	require.NoError(t, err)
	return &res.Order
}

func (f *fixture) advance(t *testing.T, id string, statuses ...string) *domain.OrderResponse {
	t.Helper()
	var res *domain.OrderResponse
	for _, status := range statuses {
		var err error
		res, err = f.svc.UpdateOrderStatus(context.Background(), f.manager, id, domain.UpdateOrderStatusRequest{Status: status})
		require.NoError(t, err, status)
	}
	return res
}

func TestPlaceOrderComputesTotalsServerSide(t *testing.T) {
	f := newFixture(t)
	req := f.dosaOrder()
	clientTotal := decimal.RequireFromString("100")
	req.ClientTotal = &clientTotal

	res, err := f.svc.PlaceOrder(context.Background(), f.student, req, "")
	require.NoError(t, err)

	assert.Equal(t, "90.00", res.Order.Subtotal.StringFixed(2))
	assert.Equal(t, "9.00", res.Order.TaxAmount.StringFixed(2))
	assert.Equal(t, "99.00", res.Order.TotalAmount.StringFixed(2))
	assert.Equal(t, domain.OrderStatusPending, res.Order.Status)
	assert.Equal(t, domain.PaymentMethodCash, res.Order.PaymentMethod)
	assert.Equal(t, domain.PaymentStatusPending, res.Order.PaymentStatus)
	assert.Regexp(t, `^ORD-20261017-`, res.Order.OrderNumber)
	assert.Equal(t, "Asha", res.Order.StudentName)

	fetched, err := f.svc.GetOrder(context.Background(), f.student, res.Order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, 2, fetched.Items[0].Quantity)
	assert.True(t, fetched.Items[0].Price.Equal(decimal.RequireFromString("45")))
	assert.Equal(t, "Regular", fetched.Items[0].VariantName)
	assert.Equal(t, f.tomorrow, fetched.OrderDate)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "OrderPlaced", f.publisher.events[0].eventType)
	assert.Zero(t, f.payments.calls)
}

func TestPlaceOrderOneItemPerLine(t *testing.T) {
	f := newFixture(t)
	req := domain.PlaceOrderRequest{
		OrderDate: f.tomorrow,
		Items: []domain.CartLine{
			{MenuItemID: f.dosa.ID.String(), VariantID: f.regular.ID.String(), Quantity: 1},
			{MenuItemID: f.idli.ID.String(), Quantity: 3},
			{MenuItemID: f.dosa.ID.String(), Quantity: 1},
			{MenuItemID: f.dosa.ID.String(), VariantID: f.regular.ID.String(), Quantity: 1},
		},
	}

	res, err := f.svc.PlaceOrder(context.Background(), f.student, req, "")
	require.NoError(t, err)

	// the duplicate Regular line is merged
	require.Len(t, res.Order.Items, 3)
	sum := decimal.Zero
	for _, item := range res.Order.Items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	assert.True(t, sum.Equal(res.Order.Subtotal))
	assert.True(t, res.Order.TotalAmount.Equal(res.Order.Subtotal.Add(res.Order.TaxAmount)))
	assert.Equal(t, "247.50", res.Order.TotalAmount.StringFixed(2))
}

func TestQuoteCartDoesNotPersist(t *testing.T) {
	f := newFixture(t)

	quote, err := f.svc.QuoteCart(context.Background(), f.student, f.dosaOrder())
	require.NoError(t, err)

	require.Len(t, quote.Lines, 1)
	assert.Equal(t, "Regular", quote.Lines[0].VariantName)
	assert.Equal(t, "90.00", quote.Lines[0].LineTotal.StringFixed(2))
	assert.Equal(t, "99.00", quote.TotalAmount.StringFixed(2))
	assert.True(t, quote.Cutoff.Equal(time.Date(2026, 10, 17, 22, 0, 0, 0, f.loc)))

	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.publisher.events)
}

func TestPlaceOrderRejectsBadCarts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.PlaceOrder(ctx, f.student, domain.PlaceOrderRequest{OrderDate: f.tomorrow}, "")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	req := f.dosaOrder()
	req.Items[0].Quantity = 0
	_, err = f.svc.PlaceOrder(ctx, f.student, req, "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	req = f.dosaOrder()
	req.Items[0] = domain.CartLine{MenuItemID: f.foreign.ID.String(), Quantity: 1}
	_, err = f.svc.PlaceOrder(ctx, f.student, req, "")
	assert.ErrorIs(t, err, domain.ErrMenuItemNotFound)

	req = f.dosaOrder()
	req.Items[0].VariantID = f.masala.ID.String()
	_, err = f.svc.PlaceOrder(ctx, f.student, req, "")
	assert.ErrorIs(t, err, domain.ErrVariantInactive)

	req = f.dosaOrder()
	req.Items[0].VariantID = uuid.NewString()
	_, err = f.svc.PlaceOrder(ctx, f.student, req, "")
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)

	req = f.dosaOrder()
	req.PaymentMethod = "CARD"
	_, err = f.svc.PlaceOrder(ctx, f.student, req, "")
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMethod)

	assert.Empty(t, f.orders.orders)
}

func TestPlaceOrderCutoff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.now = time.Date(2026, 10, 17, 21, 59, 0, 0, f.loc)
	_, err := f.svc.PlaceOrder(ctx, f.student, f.dosaOrder(), "")
	require.NoError(t, err)

	f.now = time.Date(2026, 10, 17, 22, 0, 0, 0, f.loc)
	_, err = f.svc.PlaceOrder(ctx, f.student, f.dosaOrder(), "")
	assert.ErrorIs(t, err, domain.ErrOrderCutoffPassed)

	req := f.dosaOrder()
	req.OrderDate = "2026-10-17"
	_, err = f.svc.QuoteCart(ctx, f.student, req)
	assert.ErrorIs(t, err, domain.ErrOrderCutoffPassed)

	req.OrderDate = "2026-10-19"
	quote, err := f.svc.QuoteCart(ctx, f.student, req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 18, 22, 0, 0, 0, f.loc), quote.Cutoff)
}

func TestPlaceOrderClearsDraftCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.SaveCart(ctx, f.student.UserID, domain.SaveCartRequest{
		Date:  f.tomorrow,
		Items: f.dosaOrder().Items,
	})
	require.NoError(t, err)

	f.place(t)

	stored, err := f.carts.GetCart(ctx, f.student.UserID, f.tomorrow)
	require.NoError(t, err)
	assert.Empty(t, stored.Items)
}

func TestPlaceOrderIdempotencyKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.PlaceOrder(ctx, f.student, f.dosaOrder(), "key-1")
	require.NoError(t, err)
	assert.False(t, first.Idempotent)

	again, err := f.svc.PlaceOrder(ctx, f.student, f.dosaOrder(), "key-1")
	require.NoError(t, err)
	assert.True(t, again.Idempotent)
	assert.Equal(t, first.Order.ID, again.Order.ID)
	assert.Len(t, f.orders.orders, 1)

	// keys are per user
	_, err = f.svc.PlaceOrder(ctx, f.other, f.dosaOrder(), "key-1")
	require.NoError(t, err)
	assert.Len(t, f.orders.orders, 2)

	// a failed attempt releases its key
	f.now = time.Date(2026, 10, 17, 23, 0, 0, 0, f.loc)
	_, err = f.svc.PlaceOrder(ctx, f.student, f.dosaOrder(), "key-2")
	require.ErrorIs(t, err, domain.ErrOrderCutoffPassed)
	_, err = f.cache.Get(ctx, cache.IdemOrderKey(f.student.UserID, "key-2"))
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestPlaceOrderOnlinePayment(t *testing.T) {
	f := newFixture(t)
	req := f.dosaOrder()
	req.PaymentMethod = domain.PaymentMethodOnline

	res, err := f.svc.PlaceOrder(context.Background(), f.student, req, "")
	require.NoError(t, err)
	assert.Equal(t, 1, f.payments.calls)
	assert.Equal(t, "https://pay.example/"+res.Order.OrderNumber, res.PaymentURL)
	assert.Equal(t, res.PaymentURL, f.orders.orders[res.Order.ID].PaymentURL)

	f.payments.err = errors.New("gateway down")
	res, err = f.svc.PlaceOrder(context.Background(), f.student, req, "")
	require.NoError(t, err)
	assert.Empty(t, res.PaymentURL)
	assert.Equal(t, domain.PaymentStatusPending, res.Order.PaymentStatus)
}

func TestStatusLifecycleSetsTimestamps(t *testing.T) {
	f := newFixture(t)
	order := f.place(t)

	res := f.advance(t, order.ID, domain.OrderStatusApproved)
	require.NotNil(t, res.ApprovedAt)
	assert.Nil(t, res.CompletedAt)
	approvedAt := *res.ApprovedAt

	f.now = f.now.Add(2 * time.Hour)
	res = f.advance(t, order.ID, domain.OrderStatusPreparing, domain.OrderStatusReady)
	assert.Nil(t, res.CompletedAt)
	assert.Equal(t, approvedAt, *res.ApprovedAt)

	res = f.advance(t, order.ID, domain.OrderStatusServed)
	require.NotNil(t, res.CompletedAt)
	assert.Equal(t, f.now, *res.CompletedAt)
	assert.Equal(t, approvedAt, *res.ApprovedAt)
	assert.Empty(t, res.RejectionReason)
	assert.Empty(t, res.CancellationReason)
	assert.Equal(t, 4, res.Version)

	stored := f.orders.orders[order.ID]
	assert.Equal(t, domain.OrderStatusServed, stored.Status)

	var changes int
	for _, e := range f.publisher.events {
		if e.eventType == "OrderStatusChanged" {
			changes++
		}
	}
	assert.Equal(t, 4, changes)
}

func TestRejectedIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.place(t)

	res, err := f.svc.UpdateOrderStatus(ctx, f.manager, order.ID, domain.UpdateOrderStatusRequest{
		Status: domain.OrderStatusRejected,
		Reason: "kitchen closed",
	})
	require.NoError(t, err)
	assert.Equal(t, "kitchen closed", res.RejectionReason)
	assert.Nil(t, res.ApprovedAt)

	for _, next := range []string{domain.OrderStatusApproved, domain.OrderStatusPreparing, domain.OrderStatusCancelled, domain.OrderStatusServed} {
		_, err := f.svc.UpdateOrderStatus(ctx, f.manager, order.ID, domain.UpdateOrderStatusRequest{Status: next})
		assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, next)
	}
}

func TestStatusUpdateConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.place(t)

	stale := 3
	_, err := f.svc.UpdateOrderStatus(ctx, f.manager, order.ID, domain.UpdateOrderStatusRequest{
		Status:  domain.OrderStatusApproved,
		Version: &stale,
	})
	assert.ErrorIs(t, err, domain.ErrOrderStatusConflict)

	// two operators read the same row; only the first write lands
	svc := f.svc.(*orderService)
	a, err := f.orders.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	b, err := f.orders.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)

	require.NoError(t, svc.transition(ctx, f.manager, a, domain.OrderStatusApproved, "", nil))
	err = svc.transition(ctx, f.manager, b, domain.OrderStatusRejected, "", nil)
	assert.ErrorIs(t, err, domain.ErrOrderStatusConflict)
	assert.Equal(t, domain.OrderStatusApproved, f.orders.orders[order.ID].Status)
}

func TestManagerScopedToUniversity(t *testing.T) {
	f := newFixture(t)
	order := f.place(t)
	outsider := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleManager, UniversityID: uuid.NewString()}

	_, err := f.svc.UpdateOrderStatus(context.Background(), outsider, order.ID, domain.UpdateOrderStatusRequest{Status: domain.OrderStatusApproved})
	assert.ErrorIs(t, err, domain.ErrUnauthorizedOrder)

	list, total, err := f.svc.GetOrders(context.Background(), outsider, domain.OrderFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)

	list, _, err = f.svc.GetOrders(context.Background(), f.admin, domain.OrderFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.svc.UpdateOrderStatus(context.Background(), f.student, order.ID, domain.UpdateOrderStatusRequest{Status: domain.OrderStatusApproved})
	assert.ErrorIs(t, err, domain.ErrUnauthorizedOrder)
}

func TestStudentSeesOnlyOwnOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.place(t)
	_, err := f.svc.PlaceOrder(ctx, f.other, f.dosaOrder(), "")
	require.NoError(t, err)

	_, err = f.svc.GetOrder(ctx, f.other, order.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedOrder)
	_, err = f.svc.GetOrderStatus(ctx, f.other, order.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedOrder)

	list, total, err := f.svc.GetOrders(ctx, f.student, domain.OrderFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, order.ID, list[0].ID)

	_, err = f.svc.GetOrder(ctx, f.student, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	_, err = f.svc.GetOrder(ctx, f.student, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestGetOrderStatusUsesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.place(t)

	raw, err := f.cache.Get(ctx, cache.OrderStatusKey(order.ID))
	require.NoError(t, err)
	var entry statusEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))
	assert.Equal(t, domain.OrderStatusPending, entry.Status)

	f.advance(t, order.ID, domain.OrderStatusApproved)
	status, err := f.svc.GetOrderStatus(ctx, f.student, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusApproved, status.Status)

	require.NoError(t, f.cache.Delete(ctx, cache.OrderStatusKey(order.ID)))
	status, err = f.svc.GetOrderStatus(ctx, f.student, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusApproved, status.Status)
	_, err = f.cache.Get(ctx, cache.OrderStatusKey(order.ID))
	assert.NoError(t, err)
}

func TestStudentCancelsPendingOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.place(t)

	_, err := f.svc.CancelOrder(ctx, f.other, order.ID, domain.CancelOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorizedOrder)

	res, err := f.svc.CancelOrder(ctx, f.student, order.ID, domain.CancelOrderRequest{Reason: "changed plans"})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, res.Status)
	assert.Equal(t, "changed plans", res.CancellationReason)

	approved := f.place(t)
	f.advance(t, approved.ID, domain.OrderStatusApproved)
	_, err = f.svc.CancelOrder(ctx, f.student, approved.ID, domain.CancelOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestServeRequiresReady(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.place(t)
	f.now = time.Date(2026, 10, 18, 12, 0, 0, 0, f.loc)

	_, err := f.svc.ServeOrder(ctx, f.caterer, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotReady)

	f.advance(t, order.ID, domain.OrderStatusApproved, domain.OrderStatusPreparing)
	_, err = f.svc.ServeOrder(ctx, f.caterer, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotReady)

	f.advance(t, order.ID, domain.OrderStatusReady)
	ready, err := f.svc.GetTodayReadyOrders(ctx, f.caterer)
	require.NoError(t, err)
	require.Len(t, ready, 1)

	res, err := f.svc.ServeOrder(ctx, f.caterer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusServed, res.Status)
	assert.NotNil(t, res.CompletedAt)

	_, err = f.svc.ServeOrder(ctx, f.caterer, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderAlreadyServed)

	ready, err = f.svc.GetTodayReadyOrders(ctx, f.caterer)
	require.NoError(t, err)
	assert.Empty(t, ready)
}

func TestCatererCannotServeAnotherDay(t *testing.T) {
	f := newFixture(t)
	order := f.place(t)
	f.advance(t, order.ID, domain.OrderStatusApproved, domain.OrderStatusPreparing, domain.OrderStatusReady)

	_, err := f.svc.ServeOrder(context.Background(), f.caterer, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotToday)

	_, err = f.svc.UpdateOrderStatus(context.Background(), f.caterer, order.ID, domain.UpdateOrderStatusRequest{Status: domain.OrderStatusServed})
	assert.ErrorIs(t, err, domain.ErrUnauthorizedOrder)
}

func TestScanQRServesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.place(t)
	f.advance(t, order.ID, domain.OrderStatusApproved, domain.OrderStatusPreparing, domain.OrderStatusReady)
	f.now = time.Date(2026, 10, 18, 12, 30, 0, 0, f.loc)

	payload, err := f.svc.GetQRPayload(ctx, f.student, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", payload.StudentName)
	assert.Equal(t, domain.OrderStatusReady, payload.Status)
	require.Len(t, payload.Items, 1)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"orderId"`)

	_, err = f.svc.GetQRPayload(ctx, f.other, order.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedOrder)

	_, err = f.svc.ScanQR(ctx, f.caterer, domain.ScanQRRequest{Payload: "{not json"})
	assert.ErrorIs(t, err, domain.ErrInvalidQRPayload)

	forged := *payload
	forged.OrderNumber = "ORD-20261018-AAAAAA"
	forgedRaw, _ := json.Marshal(forged)
	_, err = f.svc.ScanQR(ctx, f.caterer, domain.ScanQRRequest{Payload: string(forgedRaw)})
	assert.ErrorIs(t, err, domain.ErrQRNoMatch)

	res, err := f.svc.ScanQR(ctx, f.caterer, domain.ScanQRRequest{Payload: string(raw)})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusServed, res.Status)

	_, err = f.svc.ScanQR(ctx, f.caterer, domain.ScanQRRequest{Payload: string(raw)})
	assert.ErrorIs(t, err, domain.ErrOrderAlreadyServed)

	// a code kept until the next day no longer matches
	f.now = f.now.Add(24 * time.Hour)
	_, err = f.svc.ScanQR(ctx, f.caterer, domain.ScanQRRequest{Payload: string(raw)})
	assert.ErrorIs(t, err, domain.ErrQRNoMatch)
}

func TestDeleteOrderAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.place(t)

	err := f.svc.DeleteOrder(ctx, f.manager, order.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedOrder)

	require.NoError(t, f.svc.DeleteOrder(ctx, f.admin, order.ID))
	assert.Empty(t, f.orders.orders)
	_, err = f.cache.Get(ctx, cache.OrderStatusKey(order.ID))
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	err = f.svc.DeleteOrder(ctx, f.admin, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
