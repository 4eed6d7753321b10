package handlers

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/internal/utils"
	"Hostel-Food-Ordering/pkg/order"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderService struct {
	order.OrderService
	placeErr   error
	serveErr   error
	lastKey    string
	lastActor  domain.Actor
	idempotent bool
}

func (s *stubOrderService) PlaceOrder(_ context.Context, actor domain.Actor, req domain.PlaceOrderRequest, key string) (*domain.PlaceOrderResponse, error) {
	s.lastKey = key
	s.lastActor = actor
	if s.placeErr != nil {
		return nil, s.placeErr
	}
	return &domain.PlaceOrderResponse{
		Order: domain.OrderResponse{
			ID:          uuid.NewString(),
			OrderDate:   req.OrderDate,
			Status:      domain.OrderStatusPending,
			TotalAmount: decimal.RequireFromString("99"),
		},
		Idempotent: s.idempotent,
	}, nil
}

func (s *stubOrderService) ServeOrder(_ context.Context, actor domain.Actor, id string) (*domain.OrderResponse, error) {
	s.lastActor = actor
	if s.serveErr != nil {
		return nil, s.serveErr
	}
	return &domain.OrderResponse{ID: id, Status: domain.OrderStatusServed}, nil
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func withActor(actor domain.Actor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", actor.UserID)
		c.Locals("role", actor.Role)
		c.Locals("university_id", actor.UniversityID)
		return c.Next()
	}
}

func newOrderApp(svc *stubOrderService, actor domain.Actor) *fiber.App {
	utils.InitValidator()
	h := NewOrderHandler(svc, utils.Validate)
	app := fiber.New()
	app.Post("/api/orders", withActor(actor), h.PlaceOrder)
	app.Post("/api/caterer/orders/:id/serve", withActor(actor), h.ServeOrder)
	return app
}

func decode(t *testing.T, body io.Reader) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func placeBody(itemID string, qty int) string {
	return fmt.Sprintf(`{"order_date":"2026-10-18","items":[{"menu_item_id":"%s","quantity":%d}],"client_total":"99.00"}`, itemID, qty)
}

func TestPlaceOrderHandler(t *testing.T) {
	student := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleStudent, UniversityID: uuid.NewString()}
	svc := &stubOrderService{}
	app := newOrderApp(svc, student)

	req := httptest.NewRequest(fiber.MethodPost, "/api/orders", strings.NewReader(placeBody(uuid.NewString(), 2)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set("Idempotency-Key", "abc")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	env := decode(t, resp.Body)
	assert.True(t, env.Status)
	assert.Equal(t, domain.MessageSuccessPlaceOrder, env.Message)
	assert.Equal(t, "abc", svc.lastKey)
	assert.Equal(t, student, svc.lastActor)

	var data domain.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "2026-10-18", data.Order.OrderDate)
}

func TestPlaceOrderHandlerReplayReturnsOK(t *testing.T) {
	svc := &stubOrderService{idempotent: true}
	app := newOrderApp(svc, domain.Actor{UserID: uuid.NewString(), Role: domain.RoleStudent})

	req := httptest.NewRequest(fiber.MethodPost, "/api/orders", strings.NewReader(placeBody(uuid.NewString(), 1)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPlaceOrderHandlerValidation(t *testing.T) {
	svc := &stubOrderService{}
	app := newOrderApp(svc, domain.Actor{UserID: uuid.NewString(), Role: domain.RoleStudent})

	cases := map[string]string{
		"no items":     `{"order_date":"2026-10-18","items":[]}`,
		"zero qty":     placeBody(uuid.NewString(), 0),
		"bad item id":  placeBody("dosa", 1),
		"bad date":     `{"order_date":"18/10/2026","items":[{"menu_item_id":"` + uuid.NewString() + `","quantity":1}]}`,
		"bad method":   `{"order_date":"2026-10-18","payment_method":"CARD","items":[{"menu_item_id":"` + uuid.NewString() + `","quantity":1}]}`,
		"invalid json": `{"order_date":`,
	}
	for name, body := range cases {
		req := httptest.NewRequest(fiber.MethodPost, "/api/orders", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err, name)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, name)
		assert.False(t, decode(t, resp.Body).Status, name)
	}
	assert.Empty(t, svc.lastKey)
}

func TestPlaceOrderHandlerMapsErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrOrderCutoffPassed, fiber.StatusUnprocessableEntity},
		{domain.ErrMenuItemNotFound, fiber.StatusNotFound},
		{domain.ErrDuplicateRequest, fiber.StatusConflict},
		{domain.ErrEmptyCart, fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		svc := &stubOrderService{placeErr: tc.err}
		app := newOrderApp(svc, domain.Actor{UserID: uuid.NewString(), Role: domain.RoleStudent})

		req := httptest.NewRequest(fiber.MethodPost, "/api/orders", strings.NewReader(placeBody(uuid.NewString(), 1)))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.code, resp.StatusCode, tc.err.Error())

		env := decode(t, resp.Body)
		assert.Equal(t, tc.err.Error(), env.Error)
	}
}

func TestServeOrderHandler(t *testing.T) {
	caterer := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleCaterer, UniversityID: uuid.NewString()}
	id := uuid.NewString()

	svc := &stubOrderService{}
	resp, err := newOrderApp(svc, caterer).Test(httptest.NewRequest(fiber.MethodPost, "/api/caterer/orders/"+id+"/serve", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, caterer, svc.lastActor)

	for err, code := range map[error]int{
		domain.ErrOrderAlreadyServed: fiber.StatusConflict,
		domain.ErrOrderNotReady:      fiber.StatusConflict,
		domain.ErrOrderNotToday:      fiber.StatusUnprocessableEntity,
		domain.ErrUnauthorizedOrder:  fiber.StatusForbidden,
	} {
		svc := &stubOrderService{serveErr: err}
		resp, testErr := newOrderApp(svc, caterer).Test(httptest.NewRequest(fiber.MethodPost, "/api/caterer/orders/"+id+"/serve", nil))
		require.NoError(t, testErr)
		assert.Equal(t, code, resp.StatusCode, err.Error())
	}
}
