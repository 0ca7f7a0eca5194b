package usecase_test

import (
	"context"
	"strings"
	"testing"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"
	"foodorder/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	users       repo.UserRepository
	restaurants repo.RestaurantRepository
	dishes      repo.DishRepository
	carts       repo.CartRepository
	cartItems   repo.CartItemRepository
	orders      repo.OrderRepository
	orderItems  repo.OrderItemRepository
	auditLogs   repo.AuditLogRepository
}

func (r *TxReposMock) Users() repo.UserRepository             { return r.users }
func (r *TxReposMock) Restaurants() repo.RestaurantRepository { return r.restaurants }
func (r *TxReposMock) Dishes() repo.DishRepository            { return r.dishes }
func (r *TxReposMock) Carts() repo.CartRepository             { return r.carts }
func (r *TxReposMock) CartItems() repo.CartItemRepository     { return r.cartItems }
func (r *TxReposMock) Orders() repo.OrderRepository           { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository   { return r.orderItems }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository     { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type RestaurantRepoMock struct{ mock.Mock }

func (m *RestaurantRepoMock) Create(ctx context.Context, r *model.Restaurant) error {
	args := m.Called(ctx, r)
	if args.Error(0) == nil {
		r.ID = 1
	}
	return args.Error(0)
}

func (m *RestaurantRepoMock) FindByID(ctx context.Context, restaurantID int64) (model.Restaurant, error) {
	args := m.Called(ctx, restaurantID)
	r, _ := args.Get(0).(model.Restaurant)
	return r, args.Error(1)
}

func (m *RestaurantRepoMock) List(ctx context.Context) ([]model.Restaurant, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Restaurant)
	return items, args.Error(1)
}

type DishRepoMock struct{ mock.Mock }

func (m *DishRepoMock) Create(ctx context.Context, d *model.Dish) error {
	args := m.Called(ctx, d)
	if args.Error(0) == nil {
		d.ID = 10
	}
	return args.Error(0)
}

func (m *DishRepoMock) FindByID(ctx context.Context, dishID int64) (model.Dish, error) {
	args := m.Called(ctx, dishID)
	d, _ := args.Get(0).(model.Dish)
	return d, args.Error(1)
}

func (m *DishRepoMock) ListByRestaurantID(ctx context.Context, restaurantID int64) ([]model.Dish, error) {
	args := m.Called(ctx, restaurantID)
	items, _ := args.Get(0).([]model.Dish)
	return items, args.Error(1)
}

func (m *DishRepoMock) Update(ctx context.Context, d model.Dish) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DishRepoMock) Delete(ctx context.Context, dishID int64) error {
	args := m.Called(ctx, dishID)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByUserIDForUpdate(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) CreateForUser(ctx context.Context, userID int64, restaurantID int64) (model.Cart, error) {
	args := m.Called(ctx, userID, restaurantID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Delete(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListLinesByCartID(ctx context.Context, cartID int64) ([]repo.CartLine, error) {
	args := m.Called(ctx, cartID)
	lines, _ := args.Get(0).([]repo.CartLine)
	return lines, args.Error(1)
}

func (m *CartItemRepoMock) UpsertQuantity(ctx context.Context, cartID int64, dishID int64, addQty int64) error {
	args := m.Called(ctx, cartID, dishID, addQty)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteOwnedByUser(ctx context.Context, cartItemID int64, userID int64) error {
	args := m.Called(ctx, cartItemID, userID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByDishID(ctx context.Context, dishID int64) error {
	args := m.Called(ctx, dishID)
	return args.Error(0)
}

func (m *CartItemRepoMock) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	args := m.Called(ctx, cartItemID, userID)
	return args.Bool(0), args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil {
		order.ID = 100
	}
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindForSellerForUpdate(ctx context.Context, sellerID int64, orderID int64) (model.Order, error) {
	args := m.Called(ctx, sellerID, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]repo.BuyerOrderRow, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]repo.BuyerOrderRow)
	return rows, args.Error(1)
}

func (m *OrderRepoMock) ListBySellerID(ctx context.Context, sellerID int64) ([]repo.SellerOrderRow, error) {
	args := m.Called(ctx, sellerID)
	rows, _ := args.Get(0).([]repo.SellerOrderRow)
	return rows, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListLinesByOrderID(ctx context.Context, orderID int64) ([]repo.OrderItemLine, error) {
	args := m.Called(ctx, orderID)
	lines, _ := args.Get(0).([]repo.OrderItemLine)
	return lines, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// ports mocks
// =====================

type EventPublisherMock struct{ mock.Mock }

func (m *EventPublisherMock) Publish(ctx context.Context, ev model.OrderEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type CheckoutGuardMock struct{ mock.Mock }

func (m *CheckoutGuardMock) Acquire(ctx context.Context, userID int64, key string) (bool, error) {
	args := m.Called(ctx, userID, key)
	return args.Bool(0), args.Error(1)
}

func (m *CheckoutGuardMock) Release(ctx context.Context, userID int64, key string) error {
	args := m.Called(ctx, userID, key)
	return args.Error(0)
}

var (
	_ repo.TransactionManager     = (*TxManagerMock)(nil)
	_ repo.TxRepos                = (*TxReposMock)(nil)
	_ repo.RestaurantRepository   = (*RestaurantRepoMock)(nil)
	_ repo.DishRepository         = (*DishRepoMock)(nil)
	_ repo.CartRepository         = (*CartRepoMock)(nil)
	_ repo.CartItemRepository     = (*CartItemRepoMock)(nil)
	_ repo.OrderRepository        = (*OrderRepoMock)(nil)
	_ repo.OrderItemRepository    = (*OrderItemRepoMock)(nil)
	_ repo.AuditLogRepository     = (*AuditRepoMock)(nil)
	_ usecase.OrderEventPublisher = (*EventPublisherMock)(nil)
	_ usecase.CheckoutGuard       = (*CheckoutGuardMock)(nil)
)

// =====================
// helper
// =====================

func assertErrContains(t *testing.T, err error, want string) {
	t.Helper()
	require.Error(t, err)
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("error mismatch: got=%q want contains=%q", err.Error(), want)
	}
}

// HTTPErrorのstatusとmessageを確認する
func requireHTTPError(t *testing.T, err error, status int, message string) *usecase.HTTPError {
	t.Helper()
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "not an HTTPError: %v", err)
	require.Equal(t, status, he.Status)
	require.Equal(t, message, he.Message)
	return he
}

func boolPtr(b bool) *bool { return &b }
