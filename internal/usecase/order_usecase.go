package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// 購入者側の注文（作成・一覧・詳細・キャンセル）
type OrderUsecase struct {
	tx         repo.TransactionManager
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	auditLogs  repo.AuditLogRepository
	events     OrderEventPublisher
	guard      CheckoutGuard
}

// guardはnilなら二重送信チェックをしない
func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	auditLogs repo.AuditLogRepository,
	events OrderEventPublisher,
	guard CheckoutGuard,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		orders:     orders,
		orderItems: orderItems,
		auditLogs:  auditLogs,
		events:     events,
		guard:      guard,
	}
}

type CreateOrderInput struct {
	PaymentMethod   string
	DeliveryAddress string
	DeliveryFee     decimal.Decimal
	IdempotencyKey  string
}

type CreateOrderOutput struct {
	Message         string              `json:"message"`
	OrderID         int64               `json:"order_id"`
	TotalPrice      decimal.Decimal     `json:"total_price"`
	PaymentMethod   model.PaymentMethod `json:"payment_method"`
	PaymentStatus   model.PaymentStatus `json:"payment_status"`
	DeliveryFee     decimal.Decimal     `json:"delivery_fee"`
	DeliveryAddress string              `json:"delivery_address"`
}

type OrderDetailOutput struct {
	Order model.Order          `json:"order"`
	Items []repo.OrderItemLine `json:"items"`
}

// CreateOrder はカートを注文に変換する。全部成功か全部ロールバック。
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (CreateOrderOutput, error) {
	method := model.PaymentMethod(strings.TrimSpace(in.PaymentMethod))
	address := strings.TrimSpace(in.DeliveryAddress)

	if method == "" || address == "" {
		return CreateOrderOutput{}, NewValidationError("payment_method and delivery_address are required")
	}
	if !method.IsValid() {
		return CreateOrderOutput{}, NewValidationError("payment_method must be cash or online")
	}
	if in.DeliveryFee.IsNegative() {
		return CreateOrderOutput{}, NewValidationError("delivery_fee must not be negative")
	}

	//二重送信チェック（Redisが無い・落ちているときは通す）
	key := strings.TrimSpace(in.IdempotencyKey)
	locked := false
	if u.guard != nil && key != "" {
		ok, err := u.guard.Acquire(ctx, userID, key)
		switch {
		case err != nil:
			zerolog.Ctx(ctx).Warn().Err(err).Msg("checkout guard unavailable")
		case !ok:
			return CreateOrderOutput{}, NewDuplicateRequestError()
		default:
			locked = true
		}
	}

	var created model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserIDForUpdate(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewValidationError("Cart is empty")
		}
		if err != nil {
			return fmt.Errorf("find cart: %w", err)
		}

		//価格は今この時点の料理価格を読む
		lines, err := r.CartItems().ListLinesByCartID(ctx, cart.ID)
		if err != nil {
			return fmt.Errorf("list cart items: %w", err)
		}
		if len(lines) == 0 {
			return NewValidationError("Cart has no items")
		}

		subtotal := decimal.Zero
		items := make([]model.OrderItem, 0, len(lines))
		for _, l := range lines {
			subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(l.Quantity)))
			items = append(items, model.OrderItem{
				DishID:   l.DishID,
				Quantity: l.Quantity,
				Price:    l.Price,
			})
		}

		//restaurant_idはカートのものを使う
		order := model.Order{
			UserID:          userID,
			RestaurantID:    cart.RestaurantID,
			TotalPrice:      subtotal.Add(in.DeliveryFee),
			PaymentMethod:   method,
			PaymentStatus:   model.PaymentStatusPending,
			DeliveryAddress: address,
			DeliveryFee:     in.DeliveryFee,
			Status:          model.OrderStatusPending,
		}
		if err := r.Orders().Create(ctx, &order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		//明細→カートの順で削除
		if err := r.Carts().Delete(ctx, cart.ID); err != nil {
			return fmt.Errorf("delete cart: %w", err)
		}

		if err := auditOrder(ctx, r, userID, model.AuditActionCreateOrder, order.ID, nil, map[string]interface{}{
			"status":         order.Status,
			"payment_status": order.PaymentStatus,
			"total_price":    order.TotalPrice,
		}); err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		created = order
		return nil
	})
	if err != nil {
		if locked {
			if relErr := u.guard.Release(ctx, userID, key); relErr != nil {
				zerolog.Ctx(ctx).Warn().Err(relErr).Msg("checkout guard release failed")
			}
		}
		return CreateOrderOutput{}, asUsecaseError(err, "create order")
	}

	publishEvent(ctx, u.events, model.OrderEventCreated, created)

	return CreateOrderOutput{
		Message:         "Order created successfully",
		OrderID:         created.ID,
		TotalPrice:      created.TotalPrice,
		PaymentMethod:   created.PaymentMethod,
		PaymentStatus:   created.PaymentStatus,
		DeliveryFee:     created.DeliveryFee,
		DeliveryAddress: created.DeliveryAddress,
	}, nil
}

// 自分の注文一覧（新しい順）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]repo.BuyerOrderRow, error) {
	rows, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return []repo.BuyerOrderRow{}, NewServerError(fmt.Errorf("list orders: %w", err))
	}
	if rows == nil {
		rows = []repo.BuyerOrderRow{}
	}
	return rows, nil
}

func (u *OrderUsecase) GetOrderDetails(ctx context.Context, userID int64, orderID int64) (OrderDetailOutput, error) {
	o, err := u.findOwnOrder(ctx, userID, orderID)
	if err != nil {
		return OrderDetailOutput{}, err
	}

	items, err := u.orderItems.ListLinesByOrderID(ctx, orderID)
	if err != nil {
		return OrderDetailOutput{}, NewServerError(fmt.Errorf("list order items: %w", err))
	}
	if items == nil {
		items = []repo.OrderItemLine{}
	}

	return OrderDetailOutput{Order: o, Items: items}, nil
}

// 注文の変更履歴（購入者本人のみ）
func (u *OrderUsecase) History(ctx context.Context, userID int64, orderID int64) ([]model.AuditLog, error) {
	if _, err := u.findOwnOrder(ctx, userID, orderID); err != nil {
		return []model.AuditLog{}, err
	}

	resourceType := model.AuditResourceOrder
	logs, err := u.auditLogs.List(ctx, repo.AuditLogFilter{
		ResourceType: &resourceType,
		ResourceID:   &orderID,
		Limit:        200,
	})
	if err != nil {
		return []model.AuditLog{}, NewServerError(fmt.Errorf("list audit logs: %w", err))
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}
	return logs, nil
}

// CancelOrder は購入者のキャンセル。pendingかつ未決済のときだけ。
func (u *OrderUsecase) CancelOrder(ctx context.Context, userID int64, orderID int64) (StatusChangeOutput, error) {
	if orderID <= 0 {
		return StatusChangeOutput{}, NewValidationError("invalid order id")
	}

	var cancelled model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("Order not found")
		}
		if err != nil {
			return fmt.Errorf("find order: %w", err)
		}
		if o.UserID != userID {
			return NewForbiddenError("You are not allowed to cancel this order")
		}
		if o.Status != model.OrderStatusPending {
			return NewValidationError("Only pending orders can be cancelled")
		}
		if o.PaymentStatus == model.PaymentStatusPaid {
			return NewValidationError("Paid orders cannot be cancelled")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		if err := auditOrder(ctx, r, userID, model.AuditActionCancelOrder, orderID,
			map[string]interface{}{"status": o.Status},
			map[string]interface{}{"status": model.OrderStatusCancelled},
		); err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		o.Status = model.OrderStatusCancelled
		cancelled = o
		return nil
	})
	if err != nil {
		return StatusChangeOutput{}, asUsecaseError(err, "cancel order")
	}

	publishEvent(ctx, u.events, model.OrderEventCancelled, cancelled)

	return StatusChangeOutput{
		Message:   "Order cancelled successfully",
		OrderID:   orderID,
		NewStatus: string(model.OrderStatusCancelled),
	}, nil
}

// 他人の注文は「存在しない扱い」にする
func (u *OrderUsecase) findOwnOrder(ctx context.Context, userID int64, orderID int64) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewValidationError("invalid order id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewNotFoundError("Order not found")
	}
	if err != nil {
		return model.Order{}, NewServerError(fmt.Errorf("find order: %w", err))
	}
	if o.UserID != userID {
		return model.Order{}, NewNotFoundError("Order not found")
	}
	return o, nil
}
