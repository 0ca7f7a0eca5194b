package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"

	"github.com/rs/zerolog"
)

// 販売者側の注文（一覧・ステータス更新）
type SellerOrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	events OrderEventPublisher
}

func NewSellerOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, events OrderEventPublisher) *SellerOrderUsecase {
	return &SellerOrderUsecase{tx: tx, orders: orders, events: events}
}

type UpdateOrderStatusInput struct {
	Status string
}

// 自分の全店舗の注文一覧（新しい順）
func (u *SellerOrderUsecase) ListOrders(ctx context.Context, sellerID int64) ([]repo.SellerOrderRow, error) {
	rows, err := u.orders.ListBySellerID(ctx, sellerID)
	if err != nil {
		return []repo.SellerOrderRow{}, NewServerError(fmt.Errorf("list seller orders: %w", err))
	}
	if rows == nil {
		rows = []repo.SellerOrderRow{}
	}
	return rows, nil
}

// UpdateStatus はステータス更新。許可リスト内ならどの値からでも変更できる。
// オンライン決済で未払いなら進められない。
func (u *SellerOrderUsecase) UpdateStatus(ctx context.Context, sellerID int64, orderID int64, in UpdateOrderStatusInput) (StatusChangeOutput, error) {
	newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
	if !newStatus.IsValid() {
		return StatusChangeOutput{}, NewValidationError("Invalid status value")
	}
	if orderID <= 0 {
		return StatusChangeOutput{}, NewValidationError("invalid order id")
	}

	var updated model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 他店舗の注文は存在しない扱い
		o, err := r.Orders().FindForSellerForUpdate(ctx, sellerID, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("Order not found for this seller")
		}
		if err != nil {
			return fmt.Errorf("find order: %w", err)
		}

		//決済ゲート
		if o.PaymentMethod == model.PaymentMethodOnline && o.PaymentStatus != model.PaymentStatusPaid {
			zerolog.Ctx(ctx).Warn().
				Int64("order_id", orderID).
				Int64("seller_id", sellerID).
				Str("payment_status", string(o.PaymentStatus)).
				Msg("status change blocked by payment gate")
			return NewPaymentRequiredError(o.PaymentStatus)
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		if err := auditOrder(ctx, r, sellerID, model.AuditActionUpdateOrderStatus, orderID,
			map[string]interface{}{"status": o.Status},
			map[string]interface{}{"status": newStatus},
		); err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		o.Status = newStatus
		updated = o
		return nil
	})
	if err != nil {
		return StatusChangeOutput{}, asUsecaseError(err, "update order status")
	}

	publishEvent(ctx, u.events, model.OrderEventStatusChanged, updated)

	return StatusChangeOutput{
		Message:   "Order status updated",
		OrderID:   orderID,
		NewStatus: string(newStatus),
	}, nil
}
