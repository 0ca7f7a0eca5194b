package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"
)

// 決済（モック）と決済ステータス更新
type PaymentUsecase struct {
	tx     repo.TransactionManager
	events OrderEventPublisher
}

func NewPaymentUsecase(tx repo.TransactionManager, events OrderEventPublisher) *PaymentUsecase {
	return &PaymentUsecase{tx: tx, events: events}
}

type PayOrderInput struct {
	// nilは「true/false以外」
	Success *bool
}

type PayOrderOutput struct {
	Message       string              `json:"message"`
	OrderID       int64               `json:"order_id"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
}

type UpdatePaymentStatusInput struct {
	PaymentStatus string
}

// PayOrder は外部呼び出しなしのモック決済。pendingからの1回だけ。
func (u *PaymentUsecase) PayOrder(ctx context.Context, userID int64, orderID int64, in PayOrderInput) (PayOrderOutput, error) {
	if in.Success == nil {
		return PayOrderOutput{}, NewValidationError("success must be true or false")
	}
	if orderID <= 0 {
		return PayOrderOutput{}, NewValidationError("invalid order id")
	}

	newStatus := model.PaymentStatusFailed
	if *in.Success {
		newStatus = model.PaymentStatusPaid
	}

	var paid model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("Order not found")
		}
		if err != nil {
			return fmt.Errorf("find order: %w", err)
		}
		if o.UserID != userID {
			return NewNotFoundError("Order not found")
		}
		if o.PaymentMethod != model.PaymentMethodOnline {
			return NewValidationError("This order is not online payment")
		}
		if o.PaymentStatus != model.PaymentStatusPending {
			return NewConflictError("Payment already processed", o.PaymentStatus)
		}

		if err := r.Orders().UpdatePaymentStatus(ctx, orderID, newStatus); err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}

		if err := auditOrder(ctx, r, userID, model.AuditActionPayOrder, orderID,
			map[string]interface{}{"payment_status": o.PaymentStatus},
			map[string]interface{}{"payment_status": newStatus},
		); err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		o.PaymentStatus = newStatus
		paid = o
		return nil
	})
	if err != nil {
		return PayOrderOutput{}, asUsecaseError(err, "pay order")
	}

	publishEvent(ctx, u.events, model.OrderEventPaymentChanged, paid)

	msg := "Payment failed"
	if newStatus == model.PaymentStatusPaid {
		msg = "Payment successful"
	}
	return PayOrderOutput{Message: msg, OrderID: orderID, PaymentStatus: newStatus}, nil
}

// UpdatePaymentStatus は購入者本人か店舗の販売者だけが更新できる。
// 値は許可リスト内なら無条件に上書きする。
func (u *PaymentUsecase) UpdatePaymentStatus(ctx context.Context, userID int64, orderID int64, in UpdatePaymentStatusInput) (StatusChangeOutput, error) {
	newStatus := model.PaymentStatus(strings.TrimSpace(in.PaymentStatus))
	if !newStatus.IsValid() {
		return StatusChangeOutput{}, NewValidationError("Invalid payment status")
	}
	if orderID <= 0 {
		return StatusChangeOutput{}, NewValidationError("invalid order id")
	}

	var updated model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("Order not found")
		}
		if err != nil {
			return fmt.Errorf("find order: %w", err)
		}

		if o.UserID != userID {
			rest, err := r.Restaurants().FindByID(ctx, o.RestaurantID)
			if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return fmt.Errorf("find restaurant: %w", err)
			}
			if err != nil || rest.SellerID != userID {
				return NewNotFoundError("Order not found")
			}
		}

		if err := r.Orders().UpdatePaymentStatus(ctx, orderID, newStatus); err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}

		if err := auditOrder(ctx, r, userID, model.AuditActionUpdatePaymentStatus, orderID,
			map[string]interface{}{"payment_status": o.PaymentStatus},
			map[string]interface{}{"payment_status": newStatus},
		); err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		o.PaymentStatus = newStatus
		updated = o
		return nil
	})
	if err != nil {
		return StatusChangeOutput{}, asUsecaseError(err, "update payment status")
	}

	publishEvent(ctx, u.events, model.OrderEventPaymentChanged, updated)

	return StatusChangeOutput{
		Message:   "Payment status updated",
		OrderID:   orderID,
		NewStatus: string(newStatus),
	}, nil
}
