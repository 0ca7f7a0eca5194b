package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderEventType string

const (
	OrderEventCreated        OrderEventType = "order.created"
	OrderEventStatusChanged  OrderEventType = "order.status_changed"
	OrderEventPaymentChanged OrderEventType = "order.payment_changed"
	OrderEventCancelled      OrderEventType = "order.cancelled"
)

// コミット後に外部へ流す注文イベント
type OrderEvent struct {
	Type          OrderEventType  `json:"type"`
	OrderID       int64           `json:"order_id"`
	UserID        int64           `json:"user_id"`
	RestaurantID  int64           `json:"restaurant_id"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	At            time.Time       `json:"at"`
}

func NewOrderEvent(t OrderEventType, o Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:          t,
		OrderID:       o.ID,
		UserID:        o.UserID,
		RestaurantID:  o.RestaurantID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		TotalPrice:    o.TotalPrice,
		At:            at,
	}
}
