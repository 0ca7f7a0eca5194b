package repository

import (
	"context"
	"time"

	"foodorder/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 購入者向けの注文一覧行
type BuyerOrderRow struct {
	ID              int64               `json:"id"`
	RestaurantID    int64               `json:"restaurant_id"`
	RestaurantName  string              `json:"restaurant_name"`
	TotalPrice      decimal.Decimal     `json:"total_price"`
	PaymentMethod   model.PaymentMethod `json:"payment_method"`
	PaymentStatus   model.PaymentStatus `json:"payment_status"`
	DeliveryAddress string              `json:"delivery_address"`
	DeliveryFee     decimal.Decimal     `json:"delivery_fee"`
	Status          model.OrderStatus   `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// 販売者向けの注文一覧行
type SellerOrderRow struct {
	BuyerOrderRow
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// 行ロック付き（Tx内で使う）
	FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error)
	// sellerの店舗の注文だけ。他人の注文はErrNotFound
	FindForSellerForUpdate(ctx context.Context, sellerID int64, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]BuyerOrderRow, error)
	ListBySellerID(ctx context.Context, sellerID int64) ([]SellerOrderRow, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error
}
