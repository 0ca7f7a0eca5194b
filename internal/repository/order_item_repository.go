package repository

import (
	"context"

	"foodorder/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 注文明細 + 料理名
type OrderItemLine struct {
	DishID   int64           `json:"dish_id"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListLinesByOrderID(ctx context.Context, orderID int64) ([]OrderItemLine, error)
}
