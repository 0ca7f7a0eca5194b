package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// 料理名・現在価格をJOINしたカート明細
type CartLine struct {
	ID           int64
	CartID       int64
	DishID       int64
	RestaurantID int64
	Name         string
	Price        decimal.Decimal
	Quantity     int64
}

type CartItemRepository interface {
	ListLinesByCartID(ctx context.Context, cartID int64) ([]CartLine, error)
	// 同一料理はプラス
	UpsertQuantity(ctx context.Context, cartID int64, dishID int64, addQty int64) error
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	// そのユーザーのカートの明細だけ消す。0件でもエラーにしない
	DeleteOwnedByUser(ctx context.Context, cartItemID int64, userID int64) error
	DeleteByDishID(ctx context.Context, dishID int64) error
	IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error)
}
