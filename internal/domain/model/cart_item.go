package model

import "time"

// カートの明細
// 同じ料理は(cart_id, dish_id)で1行にまとめる。価格は持たず注文時に読む。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;uniqueIndex:idx_cart_items_cart_dish" json:"cart_id"`
	DishID    int64     `gorm:"not null;uniqueIndex:idx_cart_items_cart_dish" json:"dish_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
