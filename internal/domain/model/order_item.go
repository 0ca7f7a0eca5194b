package model

import "github.com/shopspring/decimal"

// priceは注文時点の料理価格のスナップショット
type OrderItem struct {
	ID       int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID  int64           `gorm:"not null;index" json:"order_id"`
	DishID   int64           `gorm:"not null;index" json:"dish_id"`
	Quantity int64           `gorm:"not null" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}
