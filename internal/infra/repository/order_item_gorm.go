package repository

import (
	"context"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// 料理が削除されていても明細は返す（nameは空）
func (r *OrderItemGormRepository) ListLinesByOrderID(ctx context.Context, orderID int64) ([]repo.OrderItemLine, error) {
	var lines []repo.OrderItemLine
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.dish_id, COALESCE(dishes.name, '') AS name, order_items.quantity, order_items.price").
		Joins("left join dishes on dishes.id = order_items.dish_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id asc").
		Scan(&lines).Error
	if err != nil {
		return []repo.OrderItemLine{}, err
	}
	return lines, nil
}
