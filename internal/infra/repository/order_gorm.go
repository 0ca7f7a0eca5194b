package repository

import (
	"context"
	"time"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

const buyerOrderColumns = "orders.id, orders.restaurant_id, restaurants.name AS restaurant_name, " +
	"orders.total_price, orders.payment_method, orders.payment_status, orders.delivery_address, " +
	"orders.delivery_fee, orders.status, orders.created_at, orders.updated_at"

func (r *OrderGormRepository) Create(ctx context.Context, order *model.Order) error {
	return translateError(r.db.WithContext(ctx).Create(order).Error)
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error; err != nil {
		return model.Order{}, translateError(err)
	}
	return o, nil
}

func (r *OrderGormRepository) FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", orderID).
		First(&o).Error
	if err != nil {
		return model.Order{}, translateError(err)
	}
	return o, nil
}

// 他の販売者の注文は「存在しない扱い」
func (r *OrderGormRepository) FindForSellerForUpdate(ctx context.Context, sellerID int64, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Joins("join restaurants on restaurants.id = orders.restaurant_id").
		Where("orders.id = ? AND restaurants.seller_id = ?", orderID, sellerID).
		First(&o).Error
	if err != nil {
		return model.Order{}, translateError(err)
	}
	return o, nil
}

// 新しい順
func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]repo.BuyerOrderRow, error) {
	var rows []repo.BuyerOrderRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select(buyerOrderColumns).
		Joins("left join restaurants on restaurants.id = orders.restaurant_id").
		Where("orders.user_id = ?", userID).
		Order("orders.created_at desc, orders.id desc").
		Scan(&rows).Error
	if err != nil {
		return []repo.BuyerOrderRow{}, err
	}
	return rows, nil
}

// 販売者が持つ全店舗の注文（新しい順）
func (r *OrderGormRepository) ListBySellerID(ctx context.Context, sellerID int64) ([]repo.SellerOrderRow, error) {
	var rows []repo.SellerOrderRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select(buyerOrderColumns+", orders.user_id, users.name AS user_name").
		Joins("join restaurants on restaurants.id = orders.restaurant_id").
		Joins("left join users on users.id = orders.user_id").
		Where("restaurants.seller_id = ?", sellerID).
		Order("orders.created_at desc, orders.id desc").
		Scan(&rows).Error
	if err != nil {
		return []repo.SellerOrderRow{}, err
	}
	return rows, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return r.updateColumns(ctx, orderID, map[string]interface{}{"status": status})
}

func (r *OrderGormRepository) UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	return r.updateColumns(ctx, orderID, map[string]interface{}{"payment_status": status})
}

// updated_atも必ず進める
func (r *OrderGormRepository) updateColumns(ctx context.Context, orderID int64, cols map[string]interface{}) error {
	cols["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
