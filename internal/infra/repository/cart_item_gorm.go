package repository

import (
	"context"
	"errors"
	"time"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// 料理名と現在の価格をJOINして返す
func (r *CartItemGormRepository) ListLinesByCartID(ctx context.Context, cartID int64) ([]repo.CartLine, error) {
	var lines []repo.CartLine

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.id, cart_items.cart_id, cart_items.dish_id, dishes.restaurant_id, dishes.name, dishes.price, cart_items.quantity").
		Joins("join dishes on dishes.id = cart_items.dish_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.id asc").
		Scan(&lines).Error
	if err != nil {
		return []repo.CartLine{}, err
	}
	return lines, nil
}

// (cart_id, dish_id)のユニーク制約でUPSERTして数量を加算
func (r *CartItemGormRepository) UpsertQuantity(ctx context.Context, cartID int64, dishID int64, addQty int64) error {
	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	item := model.CartItem{
		CartID:   cartID,
		DishID:   dishID,
		Quantity: addQty,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "dish_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + ?", addQty),
				"updated_at": time.Now(),
			}),
		}).
		Create(&item).Error
}

// 明細の数量を上書き
func (r *CartItemGormRepository) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	return r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", cartItemID).
		Update("quantity", qty).Error
}

// ユーザーのカートに属する明細だけ削除
func (r *CartItemGormRepository) DeleteOwnedByUser(ctx context.Context, cartItemID int64, userID int64) error {
	owned := r.db.WithContext(ctx).Model(&model.Cart{}).Select("id").Where("user_id = ?", userID)

	return r.db.WithContext(ctx).
		Where("id = ? AND cart_id IN (?)", cartItemID, owned).
		Delete(&model.CartItem{}).Error
}

// 料理削除時に全カートから外す
func (r *CartItemGormRepository) DeleteByDishID(ctx context.Context, dishID int64) error {
	return r.db.WithContext(ctx).
		Where("dish_id = ?", dishID).
		Delete(&model.CartItem{}).Error
}

// cartItemが、そのuserのカートに属しているかを判定
func (r *CartItemGormRepository) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Joins("join carts on carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", cartItemID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
