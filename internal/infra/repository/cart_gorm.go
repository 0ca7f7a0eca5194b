package repository

import (
	"context"
	"errors"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカートを取得
func (r *CartGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return model.Cart{}, translateError(err)
	}
	return cart, nil
}

// SELECT ... FOR UPDATE で取得（sqliteではロック句は付かない）
func (r *CartGormRepository) FindByUserIDForUpdate(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return model.Cart{}, translateError(err)
	}
	return cart, nil
}

// カートを作る。user_idのユニーク制約で負けたら勝った側を読み直す
func (r *CartGormRepository) CreateForUser(ctx context.Context, userID int64, restaurantID int64) (model.Cart, error) {
	cart := model.Cart{
		UserID:       userID,
		RestaurantID: restaurantID,
	}

	//Tx内ならSAVEPOINTになるので失敗しても外側のTxは生きたまま
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&cart).Error
	})
	if err == nil {
		return cart, nil
	}
	if !isUniqueViolation(err) {
		return model.Cart{}, err
	}

	existing, findErr := r.FindByUserIDForUpdate(ctx, userID)
	if findErr != nil {
		if errors.Is(findErr, repo.ErrNotFound) {
			return model.Cart{}, err
		}
		return model.Cart{}, findErr
	}
	return existing, nil
}

// 明細を全削除してからカートを削除
func (r *CartGormRepository) Delete(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", cartID).Delete(&model.Cart{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
