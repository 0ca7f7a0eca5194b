package repository

import (
	"context"

	"foodorder/internal/domain/model"

	"gorm.io/gorm"
)

type RestaurantGormRepository struct {
	db *gorm.DB
}

func NewRestaurantGormRepository(db *gorm.DB) *RestaurantGormRepository {
	return &RestaurantGormRepository{db: db}
}

func (r *RestaurantGormRepository) Create(ctx context.Context, rest *model.Restaurant) error {
	return translateError(r.db.WithContext(ctx).Create(rest).Error)
}

func (r *RestaurantGormRepository) FindByID(ctx context.Context, restaurantID int64) (model.Restaurant, error) {
	var rest model.Restaurant
	if err := r.db.WithContext(ctx).Where("id = ?", restaurantID).First(&rest).Error; err != nil {
		return model.Restaurant{}, translateError(err)
	}
	return rest, nil
}

func (r *RestaurantGormRepository) List(ctx context.Context) ([]model.Restaurant, error) {
	var items []model.Restaurant
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Restaurant{}, err
	}
	return items, nil
}
