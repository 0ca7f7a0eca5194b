package repository

import (
	"context"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"

	"gorm.io/gorm"
)

type DishGormRepository struct {
	db *gorm.DB
}

func NewDishGormRepository(db *gorm.DB) *DishGormRepository {
	return &DishGormRepository{db: db}
}

func (r *DishGormRepository) Create(ctx context.Context, d *model.Dish) error {
	return translateError(r.db.WithContext(ctx).Create(d).Error)
}

func (r *DishGormRepository) FindByID(ctx context.Context, dishID int64) (model.Dish, error) {
	var d model.Dish
	if err := r.db.WithContext(ctx).Where("id = ?", dishID).First(&d).Error; err != nil {
		return model.Dish{}, translateError(err)
	}
	return d, nil
}

func (r *DishGormRepository) ListByRestaurantID(ctx context.Context, restaurantID int64) ([]model.Dish, error) {
	var items []model.Dish
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Dish{}, err
	}
	return items, nil
}

// ゼロ値も更新したいのでmapで渡す
func (r *DishGormRepository) Update(ctx context.Context, d model.Dish) error {
	return r.db.WithContext(ctx).
		Model(&model.Dish{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"name":         d.Name,
			"description":  d.Description,
			"price":        d.Price,
			"image":        d.Image,
			"is_available": d.IsAvailable,
		}).Error
}

func (r *DishGormRepository) Delete(ctx context.Context, dishID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Dish{}, dishID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
