package repository

import (
	"context"

	"foodorder/internal/domain/model"
)

type DishRepository interface {
	Create(ctx context.Context, d *model.Dish) error
	FindByID(ctx context.Context, dishID int64) (model.Dish, error)
	ListByRestaurantID(ctx context.Context, restaurantID int64) ([]model.Dish, error)
	Update(ctx context.Context, d model.Dish) error
	Delete(ctx context.Context, dishID int64) error
}
