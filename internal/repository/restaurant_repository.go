package repository

import (
	"context"

	"foodorder/internal/domain/model"
)

type RestaurantRepository interface {
	Create(ctx context.Context, r *model.Restaurant) error
	FindByID(ctx context.Context, restaurantID int64) (model.Restaurant, error)
	List(ctx context.Context) ([]model.Restaurant, error)
}
