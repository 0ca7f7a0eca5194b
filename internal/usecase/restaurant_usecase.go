package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"

	"github.com/shopspring/decimal"
)

type RestaurantUsecase struct {
	restaurants repo.RestaurantRepository
	dishes      repo.DishRepository
}

// DI
func NewRestaurantUsecase(restaurants repo.RestaurantRepository, dishes repo.DishRepository) *RestaurantUsecase {
	return &RestaurantUsecase{restaurants: restaurants, dishes: dishes}
}

type CreateRestaurantInput struct {
	Name            string
	Cuisine         string
	Description     string
	Address         string
	Phone           string
	Image           string
	Rating          float64
	DeliveryTimeMin int
	DeliveryTimeMax int
	MinOrder        decimal.Decimal
	DeliveryFee     decimal.Decimal
}

type CreateRestaurantOutput struct {
	Message      string `json:"message"`
	RestaurantID int64  `json:"restaurant_id"`
}

// 販売者かどうかはmiddlewareで確認済み
func (u *RestaurantUsecase) Create(ctx context.Context, sellerID int64, in CreateRestaurantInput) (CreateRestaurantOutput, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return CreateRestaurantOutput{}, NewValidationError("Restaurant name is required")
	}
	if in.MinOrder.IsNegative() || in.DeliveryFee.IsNegative() {
		return CreateRestaurantOutput{}, NewValidationError("min_order and delivery_fee must not be negative")
	}
	if in.DeliveryTimeMin < 0 || in.DeliveryTimeMax < 0 || (in.DeliveryTimeMax > 0 && in.DeliveryTimeMin > in.DeliveryTimeMax) {
		return CreateRestaurantOutput{}, NewValidationError("invalid delivery time range")
	}

	r := model.Restaurant{
		SellerID:        sellerID,
		Name:            name,
		Cuisine:         in.Cuisine,
		Description:     in.Description,
		Address:         in.Address,
		Phone:           in.Phone,
		Image:           in.Image,
		Rating:          in.Rating,
		DeliveryTimeMin: in.DeliveryTimeMin,
		DeliveryTimeMax: in.DeliveryTimeMax,
		MinOrder:        in.MinOrder,
		DeliveryFee:     in.DeliveryFee,
	}
	if err := u.restaurants.Create(ctx, &r); err != nil {
		return CreateRestaurantOutput{}, NewServerError(fmt.Errorf("create restaurant: %w", err))
	}

	return CreateRestaurantOutput{Message: "Restaurant created", RestaurantID: r.ID}, nil
}

func (u *RestaurantUsecase) List(ctx context.Context) ([]model.Restaurant, error) {
	items, err := u.restaurants.List(ctx)
	if err != nil {
		return []model.Restaurant{}, NewServerError(fmt.Errorf("list restaurants: %w", err))
	}
	if items == nil {
		items = []model.Restaurant{}
	}
	return items, nil
}

func (u *RestaurantUsecase) Get(ctx context.Context, restaurantID int64) (model.Restaurant, error) {
	if restaurantID <= 0 {
		return model.Restaurant{}, NewValidationError("invalid restaurant id")
	}

	r, err := u.restaurants.FindByID(ctx, restaurantID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Restaurant{}, NewNotFoundError("Restaurant not found")
	}
	if err != nil {
		return model.Restaurant{}, NewServerError(fmt.Errorf("find restaurant: %w", err))
	}
	return r, nil
}

func (u *RestaurantUsecase) ListDishes(ctx context.Context, restaurantID int64) ([]model.Dish, error) {
	if _, err := u.Get(ctx, restaurantID); err != nil {
		return []model.Dish{}, err
	}

	items, err := u.dishes.ListByRestaurantID(ctx, restaurantID)
	if err != nil {
		return []model.Dish{}, NewServerError(fmt.Errorf("list dishes: %w", err))
	}
	if items == nil {
		items = []model.Dish{}
	}
	return items, nil
}
