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

// 料理の管理は店舗の持ち主だけ
type DishUsecase struct {
	tx     repo.TransactionManager
	dishes repo.DishRepository
}

func NewDishUsecase(tx repo.TransactionManager, dishes repo.DishRepository) *DishUsecase {
	return &DishUsecase{tx: tx, dishes: dishes}
}

type DishInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	// nilなら作成時はtrue、更新時は変更しない
	IsAvailable *bool
}

type CreateDishOutput struct {
	Message string `json:"message"`
	DishID  int64  `json:"dishId"`
}

func (u *DishUsecase) Create(ctx context.Context, sellerID int64, restaurantID int64, in DishInput) (CreateDishOutput, error) {
	if err := validateDishInput(in); err != nil {
		return CreateDishOutput{}, err
	}
	if restaurantID <= 0 {
		return CreateDishOutput{}, NewValidationError("invalid restaurant id")
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	var dishID int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := requireRestaurantOwner(ctx, r, sellerID, restaurantID); err != nil {
			return err
		}

		d := model.Dish{
			RestaurantID: restaurantID,
			Name:         strings.TrimSpace(in.Name),
			Description:  in.Description,
			Price:        in.Price,
			Image:        in.Image,
			IsAvailable:  available,
		}
		if err := r.Dishes().Create(ctx, &d); err != nil {
			return fmt.Errorf("create dish: %w", err)
		}
		dishID = d.ID
		return nil
	})
	if err != nil {
		return CreateDishOutput{}, asUsecaseError(err, "create dish")
	}

	return CreateDishOutput{Message: "Dish added", DishID: dishID}, nil
}

func (u *DishUsecase) Get(ctx context.Context, dishID int64) (model.Dish, error) {
	if dishID <= 0 {
		return model.Dish{}, NewValidationError("invalid dish id")
	}

	d, err := u.dishes.FindByID(ctx, dishID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Dish{}, NewNotFoundError("Dish not found")
	}
	if err != nil {
		return model.Dish{}, NewServerError(fmt.Errorf("find dish: %w", err))
	}
	return d, nil
}

// 価格を変えても過去の注文明細は変わらない
func (u *DishUsecase) Update(ctx context.Context, sellerID int64, dishID int64, in DishInput) (MessageOutput, error) {
	if err := validateDishInput(in); err != nil {
		return MessageOutput{}, err
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		d, err := findOwnedDish(ctx, r, sellerID, dishID)
		if err != nil {
			return err
		}

		d.Name = strings.TrimSpace(in.Name)
		d.Description = in.Description
		d.Price = in.Price
		d.Image = in.Image
		if in.IsAvailable != nil {
			d.IsAvailable = *in.IsAvailable
		}
		return r.Dishes().Update(ctx, d)
	})
	if err != nil {
		return MessageOutput{}, asUsecaseError(err, "update dish")
	}
	return MessageOutput{Message: "Dish updated"}, nil
}

// カートに入っている分も一緒に消す
func (u *DishUsecase) Delete(ctx context.Context, sellerID int64, dishID int64) (MessageOutput, error) {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := findOwnedDish(ctx, r, sellerID, dishID); err != nil {
			return err
		}
		if err := r.CartItems().DeleteByDishID(ctx, dishID); err != nil {
			return fmt.Errorf("delete cart items: %w", err)
		}
		return r.Dishes().Delete(ctx, dishID)
	})
	if err != nil {
		return MessageOutput{}, asUsecaseError(err, "delete dish")
	}
	return MessageOutput{Message: "Dish deleted"}, nil
}

func validateDishInput(in DishInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewValidationError("Dish name is required")
	}
	if in.Price.IsNegative() {
		return NewValidationError("price must be >= 0")
	}
	return nil
}

func requireRestaurantOwner(ctx context.Context, r repo.TxRepos, sellerID int64, restaurantID int64) error {
	rest, err := r.Restaurants().FindByID(ctx, restaurantID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("Restaurant not found")
	}
	if err != nil {
		return fmt.Errorf("find restaurant: %w", err)
	}
	if rest.SellerID != sellerID {
		return NewForbiddenError("Not allowed")
	}
	return nil
}

func findOwnedDish(ctx context.Context, r repo.TxRepos, sellerID int64, dishID int64) (model.Dish, error) {
	if dishID <= 0 {
		return model.Dish{}, NewValidationError("invalid dish id")
	}

	d, err := r.Dishes().FindByID(ctx, dishID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Dish{}, NewNotFoundError("Dish not found")
	}
	if err != nil {
		return model.Dish{}, fmt.Errorf("find dish: %w", err)
	}
	if err := requireRestaurantOwner(ctx, r, sellerID, d.RestaurantID); err != nil {
		return model.Dish{}, err
	}
	return d, nil
}
