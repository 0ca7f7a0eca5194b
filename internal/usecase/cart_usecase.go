package usecase

import (
	"context"
	"errors"
	"fmt"

	"foodorder/internal/domain/model"
	repo "foodorder/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// カートの中身は常に1店舗分だけ。
type CartUsecase struct {
	tx        repo.TransactionManager
	carts     repo.CartRepository
	cartItems repo.CartItemRepository
}

func NewCartUsecase(
	tx repo.TransactionManager,
	carts repo.CartRepository,
	cartItems repo.CartItemRepository,
) *CartUsecase {
	return &CartUsecase{
		tx:        tx,
		carts:     carts,
		cartItems: cartItems,
	}
}

type CartItemView struct {
	ID       int64           `json:"id"`
	DishID   int64           `json:"dish_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// カートが無いときは cart_id: null, items: [], total: 0
type CartView struct {
	CartID       *int64          `json:"cart_id"`
	RestaurantID *int64          `json:"restaurant_id"`
	Items        []CartItemView  `json:"items"`
	Total        decimal.Decimal `json:"total"`
}

type AddToCartInput struct {
	RestaurantID int64
	DishID       int64
	Quantity     int64
}

type AddToCartOutput struct {
	Message string `json:"message"`
	CartID  int64  `json:"cart_id"`
}

// AddItem はカートに追加（同一料理は数量加算、別店舗ならカートを作り直す）。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddToCartInput) (AddToCartOutput, error) {
	if in.RestaurantID <= 0 || in.DishID <= 0 {
		return AddToCartOutput{}, NewValidationError("restaurant_id and dish_id are required")
	}
	if in.Quantity <= 0 {
		return AddToCartOutput{}, NewValidationError("Quantity must be greater than 0")
	}

	var cartID int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//料理チェック（店舗一致・販売中のみ）
		dish, err := r.Dishes().FindByID(ctx, in.DishID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("Dish not found")
		}
		if err != nil {
			return err
		}
		if dish.RestaurantID != in.RestaurantID {
			return NewValidationError("Dish does not belong to this restaurant")
		}
		if !dish.IsAvailable {
			return NewValidationError("Dish is not available")
		}

		cart, err := resolveCart(ctx, r, userID, in.RestaurantID)
		if err != nil {
			return err
		}

		if err := r.CartItems().UpsertQuantity(ctx, cart.ID, in.DishID, in.Quantity); err != nil {
			return fmt.Errorf("upsert cart item: %w", err)
		}

		cartID = cart.ID
		return nil
	})
	if err != nil {
		return AddToCartOutput{}, asUsecaseError(err, "add to cart")
	}

	return AddToCartOutput{Message: "Added to cart", CartID: cartID}, nil
}

// ユーザーのカートをrestaurantIDのカートにそろえる
// 別店舗のカートは明細ごと捨てる
func resolveCart(ctx context.Context, r repo.TxRepos, userID int64, restaurantID int64) (model.Cart, error) {
	for attempt := 0; attempt < 2; attempt++ {
		cart, err := r.Carts().FindByUserIDForUpdate(ctx, userID)
		switch {
		case err == nil && cart.RestaurantID == restaurantID:
			return cart, nil
		case err == nil:
			if err := r.Carts().Delete(ctx, cart.ID); err != nil && !errors.Is(err, repo.ErrNotFound) {
				return model.Cart{}, fmt.Errorf("delete cart: %w", err)
			}
		case !errors.Is(err, repo.ErrNotFound):
			return model.Cart{}, fmt.Errorf("find cart: %w", err)
		}

		created, err := r.Carts().CreateForUser(ctx, userID, restaurantID)
		if err != nil {
			return model.Cart{}, fmt.Errorf("create cart: %w", err)
		}
		if created.RestaurantID == restaurantID {
			return created, nil
		}
		//同時リクエストが別店舗のカートを作ったのでやり直す
	}
	return model.Cart{}, errors.New("cart changed concurrently")
}

// GetCart はカート取得（無ければ空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartView, error) {
	cart, err := u.carts.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{Items: []CartItemView{}, Total: decimal.Zero}, nil
	}
	if err != nil {
		return CartView{}, NewServerError(fmt.Errorf("find cart: %w", err))
	}

	lines, err := u.cartItems.ListLinesByCartID(ctx, cart.ID)
	if err != nil {
		return CartView{}, NewServerError(fmt.Errorf("list cart items: %w", err))
	}

	items := make([]CartItemView, 0, len(lines))
	total := decimal.Zero
	for _, l := range lines {
		subtotal := l.Price.Mul(decimal.NewFromInt(l.Quantity))
		items = append(items, CartItemView{
			ID:       l.ID,
			DishID:   l.DishID,
			Name:     l.Name,
			Price:    l.Price,
			Quantity: l.Quantity,
			Subtotal: subtotal,
		})
		total = total.Add(subtotal)
	}

	return CartView{
		CartID:       &cart.ID,
		RestaurantID: &cart.RestaurantID,
		Items:        items,
		Total:        total,
	}, nil
}

// 数量変更（自分のカートの明細のみ）。
func (u *CartUsecase) UpdateItemQuantity(ctx context.Context, userID int64, cartItemID int64, quantity int64) (MessageOutput, error) {
	if cartItemID <= 0 {
		return MessageOutput{}, NewValidationError("itemId is required")
	}
	if quantity <= 0 {
		return MessageOutput{}, NewValidationError("Quantity must be greater than 0")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		owned, err := r.CartItems().IsOwnedByUser(ctx, cartItemID, userID)
		if err != nil {
			return err
		}
		if !owned {
			return NewNotFoundError("Cart item not found")
		}
		return r.CartItems().UpdateQuantity(ctx, cartItemID, quantity)
	})
	if err != nil {
		return MessageOutput{}, asUsecaseError(err, "update cart item")
	}

	return MessageOutput{Message: "Cart updated"}, nil
}

// 明細削除。存在しない・他人の明細でも成功扱い
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) (MessageOutput, error) {
	if cartItemID <= 0 {
		return MessageOutput{}, NewValidationError("itemId is required")
	}

	if err := u.cartItems.DeleteOwnedByUser(ctx, cartItemID, userID); err != nil {
		return MessageOutput{}, NewServerError(fmt.Errorf("delete cart item: %w", err))
	}
	return MessageOutput{Message: "Item removed from cart"}, nil
}
