package repository

import (
	"context"

	repo "foodorder/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users       repo.UserRepository
	restaurants repo.RestaurantRepository
	dishes      repo.DishRepository
	carts       repo.CartRepository
	cartItems   repo.CartItemRepository
	orders      repo.OrderRepository
	orderItems  repo.OrderItemRepository
	auditLogs   repo.AuditLogRepository
}

func (r *txReposGorm) Users() repo.UserRepository             { return r.users }
func (r *txReposGorm) Restaurants() repo.RestaurantRepository { return r.restaurants }
func (r *txReposGorm) Dishes() repo.DishRepository            { return r.dishes }
func (r *txReposGorm) Carts() repo.CartRepository             { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository     { return r.cartItems }
func (r *txReposGorm) Orders() repo.OrderRepository           { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository   { return r.orderItems }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository     { return r.auditLogs }

// NewTxRepos は渡されたDB（またはTx）で全repoを組み立てる
func NewTxRepos(db *gorm.DB) repo.TxRepos {
	return &txReposGorm{
		users:       NewUserGormRepository(db),
		restaurants: NewRestaurantGormRepository(db),
		dishes:      NewDishGormRepository(db),
		carts:       NewCartGormRepository(db),
		cartItems:   NewCartItemGormRepository(db),
		orders:      NewOrderGormRepository(db),
		orderItems:  NewOrderItemGormRepository(db),
		auditLogs:   NewAuditLogGormRepository(db),
	}
}

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnがエラーを返したらロールバック、nilならコミット
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		return fn(NewTxRepos(tx))
	})
}
