package repository_test

import (
	"context"
	"testing"

	"foodorder/internal/config"
	"foodorder/internal/domain/model"
	"foodorder/internal/infra/db"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// テストごとに新しいメモリDB
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Connect(config.Config{DBDriver: "sqlite", SQLitePath: "file::memory:", GoEnv: "test"}, zerolog.Nop())
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// メモリDBは接続ごとに別物なので1本に絞る
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

type seed struct {
	seller     model.User
	buyer      model.User
	other      model.User
	restaurant model.Restaurant
	pizza      model.Dish
	salad      model.Dish
	// 別店舗
	sushi model.Dish
}

// 販売者1人・購入者2人・店舗2つ・料理3品
func seedData(t *testing.T, gdb *gorm.DB) seed {
	t.Helper()
	var s seed

	s.seller = model.User{Name: "Seller", Email: "seller@example.com", PasswordHash: "x", IsSeller: true}
	s.buyer = model.User{Name: "Buyer", Email: "buyer@example.com", PasswordHash: "x"}
	s.other = model.User{Name: "Other", Email: "other@example.com", PasswordHash: "x"}
	require.NoError(t, gdb.Create(&s.seller).Error)
	require.NoError(t, gdb.Create(&s.buyer).Error)
	require.NoError(t, gdb.Create(&s.other).Error)

	s.restaurant = model.Restaurant{SellerID: s.seller.ID, Name: "Pizza Place"}
	require.NoError(t, gdb.Create(&s.restaurant).Error)
	second := model.Restaurant{SellerID: s.seller.ID, Name: "Sushi Bar"}
	require.NoError(t, gdb.Create(&second).Error)

	s.pizza = model.Dish{RestaurantID: s.restaurant.ID, Name: "Pizza", Price: decimal.NewFromInt(10), IsAvailable: true}
	s.salad = model.Dish{RestaurantID: s.restaurant.ID, Name: "Salad", Price: decimal.NewFromInt(8), IsAvailable: true}
	s.sushi = model.Dish{RestaurantID: second.ID, Name: "Sushi", Price: decimal.NewFromInt(15), IsAvailable: true}
	require.NoError(t, gdb.Create(&s.pizza).Error)
	require.NoError(t, gdb.Create(&s.salad).Error)
	require.NoError(t, gdb.Create(&s.sushi).Error)

	return s
}

func countRows(t *testing.T, gdb *gorm.DB, m interface{}, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := gdb.WithContext(context.Background()).Model(m)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
