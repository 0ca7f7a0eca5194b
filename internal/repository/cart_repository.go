package repository

import (
	"context"

	"foodorder/internal/domain/model"
)

type CartRepository interface {
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
	// 行ロック付きで取得（Tx内で使う）
	FindByUserIDForUpdate(ctx context.Context, userID int64) (model.Cart, error)
	// 同時作成で負けた場合は勝った側のカートを返す
	CreateForUser(ctx context.Context, userID int64, restaurantID int64) (model.Cart, error)
	// 明細ごとカートを削除
	Delete(ctx context.Context, cartID int64) error
}
