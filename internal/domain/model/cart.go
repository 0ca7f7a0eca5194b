package model

import "time"

// 1ユーザーにつきカートは1つ（user_idにユニーク制約）
// restaurant_idは作成時に固定
type Cart struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	RestaurantID int64     `gorm:"not null;index" json:"restaurant_id"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
