package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 店舗は1人の販売者が所有する
type Restaurant struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID        int64           `gorm:"not null;index" json:"seller_id"`
	Name            string          `gorm:"type:varchar(150);not null" json:"name"`
	Cuisine         string          `gorm:"type:varchar(100)" json:"cuisine"`
	Description     string          `gorm:"type:text" json:"description"`
	Address         string          `gorm:"type:varchar(255)" json:"address"`
	Phone           string          `gorm:"type:varchar(30)" json:"phone"`
	Image           string          `gorm:"type:varchar(500)" json:"image"`
	Rating          float64         `gorm:"not null;default:0" json:"rating"`
	DeliveryTimeMin int             `gorm:"not null;default:0" json:"delivery_time_min"`
	DeliveryTimeMax int             `gorm:"not null;default:0" json:"delivery_time_max"`
	MinOrder        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"min_order"`
	DeliveryFee     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"delivery_fee"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
