package model

import "time"

type PriceRange string

const (
	PriceRangeBudget    PriceRange = "budget"
	PriceRangeModerate  PriceRange = "moderate"
	PriceRangeExpensive PriceRange = "expensive"
)

// レストラン。カタログは読み取り専用スナップショットとして扱う
type Restaurant struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CuisineType    string     `gorm:"type:varchar(100);not null" json:"cuisine_type"`
	PriceRange     PriceRange `gorm:"type:varchar(20);not null" json:"price_range"`
	Rating         int        `gorm:"not null" json:"rating"` // 0..5
	Address        string     `gorm:"type:text" json:"address"`
	Hours          string     `gorm:"type:varchar(255)" json:"hours"`
	MenuHighlights []string   `gorm:"serializer:json;type:text" json:"menu_highlights"`
	CreatedAt      time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// メニュー項目。priceは整数セント
type MenuItem struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantName string    `gorm:"type:varchar(255);not null;index" json:"restaurant_name"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	Price          int64     `gorm:"not null" json:"price"`
	Category       string    `gorm:"type:varchar(100)" json:"category"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
