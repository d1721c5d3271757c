package model

import "time"

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "outForDelivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type Order struct {
	ID              int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64       `gorm:"not null;index" json:"user_id"`
	RestaurantName  string      `gorm:"type:varchar(255);not null;index" json:"restaurant_name"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount     int64       `gorm:"not null" json:"total_amount"`
	DeliveryAddress string      `gorm:"type:text;not null" json:"delivery_address"`
	ContactInfo     string      `gorm:"type:text;not null" json:"contact_info"`
	CreatedAt       time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 注文の明細。注文時点のスナップショットを必ず保存
type OrderItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64     `gorm:"not null;index" json:"order_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int64     `gorm:"not null" json:"price"`
	Category    string    `gorm:"type:varchar(100)" json:"category"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// 注文の送信内容。チェックアウトごとに1回だけ組み立て、以後変更しない
type OrderSubmission struct {
	RestaurantName  string
	Items           []SubmissionItem
	DeliveryAddress string
	ContactInfo     string
}

type SubmissionItem struct {
	Item     MenuItemSnapshot
	Quantity int64
}
