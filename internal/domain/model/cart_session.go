package model

import "time"

// ブラウジングセッションごとのカート保存行。
// Payloadは直列化したCartState（sessionStorage相当のKV）
type CartSession struct {
	SessionID string    `gorm:"type:varchar(64);primaryKey"`
	Payload   string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}
