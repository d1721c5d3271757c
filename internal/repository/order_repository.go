package repository

import (
	"context"

	"app/internal/domain/model"
)

// 注文の保存・取得の窓口。
// Placeが注文確定の外部コラボレータ。失敗したらカートはそのまま残す約束
type OrderRepository interface {
	//注文を確定して注文IDを返す。注文＋明細をまとめて保存する
	Place(ctx context.Context, userID int64, sub model.OrderSubmission) (int64, error)

	//注文IDから1件取得
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//注文の明細一覧
	ListItemsByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	//ユーザーの注文履歴（新しい順）
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)

	//レストラン別の注文一覧（管理者）
	ListByRestaurant(ctx context.Context, restaurantName string) ([]model.Order, error)

	//状態の更新
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
