package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// レストランカタログの窓口。
// コアからは結果整合の読み取り専用スナップショットとして扱う
type RestaurantRepository interface {
	//カタログ全件。登録順を保持して返す
	ListAll(ctx context.Context) ([]model.Restaurant, error)

	//名前で1件取得
	FindByName(ctx context.Context, name string) (model.Restaurant, error)

	//レストランのメニュー一覧
	ListMenuItems(ctx context.Context, restaurantName string) ([]model.MenuItem, error)

	//レストラン登録（管理者）
	Create(ctx context.Context, r model.Restaurant) (model.Restaurant, error)

	//メニュー追加（管理者）
	AddMenuItem(ctx context.Context, item model.MenuItem) (model.MenuItem, error)
}
