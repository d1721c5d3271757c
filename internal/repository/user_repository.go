package repository

import (
	"context"

	"app/internal/domain/model"
)

// ユーザーの保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを1件取得する
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// プロフィール・最終ログインなどの更新
	Update(ctx context.Context, user *model.User) error
}
