package repository

import "context"

// セッション単位のカート永続化（KVストア）。
// Payloadは不透明な直列化テキストとして扱う。
// 毎回の変更後にSave、初期化時にLoadを呼ぶ契約
type CartSessionRepository interface {
	//保存済みカートを読む。無ければErrNotFound
	Load(ctx context.Context, sessionID string) (string, error)

	//カートを上書き保存する
	Save(ctx context.Context, sessionID string, payload string) error

	//保存済みカートを消す。無くてもエラーにしない
	Delete(ctx context.Context, sessionID string) error
}
