package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CartUsecase はセッション単位のカート状態を所有する。
// すべての変更は load → 変換 → save の順で行い、
// saveが完了してから呼び出し元に返す（リロード直後の食い違いを防ぐ）
type CartUsecase struct {
	sessionRepo repo.CartSessionRepository
}

// DI
func NewCartUsecase(sessionRepo repo.CartSessionRepository) *CartUsecase {
	return &CartUsecase{sessionRepo: sessionRepo}
}

// カート表示用のレスポンス。合計は毎回明細から再計算する
type CartResponse struct {
	Lines       []model.CartLine `json:"lines"`
	TotalItems  int64            `json:"total_items"`
	TotalAmount int64            `json:"total_amount"`
}

type AddItemInput struct {
	RestaurantName string
	Item           model.MenuItemSnapshot
}

type UpdateQuantityInput struct {
	RestaurantName string
	ItemName       string
	Quantity       int64
}

// カート取得。保存が無ければ空のカートを返す
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	state, err := u.load(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}
	return toCartResponse(state), nil
}

// 追加。同一キー（レストラン名＋品名）は数量+1、無ければ末尾に数量1で追加
func (u *CartUsecase) AddItem(ctx context.Context, sessionID string, in AddItemInput) (CartResponse, error) {
	if strings.TrimSpace(in.RestaurantName) == "" || strings.TrimSpace(in.Item.Name) == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item")
	}

	state, err := u.load(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	found := false
	for i := range state.Lines {
		if state.Lines[i].RestaurantName == in.RestaurantName && state.Lines[i].Item.Name == in.Item.Name {
			state.Lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		state.Lines = append(state.Lines, model.CartLine{
			RestaurantName: in.RestaurantName,
			Item:           in.Item,
			Quantity:       1,
		})
	}

	if err := u.save(ctx, sessionID, state); err != nil {
		return CartResponse{}, err
	}
	return toCartResponse(state), nil
}

// 削除。該当明細が無ければ何もしない
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, restaurantName string, itemName string) (CartResponse, error) {
	state, err := u.load(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	state.Lines = removeLine(state.Lines, restaurantName, itemName)

	if err := u.save(ctx, sessionID, state); err != nil {
		return CartResponse{}, err
	}
	return toCartResponse(state), nil
}

// 数量変更（上書き）。0以下は削除として扱う。該当明細が無ければ何もしない
func (u *CartUsecase) UpdateQuantity(ctx context.Context, sessionID string, in UpdateQuantityInput) (CartResponse, error) {
	if in.Quantity <= 0 {
		return u.RemoveItem(ctx, sessionID, in.RestaurantName, in.ItemName)
	}

	state, err := u.load(ctx, sessionID)
	if err != nil {
		return CartResponse{}, err
	}

	for i := range state.Lines {
		if state.Lines[i].RestaurantName == in.RestaurantName && state.Lines[i].Item.Name == in.ItemName {
			state.Lines[i].Quantity = in.Quantity
			break
		}
	}

	if err := u.save(ctx, sessionID, state); err != nil {
		return CartResponse{}, err
	}
	return toCartResponse(state), nil
}

// 全消去。保存済みエントリも消す
func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if err := u.sessionRepo.Delete(ctx, sessionID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "session store error")
	}
	return toCartResponse(model.CartState{}), nil
}

// チェックアウト用に現在の明細を読む
func (u *CartUsecase) Snapshot(ctx context.Context, sessionID string) (model.CartState, error) {
	return u.load(ctx, sessionID)
}

func (u *CartUsecase) load(ctx context.Context, sessionID string) (model.CartState, error) {
	if sessionID == "" {
		return model.CartState{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}

	payload, err := u.sessionRepo.Load(ctx, sessionID)
	if err == repo.ErrNotFound {
		//保存が無い＝空のカート
		return model.CartState{}, nil
	}
	if err != nil {
		return model.CartState{}, NewHTTPError(http.StatusInternalServerError, "session store error")
	}

	var state model.CartState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		//壊れた保存データは空のカートから作り直す
		return model.CartState{}, nil
	}
	return state, nil
}

func (u *CartUsecase) save(ctx context.Context, sessionID string, state model.CartState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "serialize error")
	}
	if err := u.sessionRepo.Save(ctx, sessionID, string(payload)); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "session store error")
	}
	return nil
}

func removeLine(lines []model.CartLine, restaurantName string, itemName string) []model.CartLine {
	result := make([]model.CartLine, 0, len(lines))
	for _, l := range lines {
		if l.RestaurantName == restaurantName && l.Item.Name == itemName {
			continue
		}
		result = append(result, l)
	}
	return result
}

func toCartResponse(state model.CartState) CartResponse {
	lines := state.Lines
	if lines == nil {
		lines = []model.CartLine{}
	}
	return CartResponse{
		Lines:       lines,
		TotalItems:  state.TotalItems(),
		TotalAmount: state.TotalAmount(),
	}
}
