package usecase

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CheckoutUsecase はカートをOrderSubmissionに変換して注文を確定する。
// 1注文につきレストランは1つだけ。違反したら409で拒否し、カートには触れない。
// 確定に失敗した場合もカートを残す（同じ内容でリトライできる）
type CheckoutUsecase struct {
	cart      *CartUsecase
	orderRepo repo.OrderRepository

	// 同じセッションの二重送信防止
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// DI
func NewCheckoutUsecase(cart *CartUsecase, orderRepo repo.OrderRepository) *CheckoutUsecase {
	return &CheckoutUsecase{
		cart:      cart,
		orderRepo: orderRepo,
		inFlight:  make(map[string]struct{}),
	}
}

type CheckoutInput struct {
	DeliveryAddress string
	Phone           string
	Notes           string
}

type CheckoutOutput struct {
	OrderID int64 `json:"order_id"`
}

func (u *CheckoutUsecase) Checkout(ctx context.Context, userID int64, sessionID string, in CheckoutInput) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "delivery address required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "phone required")
	}

	//送信中のセッションからの二重送信は弾く
	if !u.begin(sessionID) {
		return CheckoutOutput{}, NewHTTPError(http.StatusConflict, "submission in progress")
	}
	defer u.end(sessionID)

	state, err := u.cart.Snapshot(ctx, sessionID)
	if err != nil {
		return CheckoutOutput{}, err
	}
	if len(state.Lines) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	sub, err := BuildSubmission(state, in.DeliveryAddress, in.Phone, in.Notes)
	if err != nil {
		return CheckoutOutput{}, err
	}

	orderID, err := u.orderRepo.Place(ctx, userID, sub)
	if err != nil {
		//失敗してもカートはそのまま。リトライは同じ内容で可能
		return CheckoutOutput{}, NewHTTPError(http.StatusBadGateway, "order submission failed")
	}

	//確定できてからカートを消す
	if _, err := u.cart.ClearCart(ctx, sessionID); err != nil {
		return CheckoutOutput{}, err
	}

	return CheckoutOutput{OrderID: orderID}, nil
}

// カートからOrderSubmissionを組み立てる。
// 全明細が同一レストランでなければ409。明細の順序は追加順のまま
func BuildSubmission(state model.CartState, deliveryAddress string, phone string, notes string) (model.OrderSubmission, error) {
	restaurantName := state.Lines[0].RestaurantName
	for _, l := range state.Lines {
		if l.RestaurantName != restaurantName {
			return model.OrderSubmission{}, NewHTTPError(http.StatusConflict, "multi restaurant order")
		}
	}

	items := make([]model.SubmissionItem, 0, len(state.Lines))
	for _, l := range state.Lines {
		items = append(items, model.SubmissionItem{
			Item:     l.Item,
			Quantity: l.Quantity,
		})
	}

	return model.OrderSubmission{
		RestaurantName:  restaurantName,
		Items:           items,
		DeliveryAddress: deliveryAddress,
		ContactInfo:     BuildContactInfo(phone, notes),
	}, nil
}

// 電話番号と配達メモを1つの連絡先文字列にまとめる。
// メモが空ならセパレータごと省く
func BuildContactInfo(phone string, notes string) string {
	if strings.TrimSpace(notes) == "" {
		return phone
	}
	return phone + " | Notes: " + notes
}

func (u *CheckoutUsecase) begin(sessionID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.inFlight[sessionID]; ok {
		return false
	}
	u.inFlight[sessionID] = struct{}{}
	return true
}

func (u *CheckoutUsecase) end(sessionID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.inFlight, sessionID)
}
