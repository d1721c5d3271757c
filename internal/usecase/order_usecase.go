package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type OrderUsecase struct {
	orderRepo repo.OrderRepository
}

// DI
func NewOrderUsecase(orderRepo repo.OrderRepository) *OrderUsecase {
	return &OrderUsecase{orderRepo: orderRepo}
}

type OrderItemOutput struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
	Quantity int64  `json:"quantity"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	RestaurantName  string            `json:"restaurant_name"`
	Status          string            `json:"status"`
	TotalAmount     int64             `json:"total_amount"`
	DeliveryAddress string            `json:"delivery_address"`
	ContactInfo     string            `json:"contact_info"`
	CreatedAt       time.Time         `json:"created_at"`
	Items           []OrderItemOutput `json:"items"`
}

// 注文履歴（本人のみ、新しい順）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderRepo.ListItemsByOrderID(ctx, o.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, toOrderOutput(o, items))
	}
	return outs, nil
}

// 注文詳細。他人の注文は「存在しない扱い」にする
func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	o, err := u.findOwned(ctx, userID, orderID)
	if err != nil {
		return OrderOutput{}, err
	}

	items, err := u.orderRepo.ListItemsByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toOrderOutput(o, items), nil
}

// 注文状態の問い合わせ
func (u *OrderUsecase) GetMyOrderStatus(ctx context.Context, userID int64, orderID int64) (model.OrderStatus, error) {
	o, err := u.findOwned(ctx, userID, orderID)
	if err != nil {
		return "", err
	}
	return o.Status, nil
}

// レストラン別の注文一覧（管理者）
func (u *OrderUsecase) ListByRestaurant(ctx context.Context, restaurantName string) ([]OrderOutput, error) {
	if restaurantName == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid name")
	}

	orders, err := u.orderRepo.ListByRestaurant(ctx, restaurantName)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderRepo.ListItemsByOrderID(ctx, o.ID)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, toOrderOutput(o, items))
	}
	return outs, nil
}

// 前進のみ許す遷移表。cancelledは未確定の間だけ入れる
var allowedTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:        {model.OrderStatusConfirmed, model.OrderStatusCancelled},
	model.OrderStatusConfirmed:      {model.OrderStatusPreparing, model.OrderStatusCancelled},
	model.OrderStatusPreparing:      {model.OrderStatusOutForDelivery, model.OrderStatusCancelled},
	model.OrderStatusOutForDelivery: {model.OrderStatusDelivered, model.OrderStatusCancelled},
	//delivered / cancelled は終端
}

// 状態更新（管理者）。許可されない遷移は409
func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderID int64, next model.OrderStatus) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	switch next {
	case model.OrderStatusPending, model.OrderStatusConfirmed, model.OrderStatusPreparing,
		model.OrderStatusOutForDelivery, model.OrderStatusDelivered, model.OrderStatusCancelled:
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !transitionAllowed(o.Status, next) {
		return OrderOutput{}, NewHTTPError(http.StatusConflict, "invalid transition")
	}

	if err := u.orderRepo.UpdateStatus(ctx, orderID, next); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	o.Status = next
	items, err := u.orderRepo.ListItemsByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toOrderOutput(o, items), nil
}

func (u *OrderUsecase) findOwned(ctx context.Context, userID int64, orderID int64) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.UserID != userID {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return o, nil
}

func transitionAllowed(from model.OrderStatus, to model.OrderStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			Name:     it.Name,
			Price:    it.Price,
			Category: it.Category,
			Quantity: it.Quantity,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		RestaurantName:  o.RestaurantName,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		DeliveryAddress: o.DeliveryAddress,
		ContactInfo:     o.ContactInfo,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}
