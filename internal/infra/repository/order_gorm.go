package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// 注文確定。注文＋明細を1トランザクションで保存する。
// 合計は送信内容の明細から計算する
func (r *OrderGormRepository) Place(ctx context.Context, userID int64, sub model.OrderSubmission) (int64, error) {
	var orderID int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total int64
		for _, it := range sub.Items {
			total += it.Item.Price * it.Quantity
		}

		order := model.Order{
			UserID:          userID,
			RestaurantName:  sub.RestaurantName,
			Status:          model.OrderStatusPending,
			TotalAmount:     total,
			DeliveryAddress: sub.DeliveryAddress,
			ContactInfo:     sub.ContactInfo,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		//明細は送信順のまま保存する
		items := make([]model.OrderItem, 0, len(sub.Items))
		for _, it := range sub.Items {
			items = append(items, model.OrderItem{
				OrderID:     order.ID,
				Name:        it.Item.Name,
				Description: it.Item.Description,
				Price:       it.Item.Price,
				Category:    it.Item.Category,
				Quantity:    it.Quantity,
			})
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		orderID = order.ID
		return nil
	})

	if err != nil {
		return 0, err
	}
	return orderID, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (r *OrderGormRepository) ListItemsByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// 履歴は新しい順
func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderGormRepository) ListByRestaurant(ctx context.Context, restaurantName string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("restaurant_name = ?", restaurantName).
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
