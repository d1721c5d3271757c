package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type RestaurantGormRepository struct {
	db *gorm.DB
}

// DI
func NewRestaurantGormRepository(db *gorm.DB) *RestaurantGormRepository {
	return &RestaurantGormRepository{db: db}
}

// カタログ全件。登録順（id昇順）で返す
func (r *RestaurantGormRepository) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	err := r.db.WithContext(ctx).
		Order("id asc").
		Find(&restaurants).Error
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *RestaurantGormRepository) FindByName(ctx context.Context, name string) (model.Restaurant, error) {
	var restaurant model.Restaurant
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&restaurant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Restaurant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Restaurant{}, err
	}
	return restaurant, nil
}

// メニュー一覧。追加順で返す
func (r *RestaurantGormRepository) ListMenuItems(ctx context.Context, restaurantName string) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).
		Where("restaurant_name = ?", restaurantName).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RestaurantGormRepository) Create(ctx context.Context, restaurant model.Restaurant) (model.Restaurant, error) {
	if err := r.db.WithContext(ctx).Create(&restaurant).Error; err != nil {
		return model.Restaurant{}, err
	}
	return restaurant, nil
}

func (r *RestaurantGormRepository) AddMenuItem(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.MenuItem{}, err
	}
	return item, nil
}
