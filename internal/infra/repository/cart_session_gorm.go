package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sessionStorage相当のKVをDBの1行で持つ
type CartSessionGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartSessionGormRepository(db *gorm.DB) *CartSessionGormRepository {
	return &CartSessionGormRepository{db: db}
}

func (r *CartSessionGormRepository) Load(ctx context.Context, sessionID string) (string, error) {
	var row model.CartSession
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return row.Payload, nil
}

// Upsertで上書き保存
func (r *CartSessionGormRepository) Save(ctx context.Context, sessionID string, payload string) error {
	row := model.CartSession{
		SessionID: sessionID,
		Payload:   payload,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}

// 無くてもエラーにしない
func (r *CartSessionGormRepository) Delete(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&model.CartSession{}).Error
}
