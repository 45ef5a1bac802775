package repo

import (
	"context"

	"gorm.io/gorm"

	"go-movements-api/internal/domain"
)

type MovementRepo struct{ db *gorm.DB }

func NewMovementRepo(db *gorm.DB) *MovementRepo { return &MovementRepo{db: db} }

// Create userId 指向不存在用户时外键约束报错，映射为 ErrFKViolation
func (r *MovementRepo) Create(ctx context.Context, m *domain.Movement) error {
	return classify(r.db.WithContext(ctx).Create(m).Error)
}

func (r *MovementRepo) List(ctx context.Context) ([]domain.Movement, error) {
	var ms []domain.Movement
	if err := r.db.WithContext(ctx).Order("date desc").Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

func (r *MovementRepo) ListByUser(ctx context.Context, userID string) ([]domain.Movement, error) {
	var ms []domain.Movement
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date desc").Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}
