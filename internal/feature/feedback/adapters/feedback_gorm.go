// Package adapters stores feedback with GORM.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"news_backend/internal/feature/feedback/domain/entity"
	"news_backend/internal/feature/feedback/usecase"
)

type feedbackGorm struct {
	db *gorm.DB
}

var _ usecase.FeedbackRepository = (*feedbackGorm)(nil)

// NewFeedbackGorm returns a FeedbackRepository backed by db.
func NewFeedbackGorm(db *gorm.DB) *feedbackGorm {
	return &feedbackGorm{db: db}
}

// Create inserts f; ID and CreatedAt are filled by the database.
func (r *feedbackGorm) Create(ctx context.Context, f *entity.Feedback) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return err
	}
	f.CreatedAt = f.CreatedAt.UTC()
	return nil
}
