package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"news_backend/internal/feature/auth/domain/entity"
	"news_backend/internal/feature/auth/usecase"
)

// sessionGorm is the SQL implementation of usecase.SessionRepository.
type sessionGorm struct {
	db  *gorm.DB
	now func() time.Time
}

var _ usecase.SessionRepository = (*sessionGorm)(nil)

// NewSessionGorm creates a session store on db.
func NewSessionGorm(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// active restricts a query to sessions that are neither revoked nor expired.
func (r *sessionGorm) active(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, r.now())
}

// Create persists a new session.
func (r *sessionGorm) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Omit("User").Create(sessionModelFromEntity(session)).Error
}

// FindByID returns the session whatever its state; callers check validity.
func (r *sessionGorm) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var model SessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// FindByUserID lists the active sessions of a user, oldest first.
func (r *sessionGorm) FindByUserID(ctx context.Context, userID uint) ([]*entity.Session, error) {
	var models []SessionModel
	if err := r.active(ctx, userID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	sessions := make([]*entity.Session, len(models))
	for i := range models {
		sessions[i] = models[i].ToEntity()
	}
	return sessions, nil
}

// Revoke stamps RevokedAt on a session.
func (r *sessionGorm) Revoke(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", r.now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&SessionModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return usecase.ErrSessionNotFound
		}
	}
	return nil
}

// RevokeAllByUserID revokes every open session of a user.
func (r *sessionGorm) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", r.now()).Error
}

// DeleteExpired removes sessions whose expiry has passed.
func (r *sessionGorm) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", r.now()).
		Delete(&SessionModel{})
	return result.RowsAffected, result.Error
}

// CountByUserID counts the active sessions of a user.
func (r *sessionGorm) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.active(ctx, userID).Count(&count).Error
	return count, err
}

// DeleteOldestByUserID deletes the user's oldest active session, if any.
func (r *sessionGorm) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	var oldest SessionModel
	if err := r.active(ctx, userID).Order("created_at ASC").First(&oldest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return r.db.WithContext(ctx).Delete(&SessionModel{}, "id = ?", oldest.ID).Error
}
