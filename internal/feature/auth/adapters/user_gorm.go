// Package adapters provides the SQL repositories of the auth feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"news_backend/internal/feature/auth/domain/entity"
	"news_backend/internal/feature/auth/usecase"
	"news_backend/internal/platform/db"
)

// userGorm implements usecase.UserRepository on top of GORM.
type userGorm struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm returns a UserRepository backed by db.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts u and fills its ID and CreatedAt.
// A duplicate email is reported as usecase.ErrEmailTaken.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrEmailTaken
		}
		return err
	}
	return nil
}

// FindByEmail returns usecase.ErrUserNotFound when no user has that email.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

// FindByID returns usecase.ErrUserNotFound when the user does not exist.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userGorm) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// Delete removes the user row. Articles, their comments and the user's
// sessions go with it through ON DELETE CASCADE.
func (r *userGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}
