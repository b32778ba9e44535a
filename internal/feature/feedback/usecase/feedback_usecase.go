// Package usecase accepts contact form submissions.
package usecase

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"news_backend/internal/feature/feedback/domain/entity"
	"news_backend/internal/shared/apperr"
)

var (
	// ErrMissingField is returned when name, email or message is empty.
	ErrMissingField = apperr.New(apperr.ErrValidation, "name, email and message are required")

	// ErrInvalidEmail is returned for addresses that are not syntactically valid.
	ErrInvalidEmail = apperr.New(apperr.ErrValidation, "email is not a valid address")
)

// FeedbackRepository stores submissions.
type FeedbackRepository interface {
	Create(ctx context.Context, f *entity.Feedback) error
}

type feedbackUsecase struct {
	repo     FeedbackRepository
	validate *validator.Validate
}

// NewFeedbackUsecase creates a feedbackUsecase.
func NewFeedbackUsecase(repo FeedbackRepository) *feedbackUsecase {
	return &feedbackUsecase{repo: repo, validate: validator.New()}
}

// Submit validates and stores a message, returning the stored record.
func (u *feedbackUsecase) Submit(ctx context.Context, name, email, message string) (*entity.Feedback, error) {
	f := &entity.Feedback{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
	}
	if f.Name == "" || f.Email == "" || f.Message == "" {
		return nil, ErrMissingField
	}
	if err := u.validate.Var(f.Email, "email,max=100"); err != nil {
		return nil, ErrInvalidEmail
	}

	if err := u.repo.Create(ctx, f); err != nil {
		return nil, apperr.Storage(err)
	}
	return f, nil
}
