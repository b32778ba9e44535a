// Package usecase implements reading and writing articles and comments.
package usecase

import "news_backend/internal/shared/apperr"

var (
	// ErrUnauthenticated is returned by writes attempted without an identity.
	ErrUnauthenticated = apperr.NewUnauthenticated("authentication required")

	// ErrNotOwner is returned when someone other than the author edits or deletes an article.
	ErrNotOwner = apperr.New(apperr.ErrAuthorization, "only the author can modify this article")

	// ErrArticleNotFound is returned for unknown article ids.
	ErrArticleNotFound = apperr.New(apperr.ErrNotFound, "article not found")

	// ErrAuthorNotFound is returned when the acting user no longer exists.
	ErrAuthorNotFound = apperr.New(apperr.ErrNotFound, "author not found")

	// ErrMissingField is the kind of every "required field is empty" failure.
	ErrMissingField = apperr.New(apperr.ErrValidation, "required field is missing")

	// ErrMissingContent is returned when an article's title or text is empty.
	ErrMissingContent = apperr.New(ErrMissingField, "title and text are required")

	// ErrEmptyComment is returned when a comment's text is empty.
	ErrEmptyComment = apperr.New(ErrMissingField, "comment text is required")

	// ErrTitleTooLong is returned for titles over entity.TitleMaxLen characters.
	ErrTitleTooLong = apperr.New(apperr.ErrValidation, "title must be at most 200 characters")

	// ErrUnknownCategory is returned for categories outside the fixed set.
	ErrUnknownCategory = apperr.New(apperr.ErrValidation, "unknown category")
)
