package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"news_backend/internal/feature/articles/domain/entity"
	"news_backend/internal/shared/apperr"
)

// ArticleRepository abstracts the storage of articles and comments.
// Interfaces are defined by the consumer (usecase), not the provider (adapters).
type ArticleRepository interface {
	// List returns articles newest first. An empty category means all.
	List(ctx context.Context, category entity.Category) ([]*entity.Article, error)

	// FindByID returns ErrArticleNotFound when absent.
	FindByID(ctx context.Context, id uint) (*entity.Article, error)

	// Create inserts a and sets its ID and CreatedAt.
	// Returns ErrAuthorNotFound when a.UserID does not exist.
	Create(ctx context.Context, a *entity.Article) error

	// Update overwrites title, text and category.
	Update(ctx context.Context, a *entity.Article) error

	// Delete removes the article and, by cascade, its comments.
	// Returns ErrArticleNotFound when absent.
	Delete(ctx context.Context, id uint) error

	// AuthorName returns the current name of a user. Returns ErrAuthorNotFound when absent.
	AuthorName(ctx context.Context, userID uint) (string, error)

	// CreateComment inserts c and sets its ID and CreatedAt.
	// Returns ErrArticleNotFound when c.ArticleID does not exist.
	CreateComment(ctx context.Context, c *entity.Comment) error

	// ListComments returns the comments of an article, newest first.
	ListComments(ctx context.Context, articleID uint) ([]*entity.Comment, error)

	// WithinTx runs fn in one transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(repo ArticleRepository) error) error
}

// ArticleInput carries the author-editable fields of an article.
type ArticleInput struct {
	Title    string
	Text     string
	Category string
}

// articleUsecase implements the article and comment operations.
// Every write takes the acting user id explicitly; 0 means anonymous.
type articleUsecase struct {
	repo ArticleRepository
	now  func() time.Time
}

// Option configures an articleUsecase.
type Option func(*articleUsecase)

// WithClock replaces the clock used to compute Article.IsNew.
func WithClock(now func() time.Time) Option {
	return func(u *articleUsecase) { u.now = now }
}

// NewArticleUsecase creates an articleUsecase.
func NewArticleUsecase(repo ArticleRepository, opts ...Option) *articleUsecase {
	u := &articleUsecase{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ListCategories returns the fixed category set.
func (u *articleUsecase) ListCategories() []entity.Category {
	return entity.Categories()
}

// ListArticles returns all articles, or those of one category, newest first.
func (u *articleUsecase) ListArticles(ctx context.Context, category string) ([]*entity.Article, error) {
	var filter entity.Category
	if category != "" {
		c, ok := entity.ParseCategory(category)
		if !ok {
			return nil, ErrUnknownCategory
		}
		filter = c
	}

	articles, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	now := u.now()
	for _, a := range articles {
		a.MarkNew(now)
	}
	return articles, nil
}

// GetArticle returns the article, or nil with no error when it does not exist.
func (u *articleUsecase) GetArticle(ctx context.Context, id uint) (*entity.Article, error) {
	a, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrArticleNotFound) {
			return nil, nil
		}
		return nil, apperr.Storage(err)
	}
	a.MarkNew(u.now())
	return a, nil
}

// CreateArticle stores a new article written by actor.
// An empty category means entity.DefaultCategory; an unknown one is rejected.
func (u *articleUsecase) CreateArticle(ctx context.Context, actor uint, in ArticleInput) (*entity.Article, error) {
	if actor == 0 {
		return nil, ErrUnauthenticated
	}
	title, text, category, err := validateArticle(in)
	if err != nil {
		return nil, err
	}

	a := &entity.Article{Title: title, Text: text, Category: category, UserID: actor}
	err = u.repo.WithinTx(ctx, func(repo ArticleRepository) error {
		name, err := repo.AuthorName(ctx, actor)
		if err != nil {
			return err
		}
		a.AuthorName = name
		return repo.Create(ctx, a)
	})
	if err != nil {
		return nil, apperr.Storage(err)
	}
	a.MarkNew(u.now())
	return a, nil
}

// EditArticle overwrites title, text and category of an article actor wrote.
func (u *articleUsecase) EditArticle(ctx context.Context, actor, id uint, in ArticleInput) (*entity.Article, error) {
	if actor == 0 {
		return nil, ErrUnauthenticated
	}

	var edited *entity.Article
	err := u.repo.WithinTx(ctx, func(repo ArticleRepository) error {
		a, err := loadOwned(ctx, repo, actor, id)
		if err != nil {
			return err
		}
		title, text, category, err := validateArticle(in)
		if err != nil {
			return err
		}
		a.Title, a.Text, a.Category = title, text, category
		if err := repo.Update(ctx, a); err != nil {
			return err
		}
		edited = a
		return nil
	})
	if err != nil {
		return nil, apperr.Storage(err)
	}
	edited.MarkNew(u.now())
	return edited, nil
}

// DeleteArticle removes an article actor wrote, together with its comments.
func (u *articleUsecase) DeleteArticle(ctx context.Context, actor, id uint) error {
	if actor == 0 {
		return ErrUnauthenticated
	}
	err := u.repo.WithinTx(ctx, func(repo ArticleRepository) error {
		if _, err := loadOwned(ctx, repo, actor, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	return apperr.Storage(err)
}

// AddComment posts a comment on an article under actor's current name.
func (u *articleUsecase) AddComment(ctx context.Context, actor, articleID uint, text string) (*entity.Comment, error) {
	if actor == 0 {
		return nil, ErrUnauthenticated
	}

	c := &entity.Comment{ArticleID: articleID}
	err := u.repo.WithinTx(ctx, func(repo ArticleRepository) error {
		if _, err := repo.FindByID(ctx, articleID); err != nil {
			return err
		}
		c.Text = strings.TrimSpace(text)
		if c.Text == "" {
			return ErrEmptyComment
		}
		name, err := repo.AuthorName(ctx, actor)
		if err != nil {
			return err
		}
		c.AuthorName = name
		return repo.CreateComment(ctx, c)
	})
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return c, nil
}

// ListComments returns an article's comments, newest first.
// An unknown article has no comments.
func (u *articleUsecase) ListComments(ctx context.Context, articleID uint) ([]*entity.Comment, error) {
	comments, err := u.repo.ListComments(ctx, articleID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return comments, nil
}

// loadOwned fetches an article and checks that actor wrote it.
func loadOwned(ctx context.Context, repo ArticleRepository, actor, id uint) (*entity.Article, error) {
	a, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.OwnedBy(actor) {
		return nil, ErrNotOwner
	}
	return a, nil
}

// validateArticle trims and checks the input and resolves its category.
func validateArticle(in ArticleInput) (string, string, entity.Category, error) {
	title := strings.TrimSpace(in.Title)
	text := strings.TrimSpace(in.Text)
	if title == "" || text == "" {
		return "", "", "", ErrMissingContent
	}
	if utf8.RuneCountInString(title) > entity.TitleMaxLen {
		return "", "", "", ErrTitleTooLong
	}

	category := entity.DefaultCategory
	if in.Category != "" {
		c, ok := entity.ParseCategory(in.Category)
		if !ok {
			return "", "", "", ErrUnknownCategory
		}
		category = c
	}
	return title, text, category, nil
}
