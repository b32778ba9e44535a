package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"news_backend/internal/feature/articles/domain/entity"
	"news_backend/internal/feature/articles/usecase"
	authentity "news_backend/internal/feature/auth/domain/entity"
	"news_backend/internal/platform/db"
)

// articleGorm implements usecase.ArticleRepository.
type articleGorm struct {
	db *gorm.DB
}

var _ usecase.ArticleRepository = (*articleGorm)(nil)

// NewArticleGorm returns an ArticleRepository backed by db.
func NewArticleGorm(db *gorm.DB) *articleGorm {
	return &articleGorm{db: db}
}

// withAuthor selects articles together with their author's id and name.
// Other user columns, the password hash among them, are never read.
func (r *articleGorm) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&ArticleModel{}).
		Joins("Author", r.db.Session(&gorm.Session{NewDB: true}).Select("id", "name"))
}

// List returns articles newest first; ties on created_at fall back to the id.
func (r *articleGorm) List(ctx context.Context, category entity.Category) ([]*entity.Article, error) {
	q := r.withAuthor(ctx)
	if category != "" {
		q = q.Where("articles.category = ?", string(category))
	}

	var models []ArticleModel
	if err := q.Order("articles.created_at DESC").Order("articles.id DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	articles := make([]*entity.Article, len(models))
	for i := range models {
		articles[i] = models[i].ToEntity()
	}
	return articles, nil
}

// FindByID returns usecase.ErrArticleNotFound when absent.
func (r *articleGorm) FindByID(ctx context.Context, id uint) (*entity.Article, error) {
	var m ArticleModel
	if err := r.withAuthor(ctx).Where("articles.id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrArticleNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Create inserts the article. CreatedAt comes from the database clock.
func (r *articleGorm) Create(ctx context.Context, a *entity.Article) error {
	m := ArticleModel{
		Title:    a.Title,
		Text:     a.Text,
		Category: string(a.Category),
		UserID:   a.UserID,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return usecase.ErrAuthorNotFound
		}
		return err
	}
	a.ID = m.ID
	a.CreatedAt = m.CreatedAt.UTC()
	return nil
}

// Update overwrites the editable columns.
func (r *articleGorm) Update(ctx context.Context, a *entity.Article) error {
	return r.db.WithContext(ctx).
		Model(&ArticleModel{ID: a.ID}).
		Updates(map[string]any{
			"title":    a.Title,
			"text":     a.Text,
			"category": string(a.Category),
		}).Error
}

// Delete removes the article; ON DELETE CASCADE removes its comments in the same statement.
func (r *articleGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&ArticleModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrArticleNotFound
	}
	return nil
}

// AuthorName reads the user's current display name.
func (r *articleGorm) AuthorName(ctx context.Context, userID uint) (string, error) {
	var u authentity.User
	if err := r.db.WithContext(ctx).Select("id", "name").Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", usecase.ErrAuthorNotFound
		}
		return "", err
	}
	return u.Name, nil
}

// CreateComment inserts the comment. A missing article surfaces as
// usecase.ErrArticleNotFound through the foreign key.
func (r *articleGorm) CreateComment(ctx context.Context, c *entity.Comment) error {
	m := CommentModel{
		Text:       c.Text,
		ArticleID:  c.ArticleID,
		AuthorName: c.AuthorName,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		if db.IsForeignKeyViolation(err) {
			return usecase.ErrArticleNotFound
		}
		return err
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt.UTC()
	return nil
}

// ListComments returns the comments of an article, newest first.
func (r *articleGorm) ListComments(ctx context.Context, articleID uint) ([]*entity.Comment, error) {
	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at DESC").Order("id DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	comments := make([]*entity.Comment, len(models))
	for i := range models {
		comments[i] = models[i].ToEntity()
	}
	return comments, nil
}

// WithinTx runs fn against a repository bound to one transaction.
func (r *articleGorm) WithinTx(ctx context.Context, fn func(repo usecase.ArticleRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&articleGorm{db: tx})
	})
}
