// Package adapters stores articles and comments with GORM.
package adapters

import (
	"time"

	"news_backend/internal/feature/articles/domain/entity"
	authentity "news_backend/internal/feature/auth/domain/entity"
)

// ArticleModel is the GORM model for the articles table.
// Deleting the author deletes the article.
type ArticleModel struct {
	ID        uint            `gorm:"primaryKey"`
	Title     string          `gorm:"size:200;not null"`
	Text      string          `gorm:"type:text;not null"`
	Category  string          `gorm:"size:50;not null;default:general;index"`
	CreatedAt time.Time       `gorm:"not null;index"`
	UserID    uint            `gorm:"not null;index"`
	Author    authentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM.
func (ArticleModel) TableName() string {
	return "articles"
}

// ToEntity converts the model. Author is only filled when it was joined.
func (m *ArticleModel) ToEntity() *entity.Article {
	return &entity.Article{
		ID:         m.ID,
		Title:      m.Title,
		Text:       m.Text,
		Category:   entity.Category(m.Category),
		CreatedAt:  m.CreatedAt.UTC(),
		UserID:     m.UserID,
		AuthorName: m.Author.Name,
	}
}

// CommentModel is the GORM model for the comments table.
// Deleting the article deletes its comments.
type CommentModel struct {
	ID         uint         `gorm:"primaryKey"`
	Text       string       `gorm:"type:text;not null"`
	CreatedAt  time.Time    `gorm:"not null"`
	ArticleID  uint         `gorm:"not null;index"`
	Article    ArticleModel `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
	AuthorName string       `gorm:"size:100;not null"`
}

// TableName returns the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}

// ToEntity converts the model.
func (m *CommentModel) ToEntity() *entity.Comment {
	return &entity.Comment{
		ID:         m.ID,
		ArticleID:  m.ArticleID,
		Text:       m.Text,
		CreatedAt:  m.CreatedAt.UTC(),
		AuthorName: m.AuthorName,
	}
}
