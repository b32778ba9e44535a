// Package dto defines the JSON bodies of the article endpoints.
package dto

import (
	"time"

	"news_backend/internal/feature/articles/domain/entity"
)

// ArticleReq is the body of POST /articles and PUT /articles/:id.
// Emptiness and length are checked by the usecase so that the error names the field.
type ArticleReq struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// ListArticlesQuery is the query string of GET /articles.
type ListArticlesQuery struct {
	Category string `form:"category"`
}

// ArticleResp is the public view of an article.
type ArticleResp struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"created_at"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name"`
	IsNew      bool      `json:"is_new"`
}

// NewArticleResp converts an entity.
func NewArticleResp(a *entity.Article) ArticleResp {
	return ArticleResp{
		ID:         a.ID,
		Title:      a.Title,
		Text:       a.Text,
		Category:   a.Category.String(),
		CreatedAt:  a.CreatedAt,
		AuthorID:   a.UserID,
		AuthorName: a.AuthorName,
		IsNew:      a.IsNew,
	}
}

// NewArticleList converts a slice, never returning nil so the JSON is [].
func NewArticleList(articles []*entity.Article) []ArticleResp {
	out := make([]ArticleResp, 0, len(articles))
	for _, a := range articles {
		out = append(out, NewArticleResp(a))
	}
	return out
}
