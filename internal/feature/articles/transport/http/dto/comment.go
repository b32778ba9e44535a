package dto

import (
	"time"

	"news_backend/internal/feature/articles/domain/entity"
)

// CommentReq is the body of POST /articles/:id/comments.
type CommentReq struct {
	Text string `json:"text"`
}

// CommentResp is the public view of a comment.
type CommentResp struct {
	ID         uint      `json:"id"`
	ArticleID  uint      `json:"article_id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewCommentResp converts an entity.
func NewCommentResp(c *entity.Comment) CommentResp {
	return CommentResp{
		ID:         c.ID,
		ArticleID:  c.ArticleID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		CreatedAt:  c.CreatedAt,
	}
}

// NewCommentList converts a slice, never returning nil.
func NewCommentList(comments []*entity.Comment) []CommentResp {
	out := make([]CommentResp, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentResp(c))
	}
	return out
}

// CategoriesResp lists the allowed categories.
type CategoriesResp struct {
	Categories []string `json:"categories"`
}
