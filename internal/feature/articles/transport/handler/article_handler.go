// Package handler serves the article and comment endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"news_backend/internal/feature/articles/domain/entity"
	"news_backend/internal/feature/articles/transport/http/dto"
	"news_backend/internal/feature/articles/usecase"
	"news_backend/internal/platform/http/response"
	jwtmw "news_backend/internal/platform/jwt"
)

// ArticleUsecase is what the handler needs from the articles usecase.
type ArticleUsecase interface {
	ListCategories() []entity.Category
	ListArticles(ctx context.Context, category string) ([]*entity.Article, error)
	GetArticle(ctx context.Context, id uint) (*entity.Article, error)
	CreateArticle(ctx context.Context, actor uint, in usecase.ArticleInput) (*entity.Article, error)
	EditArticle(ctx context.Context, actor, id uint, in usecase.ArticleInput) (*entity.Article, error)
	DeleteArticle(ctx context.Context, actor, id uint) error
	AddComment(ctx context.Context, actor, articleID uint, text string) (*entity.Comment, error)
	ListComments(ctx context.Context, articleID uint) ([]*entity.Comment, error)
}

// ArticleHandler handles /articles and /categories.
// Identity comes from jwtmw.LoadIdentity; the usecase rejects anonymous writes.
type ArticleHandler struct {
	articles ArticleUsecase
}

// NewArticleHandler creates an ArticleHandler.
func NewArticleHandler(articles ArticleUsecase) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// actor returns the caller's user id, 0 when anonymous.
func actor(c *gin.Context) uint {
	id, _ := jwtmw.UserIDFrom(c)
	return id
}

// idParam parses :id and answers 404 when it is not a positive integer.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		response.Error(c, usecase.ErrArticleNotFound)
		return 0, false
	}
	return uint(id), true
}

// Categories lists the allowed categories.
func (h *ArticleHandler) Categories(c *gin.Context) {
	categories := h.articles.ListCategories()
	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = cat.String()
	}
	c.JSON(http.StatusOK, dto.CategoriesResp{Categories: names})
}

// List returns articles, optionally filtered with ?category=.
func (h *ArticleHandler) List(c *gin.Context) {
	var q dto.ListArticlesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err)
		return
	}
	articles, err := h.articles.ListArticles(c.Request.Context(), q.Category)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArticleList(articles))
}

// Get returns one article or 404.
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	a, err := h.articles.GetArticle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if a == nil {
		response.Error(c, usecase.ErrArticleNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.NewArticleResp(a))
}

// Create stores an article written by the caller.
func (h *ArticleHandler) Create(c *gin.Context) {
	var req dto.ArticleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	a, err := h.articles.CreateArticle(c.Request.Context(), actor(c), usecase.ArticleInput{
		Title:    req.Title,
		Text:     req.Text,
		Category: req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	slog.Info("article created", "article_id", a.ID, "user_id", a.UserID, "category", a.Category)
	c.JSON(http.StatusCreated, dto.NewArticleResp(a))
}

// Update edits an article the caller wrote.
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.ArticleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	a, err := h.articles.EditArticle(c.Request.Context(), actor(c), id, usecase.ArticleInput{
		Title:    req.Title,
		Text:     req.Text,
		Category: req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArticleResp(a))
}

// Delete removes an article the caller wrote, with its comments.
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.articles.DeleteArticle(c.Request.Context(), actor(c), id); err != nil {
		response.Error(c, err)
		return
	}
	slog.Info("article deleted", "article_id", id, "user_id", actor(c))
	c.Status(http.StatusNoContent)
}

// ListComments returns an article's comments, newest first.
func (h *ArticleHandler) ListComments(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	comments, err := h.articles.ListComments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentList(comments))
}

// AddComment posts a comment as the caller.
func (h *ArticleHandler) AddComment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	comment, err := h.articles.AddComment(c.Request.Context(), actor(c), id, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCommentResp(comment))
}
