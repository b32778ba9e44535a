// Package handler serves the contact form endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"news_backend/internal/feature/feedback/domain/entity"
	"news_backend/internal/feature/feedback/transport/http/dto"
	"news_backend/internal/platform/http/response"
)

// FeedbackUsecase is what the handler needs from the feedback usecase.
type FeedbackUsecase interface {
	Submit(ctx context.Context, name, email, message string) (*entity.Feedback, error)
}

// FeedbackHandler handles POST /feedback.
type FeedbackHandler struct {
	feedback FeedbackUsecase
}

// NewFeedbackHandler creates a FeedbackHandler.
func NewFeedbackHandler(feedback FeedbackUsecase) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Submit stores the message and echoes it back with 201.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req dto.FeedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	f, err := h.feedback.Submit(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	slog.Info("feedback received", "feedback_id", f.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, f)
}
