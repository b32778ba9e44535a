// Package dto defines the body of the feedback endpoint.
package dto

// FeedbackReq is the body of POST /feedback.
type FeedbackReq struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=100"`
	Message string `json:"message" binding:"required"`
}
