// Package handler serves the auth endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"news_backend/internal/feature/auth/domain/entity"
	"news_backend/internal/feature/auth/transport/http/dto"
	"news_backend/internal/feature/auth/usecase"
	"news_backend/internal/platform/http/response"
	jwtmw "news_backend/internal/platform/jwt"
)

// AuthUsecase is what the handler needs from the auth usecase.
// Interfaces are defined by the consumer, not the provider.
type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string) (uint, error)
	Authenticate(ctx context.Context, email, password string) (uint, error)
	EstablishSession(ctx context.Context, userID uint, meta usecase.SessionMeta) (*entity.Session, string, error)
	EndSession(ctx context.Context, sessionID string) error
	Me(ctx context.Context, userID uint) (*entity.User, error)
	DeleteAccount(ctx context.Context, userID uint) error
	ActiveSessions(ctx context.Context, userID uint) ([]*entity.Session, error)
}

// AuthHandler handles signup, login, logout and the /me endpoints.
type AuthHandler struct {
	auth         AuthUsecase
	secureCookie bool
}

// NewAuthHandler creates an AuthHandler. secureCookie marks the session
// cookie Secure; enable it whenever the API is served over HTTPS.
func NewAuthHandler(auth AuthUsecase, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookie: secureCookie}
}

// Signup registers a user and answers 201 with its id.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	id, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		slog.Warn("signup failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}
	slog.Info("user signup successful", "user_id", id, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.SignupResp{ID: id})
}

// Login checks the credentials, opens a session and returns its token,
// both in the body and as an HttpOnly cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	ctx := c.Request.Context()

	userID, err := h.auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}
	session, token, err := h.auth.EstablishSession(ctx, userID, usecase.SessionMeta{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	user, err := h.auth.Me(ctx, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, token, session.ExpiresAt)
	slog.Info("user login successful", "user_id", userID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginResp{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      dto.NewUserResp(user),
	})
}

// Logout revokes the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, _ := jwtmw.SessionIDFrom(c)
	if err := h.auth.EndSession(c.Request.Context(), sessionID); err != nil {
		response.Error(c, err)
		return
	}
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "logged out"})
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := jwtmw.UserIDFrom(c)
	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResp(user))
}

// DeleteMe deletes the signed-in user with all of their articles and comments.
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	userID, _ := jwtmw.UserIDFrom(c)
	if err := h.auth.DeleteAccount(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	h.clearSessionCookie(c)
	slog.Info("account deleted", "user_id", userID)
	c.Status(http.StatusNoContent)
}

// Sessions lists the active logins of the signed-in user.
func (h *AuthHandler) Sessions(c *gin.Context) {
	userID, _ := jwtmw.UserIDFrom(c)
	sessions, err := h.auth.ActiveSessions(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	current, _ := jwtmw.SessionIDFrom(c)
	resp := make([]dto.SessionResp, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, dto.SessionResp{
			UserAgent: s.UserAgent,
			IPAddress: s.IPAddress,
			CreatedAt: s.CreatedAt,
			ExpiresAt: s.ExpiresAt,
			Current:   s.ID == current,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(jwtmw.CookieName, token, maxAge, "/", "", h.secureCookie, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(jwtmw.CookieName, "", -1, "/", "", h.secureCookie, true)
}
