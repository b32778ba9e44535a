// Package router maps URLs to handlers.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	articlehandler "news_backend/internal/feature/articles/transport/handler"
	authhandler "news_backend/internal/feature/auth/transport/handler"
	feedbackhandler "news_backend/internal/feature/feedback/transport/handler"
	"news_backend/internal/platform/http/handler"
	"news_backend/internal/platform/http/response"
	jwtmw "news_backend/internal/platform/jwt"
)

// Handlers groups what NewRouter mounts.
type Handlers struct {
	Auth     *authhandler.AuthHandler
	Articles *articlehandler.ArticleHandler
	Feedback *feedbackhandler.FeedbackHandler

	// Identity resolves the caller on every request (jwtmw.LoadIdentity).
	Identity gin.HandlerFunc

	// Ready serves /readyz.
	Ready gin.HandlerFunc

	// Throttle guards signup and login. Optional.
	Throttle gin.HandlerFunc
}

// NewRouter builds the gin engine. CORS is enabled only when origins are given.
func NewRouter(h Handlers, corsOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(response.RequestID())
	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", response.RequestIDHeader},
			ExposeHeaders:    []string{response.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Probes
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", h.Ready)

	api := r.Group("/", h.Identity)

	// Public
	throttled := api.Group("/")
	if h.Throttle != nil {
		throttled.Use(h.Throttle)
	}
	throttled.POST("/signup", h.Auth.Signup)
	throttled.POST("/login", h.Auth.Login)
	api.POST("/feedback", h.Feedback.Submit)
	api.GET("/categories", h.Articles.Categories)
	api.GET("/articles", h.Articles.List)
	api.GET("/articles/:id", h.Articles.Get)
	api.GET("/articles/:id/comments", h.Articles.ListComments)

	// Signed in
	auth := api.Group("/", jwtmw.RequireAuth())
	{
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", h.Auth.Me)
		auth.DELETE("/me", h.Auth.DeleteMe)
		auth.GET("/me/sessions", h.Auth.Sessions)

		auth.POST("/articles", h.Articles.Create)
		auth.PUT("/articles/:id", h.Articles.Update)
		auth.DELETE("/articles/:id", h.Articles.Delete)
		auth.POST("/articles/:id/comments", h.Articles.AddComment)
	}

	return r
}
