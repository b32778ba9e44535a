// Package di wires repositories, usecases and handlers together.
package di

import (
	"log/slog"

	"gorm.io/gorm"

	articleadapters "news_backend/internal/feature/articles/adapters"
	authadapters "news_backend/internal/feature/auth/adapters"
	authentity "news_backend/internal/feature/auth/domain/entity"
	feedbackentity "news_backend/internal/feature/feedback/domain/entity"
	"news_backend/internal/platform/db"
)

// Models lists every table in dependency order: a table comes after the
// tables its foreign keys point at.
func Models() []any {
	return []any{
		&authentity.User{},
		&authadapters.SessionModel{},
		&articleadapters.ArticleModel{},
		&articleadapters.CommentModel{},
		&feedbackentity.Feedback{},
	}
}

// NewDatabase opens the database and, when migrate is set, brings the schema up to date.
func NewDatabase(cfg db.Config, migrate bool) (*gorm.DB, error) {
	gdb, err := db.OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := db.Migrate(gdb, Models()...); err != nil {
			return nil, err
		}
		slog.Info("database migrated")
	}
	return gdb, nil
}
