package entity

import "time"

// TitleMaxLen bounds Article.Title, counted in characters.
const TitleMaxLen = 200

// Article is a post written by one user.
type Article struct {
	ID        uint
	Title     string
	Text      string
	Category  Category
	CreatedAt time.Time // UTC, set by storage on insert
	UserID    uint

	// AuthorName is read from the author's user row; it is not stored on the article.
	AuthorName string

	// IsNew is derived at read time and never persisted.
	IsNew bool
}

// PublishedOn reports whether the article was created on the same UTC
// calendar day as now.
func (a *Article) PublishedOn(now time.Time) bool {
	y1, m1, d1 := a.CreatedAt.UTC().Date()
	y2, m2, d2 := now.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// MarkNew sets IsNew relative to now.
func (a *Article) MarkNew(now time.Time) {
	a.IsNew = a.PublishedOn(now)
}

// OwnedBy reports whether userID wrote the article.
func (a *Article) OwnedBy(userID uint) bool {
	return userID != 0 && a.UserID == userID
}
