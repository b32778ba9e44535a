package entity

import "time"

// Comment is a reader's note on an article. Comments are never edited;
// they disappear only together with their article.
type Comment struct {
	ID        uint
	ArticleID uint
	Text      string
	CreatedAt time.Time

	// AuthorName is the commenter's name at the time of posting. Later
	// renames do not change it.
	AuthorName string
}
