// Package entity defines the articles and comments of the news site.
package entity

// Category classifies an article. The set is closed.
type Category string

// The fixed categories. Extend only by adding to this list and to categories.
const (
	CategoryGeneral  Category = "general"
	CategoryTech     Category = "tech"
	CategorySports   Category = "sports"
	CategoryCulture  Category = "culture"
	CategoryPolitics Category = "politics"
	CategoryScience  Category = "science"
)

// DefaultCategory is used when an article is created without one.
const DefaultCategory = CategoryGeneral

var categories = []Category{
	CategoryGeneral,
	CategoryTech,
	CategorySports,
	CategoryCulture,
	CategoryPolitics,
	CategoryScience,
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory reports whether s names one of the fixed categories.
// Matching is exact: "Tech" is not a category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

func (c Category) String() string { return string(c) }
