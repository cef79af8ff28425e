package models

// Article is a single normalized entry from an author's syndication feed
type Article struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
	Author      string `json:"author"`
	Description string `json:"description,omitempty"`
}

// ArticlesResponse is the success body of the articles endpoint
type ArticlesResponse struct {
	Articles []Article `json:"articles"`
}

// ErrorResponse is the failure body of the articles endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}

// Project is an entry of the fixed "selected works" list
type Project struct {
	Title       string   `json:"title" toml:"title"`
	Description string   `json:"description" toml:"description"`
	Tags        []string `json:"tags" toml:"tags"`
	Link        string   `json:"link,omitempty" toml:"link,omitempty"`
}

// Theme is the two-valued presentation preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is one of the known themes
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Opposite returns the other theme
func (t Theme) Opposite() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
