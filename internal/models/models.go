package models

// Article is a single content item shown on the listing, category and detail pages.
type Article struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Excerpt  string `json:"excerpt" yaml:"excerpt"`
	Body     string `json:"body,omitempty" yaml:"body"`
	Category string `json:"category,omitempty" yaml:"category"`
	Image    string `json:"image" yaml:"image"`
}
