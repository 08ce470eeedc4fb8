package models

import "strings"

// HasBody reports whether the article carries any detail content.
func (a Article) HasBody() bool {
	return strings.TrimSpace(a.Body) != ""
}

// InCategory reports whether the article belongs to the named category.
// The comparison is exact: no case folding or trimming.
func (a Article) InCategory(name string) bool {
	return a.Category == name
}
