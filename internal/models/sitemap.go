// internal/models/sitemap.go
package models

import "encoding/xml"

// SitemapNamespace is the xmlns value required on a sitemap urlset.
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Sitemap represents the structure of an XML sitemap.
type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr,omitempty"`
	URLs    []URL    `xml:"url"`
}

// URL represents a single URL entry in the sitemap.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Add appends an entry for loc.
func (s *Sitemap) Add(loc, priority string) {
	s.URLs = append(s.URLs, URL{Loc: loc, Priority: priority})
}
