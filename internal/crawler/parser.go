// internal/crawler/parser.go
package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/romangod6/news-site/internal/models"
	"golang.org/x/net/html"
)

// blockElements end a paragraph when extracting body text.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "li": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"pre": true, "br": true, "tr": true,
}

// ParseArticle extracts an article from a parsed page. It reports false when
// the page has no <article> element or no usable id or title.
func ParseArticle(doc *goquery.Selection, pageURL *url.URL) (models.Article, bool) {
	root := doc.Find("article").First()
	if root.Length() == 0 {
		return models.Article{}, false
	}

	article := models.Article{
		ID:       articleID(pageURL),
		Title:    firstText(root, "h1"),
		Excerpt:  metaContent(doc, "meta[name='description']"),
		Image:    metaContent(doc, "meta[property='og:image']"),
		Category: metaContent(doc, "meta[name='category']"),
	}

	if article.Title == "" {
		article.Title = firstText(doc, "h1")
	}
	if article.Title == "" {
		article.Title = firstText(doc, "title")
	}
	if article.Category == "" {
		article.Category = metaContent(doc, "meta[property='article:section']")
	}
	if article.Image == "" {
		if src, ok := root.Find("img").First().Attr("src"); ok {
			article.Image = resolve(pageURL, src)
		}
	} else {
		article.Image = resolve(pageURL, article.Image)
	}

	body := root.Find(".article-body").First()
	if body.Length() == 0 {
		body = root.Clone()
		body.Find("h1, img, header, footer, nav").Remove()
	}
	if nodes := body.Nodes; len(nodes) > 0 {
		article.Body = extractText(nodes[0])
	}

	if article.ID == "" || article.Title == "" {
		return models.Article{}, false
	}
	return article, true
}

func firstText(s *goquery.Selection, selector string) string {
	return strings.TrimSpace(s.Find(selector).First().Text())
}

func metaContent(s *goquery.Selection, selector string) string {
	content, _ := s.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func resolve(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

// extractText turns an HTML subtree into plain paragraphs separated by blank
// lines. Scripts, styles and comments are dropped and whitespace is collapsed.
func extractText(root *html.Node) string {
	var (
		paragraphs []string
		current    strings.Builder
	)

	flush := func() {
		text := strings.Join(strings.Fields(current.String()), " ")
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.CommentNode:
			return
		case html.TextNode:
			current.WriteString(n.Data)
			current.WriteByte(' ')
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
				return
			}
		}

		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			flush()
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if block {
			flush()
		}
	}

	walk(root)
	flush()

	return strings.Join(paragraphs, "\n\n")
}
