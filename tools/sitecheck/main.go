// sitecheck walks a running news site and reports pages that fail to render.
//
//	go run ./tools/sitecheck -base http://localhost:8080
package main

import (
	"context"
	"encoding/xml"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/romangod6/news-site/internal/models"
)

const siteName = "News Website"

func main() {
	base := flag.String("base", "http://localhost:8080", "site root URL")
	timeout := flag.Duration("timeout", 30*time.Second, "overall time limit")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := &checker{base: strings.TrimRight(*base, "/"), client: &http.Client{Timeout: 10 * time.Second}, out: os.Stdout}
	problems, err := c.run(ctx)
	if err != nil {
		log.Fatalf("Error checking site: %v", err)
	}
	if problems > 0 {
		fmt.Printf("\n%d problem(s) found\n", problems)
		os.Exit(1)
	}
	fmt.Println("\nAll pages OK")
}

type checker struct {
	base     string
	client   *http.Client
	out      io.Writer
	problems int
}

func (c *checker) run(ctx context.Context) (int, error) {
	sitemap, err := c.fetchSitemap(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch sitemap: %w", err)
	}
	fmt.Fprintf(c.out, "Total URLs found: %d\n\n", len(sitemap.URLs))

	for _, u := range sitemap.URLs {
		loc := u.Loc
		if strings.HasPrefix(loc, "/") {
			loc = c.base + loc
		}
		doc, status, err := c.fetchPage(ctx, loc)
		if err != nil {
			return c.problems, err
		}
		if status != http.StatusOK {
			c.report(loc, "status %d", status)
			continue
		}
		if title := doc.Find("title").Text(); !strings.HasSuffix(title, siteName) {
			c.report(loc, "unexpected title %q", title)
		}
	}

	if err := c.checkCards(ctx); err != nil {
		return c.problems, err
	}

	return c.problems, nil
}

// checkCards follows every card on the listing to its detail page and back,
// expecting the detail heading to match the card and the listing to be unchanged.
func (c *checker) checkCards(ctx context.Context) error {
	home := c.base + "/"
	before, err := c.fetchBody(ctx, home)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(before))
	if err != nil {
		return err
	}

	cards := doc.Find(".news-card")
	fmt.Fprintf(c.out, "Cards on listing: %d\n", cards.Length())

	var visitErr error
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := card.Find("h2").Text()
		href, ok := card.Find("a.read-more").Attr("href")
		if !ok {
			c.report(home, "card %q has no link", title)
			return true
		}

		detail, status, err := c.fetchPage(ctx, c.base+href)
		if err != nil {
			visitErr = err
			return false
		}
		if status != http.StatusOK {
			c.report(href, "status %d", status)
			return true
		}
		if got := detail.Find("article h1").Text(); got != title {
			c.report(href, "heading %q does not match card %q", got, title)
		}
		return true
	})
	if visitErr != nil {
		return visitErr
	}

	after, err := c.fetchBody(ctx, home)
	if err != nil {
		return err
	}
	if after != before {
		c.report(home, "listing changed after visiting detail pages")
	}
	return nil
}

func (c *checker) report(where, format string, args ...any) {
	c.problems++
	fmt.Fprintf(c.out, "FAIL %s: %s\n", where, fmt.Sprintf(format, args...))
}

func (c *checker) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}

func (c *checker) fetchSitemap(ctx context.Context) (*models.Sitemap, error) {
	resp, err := c.get(ctx, c.base+"/sitemap.xml")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var sitemap models.Sitemap
	if err := xml.NewDecoder(resp.Body).Decode(&sitemap); err != nil {
		return nil, err
	}
	return &sitemap, nil
}

func (c *checker) fetchPage(ctx context.Context, url string) (*goquery.Document, int, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return doc, resp.StatusCode, nil
}

func (c *checker) fetchBody(ctx context.Context, url string) (string, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.New(url + ": " + resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	return string(body), err
}
