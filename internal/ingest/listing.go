package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"paperdesk/internal/papers"
	"paperdesk/internal/papertitle"
)

// Link is a PDF referenced from an index page.
type Link struct {
	Title string
	URL   string
}

// ParseListing returns the PDF links of an HTML index page in document order.
// Relative hrefs are resolved against base when it is set. Links repeating an
// earlier URL are dropped.
func ParseListing(r io.Reader, base *url.URL) ([]Link, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	seen := make(map[string]struct{})
	var links []Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		target, ok := resolveHref(base, href)
		if !ok || !strings.HasSuffix(strings.ToLower(target.Path), ".pdf") {
			return
		}
		resolved := target.String()
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}

		title := strings.Join(strings.Fields(s.Text()), " ")
		if title == "" {
			title = titleFromURLPath(target.Path)
		}
		links = append(links, Link{Title: title, URL: resolved})
	})
	return links, nil
}

func resolveHref(base *url.URL, href string) (*url.URL, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return nil, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	ref.Fragment, ref.RawFragment = "", ""
	return ref, true
}

func titleFromURLPath(p string) string {
	name := path.Base(p)
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return papertitle.FromFilename(name)
}

// ImportListing stores each link as a pending paper referencing its URL and
// returns the inserted papers. It stops at the first failure.
func ImportListing(ctx context.Context, store Adder, links []Link) ([]*papers.Paper, error) {
	if store == nil {
		return nil, errors.New("paper store is nil")
	}
	out := make([]*papers.Paper, 0, len(links))
	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		title := strings.TrimSpace(link.Title)
		if title == "" {
			continue
		}
		paper, err := store.Add(ctx, papers.NewPaper{
			Title:      title,
			FileRef:    "url:" + link.URL,
			SourcePath: link.URL,
			Tags:       withCourseCode(title, nil),
		})
		if err != nil {
			return out, fmt.Errorf("import %s: %w", link.URL, err)
		}
		out = append(out, paper)
	}
	return out, nil
}
