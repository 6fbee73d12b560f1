// Package linkmeta fetches Open Graph metadata for URLs embedded in notes.
package linkmeta

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// DefaultTimeout bounds a metadata fetch when the caller's context has no
// deadline of its own.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a page is read; metadata lives in the head.
const maxBodyBytes = 2 << 20

// Browser-like headers so sites serve the same markup they serve browsers.
const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptHeader   = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	acceptLanguage = "en-US,en;q=0.5"
)

// Metadata is what a link preview renders.
type Metadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
	URL         string `json:"url"`
}

// Fetcher retrieves link metadata over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher. A nil client gets a default one with
// DefaultTimeout.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Fetcher{client: client}
}

// Fetch downloads the page and extracts its Open Graph tags, falling back
// to the document title and meta description.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Metadata, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	return Extract(rawURL, io.LimitReader(resp.Body, maxBodyBytes))
}

// Extract parses HTML and pulls the preview fields out of it.
func Extract(rawURL string, r io.Reader) (*Metadata, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var ogTitle, ogDesc, ogImage, ogSite, docTitle, metaDesc string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				content := attr(n, "content")
				switch attr(n, "property") {
				case "og:title":
					setFirst(&ogTitle, content)
				case "og:description":
					setFirst(&ogDesc, content)
				case "og:image":
					setFirst(&ogImage, content)
				case "og:site_name":
					setFirst(&ogSite, content)
				}
				if attr(n, "name") == "description" {
					setFirst(&metaDesc, content)
				}
			case "title":
				setFirst(&docTitle, textContent(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	meta := &Metadata{
		Title:       firstNonEmpty(ogTitle, docTitle),
		Description: firstNonEmpty(ogDesc, metaDesc),
		Image:       ogImage,
		SiteName:    ogSite,
		URL:         rawURL,
	}
	return meta, nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

func setFirst(dst *string, val string) {
	if *dst == "" {
		*dst = strings.TrimSpace(val)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
