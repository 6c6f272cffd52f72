package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// HTTPSource retrieves records over HTTP from a base URL (typically
// the serve command's /outputs/ path, but any static file host works).
//
// Listing prefers an explicit index.json manifest — a JSON array of
// record filenames — and falls back to scraping anchor hrefs from the
// directory listing page for plain static servers that autoindex.
type HTTPSource struct {
	Base   string
	Client *http.Client
}

func NewHTTPSource(base string) *HTTPSource {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &HTTPSource{Base: base, Client: http.DefaultClient}
}

func (h *HTTPSource) List(ctx context.Context) ([]string, error) {
	names, err := h.listManifest(ctx)
	if err == nil {
		return names, nil
	}

	names, lerr := h.listAnchors(ctx)
	if lerr != nil {
		return nil, fmt.Errorf("manifest: %v; directory listing: %w", err, lerr)
	}
	return names, nil
}

func (h *HTTPSource) listManifest(ctx context.Context) ([]string, error) {
	body, err := h.get(ctx, h.Base+"index.json")
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return names, nil
}

func (h *HTTPSource) listAnchors(ctx context.Context) ([]string, error) {
	body, err := h.get(ctx, h.Base)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing listing: %w", err)
	}

	var names []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				if name := recordName(attr.Val); name != "" {
					names = append(names, name)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return names, nil
}

// recordName extracts a .json filename from an anchor href, rejecting
// anything that is not a plain file reference.
func recordName(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	name := u.Path
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if !strings.HasSuffix(name, ".json") || name == "index.json" {
		return ""
	}
	return name
}

func (h *HTTPSource) Get(ctx context.Context, name string) ([]byte, error) {
	return h.get(ctx, h.Base+name)
}

func (h *HTTPSource) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
