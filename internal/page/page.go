// Package page scrapes the start page of a web app for the bits the
// manifest does not carry: the manifest link itself and navigation links.
package page

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Ismailco/PWA2Native/internal/httputil"
)

// maxPageSize caps how much HTML is parsed.
const maxPageSize = 4 << 20

// Link is an anchor found inside a <nav> or <header> element.
type Link struct {
	Text string
	URL  string
}

// Load fetches pageURL and parses it.
func Load(ctx context.Context, client *http.Client, pageURL string) (*html.Node, error) {
	resp, err := httputil.Get(ctx, client, pageURL)
	if err != nil {
		return nil, fmt.Errorf("page: fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()
	if err := httputil.CheckStatus(resp, "page"); err != nil {
		return nil, err
	}
	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("page: parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// ManifestLink returns the absolute href of the first
// <link rel="manifest">, resolved against base.
func ManifestLink(doc *html.Node, base string) (string, bool) {
	var href string
	walk(doc, func(n *html.Node) bool {
		if href != "" {
			return false
		}
		if n.DataAtom != atom.Link || !hasToken(attr(n, "rel"), "manifest") {
			return true
		}
		if h := strings.TrimSpace(attr(n, "href")); h != "" {
			href = h
			return false
		}
		return true
	})
	if href == "" {
		return "", false
	}
	abs, err := resolve(base, href)
	if err != nil {
		return "", false
	}
	return abs, true
}

// NavLinks collects anchors inside <nav> and <header> elements. Links are
// resolved against base, deduplicated by URL, and fragment-only or
// javascript: links are dropped.
func NavLinks(doc *html.Node, base string) []Link {
	var links []Link
	seen := make(map[string]bool)
	walk(doc, func(n *html.Node) bool {
		if n.DataAtom != atom.Nav && n.DataAtom != atom.Header {
			return true
		}
		walk(n, func(a *html.Node) bool {
			if a.DataAtom != atom.A {
				return true
			}
			href := strings.TrimSpace(attr(a, "href"))
			if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
				return false
			}
			text := strings.Join(strings.Fields(textOf(a)), " ")
			if text == "" {
				return false
			}
			abs, err := resolve(base, href)
			if err != nil || seen[abs] {
				return false
			}
			seen[abs] = true
			links = append(links, Link{Text: text, URL: abs})
			return false
		})
		// Nested nav inside header was already visited.
		return false
	})
	return links
}

// walk visits element nodes depth-first. fn returns false to skip a
// node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if n.Type == html.ElementNode && !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func hasToken(list, tok string) bool {
	for _, f := range strings.Fields(strings.ToLower(list)) {
		if f == tok {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return b.String()
}

func resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	// A base without a trailing slash would drop its last segment.
	if b.Path != "" && !strings.HasSuffix(b.Path, "/") {
		b.Path += "/"
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(r).String(), nil
}
