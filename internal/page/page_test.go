package page

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const samplePage = `<!doctype html>
<html><head>
<link rel="icon" href="/favicon.ico">
<link rel="Manifest" href="/static/app.webmanifest">
<link rel="manifest" href="/second.json">
</head><body>
<header><a href="/">Home</a><a href="#top">Top</a></header>
<nav>
  <a href="/docs">  Docs
  </a>
  <a href="https://other.example.com/blog">Blog</a>
  <a href="javascript:void(0)">Menu</a>
  <a href="/docs">Docs again</a>
  <a href="/empty"></a>
</nav>
<main><a href="/not-nav">Ignored</a></main>
</body></html>`

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	return doc
}

func TestManifestLink(t *testing.T) {
	doc := parse(t, samplePage)
	got, ok := ManifestLink(doc, "https://app.example.com")
	if !ok {
		t.Fatal("expected manifest link")
	}
	if want := "https://app.example.com/static/app.webmanifest"; got != want {
		t.Errorf("ManifestLink = %q, want %q", got, want)
	}
}

func TestManifestLinkRelativeToSubpath(t *testing.T) {
	doc := parse(t, `<link rel="manifest" href="manifest.json">`)
	got, ok := ManifestLink(doc, "https://example.com/app")
	if !ok {
		t.Fatal("expected manifest link")
	}
	if want := "https://example.com/app/manifest.json"; got != want {
		t.Errorf("ManifestLink = %q, want %q", got, want)
	}
}

func TestManifestLinkMissing(t *testing.T) {
	doc := parse(t, `<html><head><link rel="stylesheet" href="a.css"></head></html>`)
	if _, ok := ManifestLink(doc, "https://example.com"); ok {
		t.Error("expected no manifest link")
	}
}

func TestNavLinks(t *testing.T) {
	doc := parse(t, samplePage)
	links := NavLinks(doc, "https://app.example.com")

	want := []Link{
		{"Home", "https://app.example.com/"},
		{"Docs", "https://app.example.com/docs"},
		{"Blog", "https://other.example.com/blog"},
	}
	if len(links) != len(want) {
		t.Fatalf("got %d links %+v, want %d", len(links), links, len(want))
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("links[%d] = %+v, want %+v", i, links[i], want[i])
		}
	}
}

func TestLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	doc, err := Load(context.Background(), srv.Client(), srv.URL+"/")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := ManifestLink(doc, srv.URL); !ok {
		t.Error("expected manifest link in loaded page")
	}

	if _, err := Load(context.Background(), srv.Client(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for 404 page")
	}
}
