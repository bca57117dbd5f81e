package httputil

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestReadSnippetEmpty(t *testing.T) {
	got := ReadSnippet(strings.NewReader(""))
	if got != "(empty body)" {
		t.Errorf("got %q, want %q", got, "(empty body)")
	}
}

func TestReadSnippetShort(t *testing.T) {
	got := ReadSnippet(strings.NewReader("hello"))
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestReadSnippetTruncates(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := ReadSnippet(strings.NewReader(long))
	if !strings.HasSuffix(got, "...") {
		t.Error("expected trailing ellipsis for long input")
	}
	if len(got) != 203 { // 200 bytes + "..."
		t.Errorf("got length %d, want 203", len(got))
	}
}

func TestCheckStatusOK(t *testing.T) {
	resp := &http.Response{StatusCode: 204, Body: io.NopCloser(strings.NewReader(""))}
	if err := CheckStatus(resp, "test"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheckStatusNotFound(t *testing.T) {
	resp := &http.Response{StatusCode: 404, Body: io.NopCloser(strings.NewReader("no such page"))}
	err := CheckStatus(resp, "manifest: fetch")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if se.Code != 404 {
		t.Errorf("Code = %d, want 404", se.Code)
	}
	if !strings.Contains(err.Error(), "no such page") {
		t.Errorf("error should contain body snippet: %v", err)
	}
}

func TestGetSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		io.WriteString(w, "ok")
	}))
	defer srv.Close()

	resp, err := Get(context.Background(), nil, srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Errorf("body = %q, want %q", body, "ok")
	}
	if gotUA != UserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, UserAgent)
	}
}

func TestGetDecompressesGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			io.WriteString(w, "plain")
			return
		}
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		io.WriteString(gz, `{"name":"demo"}`)
		gz.Close()
	}))
	defer srv.Close()

	resp, err := Get(context.Background(), NewClient(5*time.Second), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"name":"demo"}` {
		t.Errorf("body = %q, want decompressed JSON", body)
	}
}

func TestPostFormEncodes(t *testing.T) {
	var gotType, gotChat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		r.ParseForm()
		gotChat = r.FormValue("chat_id")
	}))
	defer srv.Close()

	resp, err := PostForm(context.Background(), nil, srv.URL, map[string][]string{"chat_id": {"42"}})
	if err != nil {
		t.Fatalf("PostForm: %v", err)
	}
	resp.Body.Close()
	if gotType != "application/x-www-form-urlencoded" || gotChat != "42" {
		t.Errorf("content-type = %q, chat_id = %q", gotType, gotChat)
	}
}
