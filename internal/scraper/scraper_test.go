package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func page(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(body))
	}
}

func TestArticleImageFromOpenGraph(t *testing.T) {
	ts := httptest.NewServer(page(`<html><head>
		<meta property="og:image" content="https://cdn.example.com/hero.jpg"/>
	</head><body>story</body></html>`))
	defer ts.Close()

	e := NewExtractor(2 * time.Second)
	got, err := e.ArticleImage(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("ArticleImage: %v", err)
	}
	if got != "https://cdn.example.com/hero.jpg" {
		t.Errorf("got %q", got)
	}
}

func TestArticleImageTwitterFallback(t *testing.T) {
	ts := httptest.NewServer(page(`<html><head>
		<meta name="twitter:image" content="https://cdn.example.com/tw.png"/>
	</head><body></body></html>`))
	defer ts.Close()

	e := NewExtractor(2 * time.Second)
	got, err := e.ArticleImage(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("ArticleImage: %v", err)
	}
	if got != "https://cdn.example.com/tw.png" {
		t.Errorf("got %q", got)
	}
}

func TestArticleImageNone(t *testing.T) {
	ts := httptest.NewServer(page(`<html><head><title>no previews</title></head></html>`))
	defer ts.Close()

	e := NewExtractor(2 * time.Second)
	got, err := e.ArticleImage(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("ArticleImage: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestArticleImageIgnoresRelativeURL(t *testing.T) {
	ts := httptest.NewServer(page(`<html><head>
		<meta property="og:image" content="/images/hero.jpg"/>
	</head></html>`))
	defer ts.Close()

	e := NewExtractor(2 * time.Second)
	got, err := e.ArticleImage(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("ArticleImage: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty for a relative URL", got)
	}
}

func TestArticleImageStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	e := NewExtractor(2 * time.Second)
	if _, err := e.ArticleImage(context.Background(), ts.URL); err == nil {
		t.Error("expected an error for a 404 page")
	}
}
