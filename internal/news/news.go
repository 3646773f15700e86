// Package news looks up the top headline for a topic via the Google News
// RSS search feed. No credentials are required.
package news

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"dailytip/internal/logger"
)

const defaultBaseURL = "https://news.google.com"

// Headline is one news result: title plus article link. Google News links
// often redirect to the publisher; they are kept as-is.
type Headline struct {
	Title string
	Link  string
}

type Client struct {
	BaseURL string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		http:    &http.Client{Timeout: timeout},
		log:     logger.With("news"),
	}
}

// Top returns the most relevant headline for the topic, or nil when the
// feed has no items. Network and parse failures come back as errors; the
// caller falls back to a tip post either way.
func (c *Client) Top(ctx context.Context, topic string) (*Headline, error) {
	feedURL := fmt.Sprintf("%s/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en",
		c.BaseURL, url.QueryEscape(topic))

	parser := gofeed.NewParser()
	parser.Client = c.http

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch news feed: %w", err)
	}
	if len(feed.Items) == 0 {
		c.log.Info("no news results", "topic", topic)
		return nil, nil
	}

	item := feed.Items[0]
	title := plainText(item.Title)
	link := strings.TrimSpace(item.Link)
	if title == "" || link == "" {
		return nil, nil
	}

	c.log.Debug("top headline", "topic", topic, "title", title)
	return &Headline{Title: title, Link: link}, nil
}

// plainText strips any HTML markup the feed embeds in a field.
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
