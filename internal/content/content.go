// Package content decides what a run posts: the day's coding tip, or a
// news headline with a mandatory tip fallback.
package content

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"dailytip/internal/compose"
	"dailytip/internal/logger"
	"dailytip/internal/metrics"
	"dailytip/internal/news"
	"dailytip/internal/tips"
)

type Kind string

const (
	KindTip  Kind = "tip"
	KindNews Kind = "news"
)

// newsSeedSpace sizes the bucket space for news image seeds, where no tip
// index exists to reuse.
const newsSeedSpace = 1000

// Result is the single content record for one run. Both the poster and the
// media resolver consume it, so selection happens exactly once.
type Result struct {
	Kind  Kind
	Text  string
	Query string

	// CardText is what the generated image renders when media falls back
	// to the composer.
	CardText string

	// Seed drives the generated card's palette; stable for a given day.
	Seed int64

	Headline *news.Headline
}

// Lookup is the news collaborator boundary.
type Lookup interface {
	Top(ctx context.Context, topic string) (*news.Headline, error)
}

type Source struct {
	TipsFile    string
	TipHashtags string
	News        Lookup
	Now         func() time.Time

	log *slog.Logger
}

func NewSource(tipsFile, tipHashtags string, lookup Lookup) *Source {
	return &Source{
		TipsFile:    tipsFile,
		TipHashtags: tipHashtags,
		News:        lookup,
		Now:         time.Now,
		log:         logger.With("content"),
	}
}

// Resolve produces the run's content. An empty topic selects the day's
// tip. A non-empty topic asks the news collaborator; any failure or empty
// answer falls back to the tip, never to an error.
func (s *Source) Resolve(ctx context.Context, topic, imageQuery string) Result {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return s.resolveTip(imageQuery)
	}

	headline, err := s.lookupNews(ctx, topic)
	if err != nil {
		s.log.Warn("news lookup failed, falling back to tip", "topic", topic, "error", err)
		metrics.Global.IncrementNewsFallbacks()
		return s.resolveTip(imageQuery)
	}
	if headline == nil {
		s.log.Info("no headline for topic, falling back to tip", "topic", topic)
		metrics.Global.IncrementNewsFallbacks()
		return s.resolveTip(imageQuery)
	}

	metrics.Global.IncrementNewsPosts()
	return Result{
		Kind:     KindNews,
		Text:     compose.NewsText(headline.Title, headline.Link, topic),
		Query:    compose.ImageQuery(imageQuery, headline.Title, topic),
		CardText: headline.Title,
		Seed:     int64(tips.Index(newsSeedSpace, s.Now())),
		Headline: headline,
	}
}

func (s *Source) resolveTip(imageQuery string) Result {
	list := tips.LoadOrDefault(s.TipsFile)
	idx := tips.Index(len(list), s.Now())
	tip := list[idx]

	metrics.Global.IncrementTipsSelected()
	return Result{
		Kind:     KindTip,
		Text:     compose.TipText(tip, s.TipHashtags),
		Query:    compose.ImageQuery(imageQuery, tip),
		CardText: tip,
		Seed:     int64(idx),
	}
}

func (s *Source) lookupNews(ctx context.Context, topic string) (*news.Headline, error) {
	if s.News == nil {
		return nil, nil
	}
	return s.News.Top(ctx, topic)
}
