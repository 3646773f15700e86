// Package media resolves the post's image through a fallback chain:
// external search, article preview scrape (news only), generated card.
// Every stage failure degrades to the next; only a missing renderer ends
// the chain with no image, which is a valid outcome rather than an error.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"dailytip/internal/logger"
	"dailytip/internal/metrics"
)

type Source string

const (
	SourceGenerated Source = "generated"
	SourceGoogle    Source = "google"
	SourceNone      Source = "none"
)

// ParseSource maps a CLI/query value onto a Source; unknown values fall
// back to the generated card.
func ParseSource(s string) Source {
	switch Source(s) {
	case SourceGoogle:
		return SourceGoogle
	case SourceNone:
		return SourceNone
	default:
		return SourceGenerated
	}
}

// Searcher is the external image-search collaborator boundary.
type Searcher interface {
	Fetch(ctx context.Context, query, outputPath string) (string, error)
}

// Renderer is the card composer boundary. A nil Renderer models the
// rendering backend being unavailable.
type Renderer interface {
	Render(text string, seed int64, outputPath string) (string, error)
}

// PageImager extracts a preview image URL from an article page.
type PageImager interface {
	ArticleImage(ctx context.Context, url string) (string, error)
}

// Request carries everything one resolution needs. Query seeds the search,
// CardText and Seed feed the generated fallback, ArticleURL enables the
// scrape stage for news posts.
type Request struct {
	Query      string
	CardText   string
	Seed       int64
	ArticleURL string
	Source     Source
	Disabled   bool
}

type Resolver struct {
	Search Searcher
	Render Renderer
	Pages  PageImager

	tempDir  string
	download *http.Client
	log      *slog.Logger
}

func NewResolver(search Searcher, render Renderer, pages PageImager, tempDir string, downloadTimeout time.Duration) *Resolver {
	return &Resolver{
		Search:   search,
		Render:   render,
		Pages:    pages,
		tempDir:  tempDir,
		download: &http.Client{Timeout: downloadTimeout},
		log:      logger.With("media"),
	}
}

// Resolve walks the chain and returns a local image path, or "" for no
// image. It never returns an error: failures only shorten the chain.
func (r *Resolver) Resolve(ctx context.Context, req Request) string {
	if req.Disabled || req.Source == SourceNone {
		return ""
	}

	// Each run writes to its own path so overlapping runs cannot clobber
	// one another's media before upload.
	outputPath := r.outputPath()

	if req.Source == SourceGoogle {
		if path := r.fetchExternal(ctx, req, outputPath); path != "" {
			return path
		}
		r.log.Info("external image lookup missed, falling back to generated card")
	}

	return r.renderCard(req, outputPath)
}

func (r *Resolver) fetchExternal(ctx context.Context, req Request, outputPath string) string {
	if r.Search != nil {
		path, err := r.Search.Fetch(ctx, req.Query, outputPath)
		if err != nil {
			r.log.Warn("image search failed", "query", req.Query, "error", err)
		}
		if path != "" {
			metrics.Global.IncrementImagesDownloaded()
			return path
		}
	}

	// News posts carry an article link; its social-preview image is a
	// better match than a generated card.
	if req.ArticleURL != "" && r.Pages != nil {
		imageURL, err := r.Pages.ArticleImage(ctx, req.ArticleURL)
		if err != nil {
			r.log.Warn("article image scrape failed", "url", req.ArticleURL, "error", err)
			return ""
		}
		if imageURL == "" {
			return ""
		}
		if err := r.downloadTo(ctx, imageURL, outputPath); err != nil {
			r.log.Warn("article image download failed", "url", imageURL, "error", err)
			return ""
		}
		metrics.Global.IncrementImagesDownloaded()
		return outputPath
	}

	return ""
}

func (r *Resolver) renderCard(req Request, outputPath string) string {
	if r.Render == nil {
		r.log.Warn("renderer unavailable, posting without image")
		return ""
	}

	path, err := r.Render.Render(req.CardText, req.Seed, outputPath)
	if err != nil {
		r.log.Error("card rendering failed", "error", err)
		return ""
	}
	metrics.Global.IncrementImagesGenerated()
	return path
}

func (r *Resolver) outputPath() string {
	return filepath.Join(r.tempDir, "dailytip-"+uuid.NewString()+".jpg")
}

func (r *Resolver) downloadTo(ctx context.Context, imageURL, outputPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	resp, err := r.download.Do(req)
	if err != nil {
		return fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download image: status %d", resp.StatusCode)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}
