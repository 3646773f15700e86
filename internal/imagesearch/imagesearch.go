// Package imagesearch finds a topical photo via the Google Custom Search
// JSON API and downloads it. Credentials are optional; without them every
// lookup is a soft miss and the caller falls back to a generated card.
package imagesearch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"dailytip/internal/logger"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png"}

type Client struct {
	apiKey       string
	cseID        string
	rightsFilter string

	download *http.Client
	log      *slog.Logger
}

func NewClient(apiKey, cseID, rightsFilter string, downloadTimeout time.Duration) *Client {
	return &Client{
		apiKey:       apiKey,
		cseID:        cseID,
		rightsFilter: rightsFilter,
		download:     &http.Client{Timeout: downloadTimeout},
		log:          logger.With("imagesearch"),
	}
}

// Configured reports whether both credentials are present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.cseID != ""
}

// Fetch searches for query, downloads the first acceptable result to
// outputPath and returns the path. A miss (no credentials, no results)
// returns "" with no error; network problems return an error. Either way
// the caller degrades to the next media stage.
func (c *Client) Fetch(ctx context.Context, query, outputPath string) (string, error) {
	if !c.Configured() {
		c.log.Info("google custom search not configured, skipping image fetch")
		return "", nil
	}

	candidates, err := c.search(ctx, query)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		c.log.Info("no image results", "query", query)
		return "", nil
	}

	if err := c.downloadTo(ctx, candidates[0], outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

// search returns candidate image URLs, direct image links first. When no
// link carries an image extension the raw results are used as-is.
func (c *Client) search(ctx context.Context, query string) ([]string, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("create search service: %w", err)
	}

	call := svc.Cse.List().
		Cx(c.cseID).
		Q(query).
		SearchType("image").
		Safe("active").
		Num(10).
		Context(ctx)
	if c.rightsFilter != "" {
		call = call.Rights(c.rightsFilter)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("image search: %w", err)
	}

	var direct, raw []string
	for _, item := range resp.Items {
		if item.Link == "" {
			continue
		}
		raw = append(raw, item.Link)
		if hasImageExtension(item.Link) {
			direct = append(direct, item.Link)
		}
	}
	if len(direct) > 0 {
		return direct, nil
	}
	return raw, nil
}

func (c *Client) downloadTo(ctx context.Context, imageURL, outputPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	resp, err := c.download.Do(req)
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
	c.log.Info("downloaded image", "url", imageURL, "path", outputPath)
	return nil
}

func hasImageExtension(link string) bool {
	lower := strings.ToLower(link)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
