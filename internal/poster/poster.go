// Package poster publishes the finished post to X (Twitter). Credentials
// are validated by name before any network call is attempted.
package poster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"dailytip/internal/logger"
)

const (
	defaultUploadURL = "https://upload.twitter.com/1.1/media/upload.json"
	defaultTweetURL  = "https://api.twitter.com/2/tweets"
)

// Credentials holds the four OAuth1 secrets the X API requires.
type Credentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

func CredentialsFromEnv() Credentials {
	return Credentials{
		APIKey:       os.Getenv("TWITTER_API_KEY"),
		APISecret:    os.Getenv("TWITTER_API_SECRET"),
		AccessToken:  os.Getenv("TWITTER_ACCESS_TOKEN"),
		AccessSecret: os.Getenv("TWITTER_ACCESS_TOKEN_SECRET"),
	}
}

// Validate reports every missing secret by its environment variable name.
func (c Credentials) Validate() error {
	var missing []string
	for _, v := range []struct {
		name  string
		value string
	}{
		{"TWITTER_API_KEY", c.APIKey},
		{"TWITTER_API_SECRET", c.APISecret},
		{"TWITTER_ACCESS_TOKEN", c.AccessToken},
		{"TWITTER_ACCESS_TOKEN_SECRET", c.AccessSecret},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

type Client struct {
	creds   Credentials
	timeout time.Duration

	// Overridable in tests.
	UploadURL string
	TweetURL  string

	log *slog.Logger
}

func NewClient(creds Credentials, timeout time.Duration) *Client {
	return &Client{
		creds:     creds,
		timeout:   timeout,
		UploadURL: defaultUploadURL,
		TweetURL:  defaultTweetURL,
		log:       logger.With("poster"),
	}
}

// Post publishes text with an optional local media file. A single attempt,
// no retries; the caller surfaces any failure as the run's result.
func (c *Client) Post(ctx context.Context, text, mediaPath string) error {
	if err := c.creds.Validate(); err != nil {
		return err
	}

	config := oauth1.NewConfig(c.creds.APIKey, c.creds.APISecret)
	token := oauth1.NewToken(c.creds.AccessToken, c.creds.AccessSecret)
	httpClient := config.Client(ctx, token)
	httpClient.Timeout = c.timeout

	var mediaIDs []string
	if mediaPath != "" {
		id, err := c.uploadMedia(ctx, httpClient, mediaPath)
		if err != nil {
			return fmt.Errorf("upload media: %w", err)
		}
		mediaIDs = append(mediaIDs, id)
	}

	if err := c.createTweet(ctx, httpClient, text, mediaIDs); err != nil {
		return fmt.Errorf("create tweet: %w", err)
	}

	c.log.Info("tweet posted", "length", len(text), "media", mediaPath != "")
	return nil
}

func (c *Client) uploadMedia(ctx context.Context, httpClient *http.Client, mediaPath string) (string, error) {
	f, err := os.Open(mediaPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("media", filepath.Base(mediaPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("media upload status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var result struct {
		MediaIDString string `json:"media_id_string"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if result.MediaIDString == "" {
		return "", fmt.Errorf("upload response had no media id")
	}
	return result.MediaIDString, nil
}

func (c *Client) createTweet(ctx context.Context, httpClient *http.Client, text string, mediaIDs []string) error {
	payload := map[string]interface{}{
		"text": text,
	}
	if len(mediaIDs) > 0 {
		payload["media"] = map[string]interface{}{
			"media_ids": mediaIDs,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode tweet payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TweetURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tweet status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return nil
}
