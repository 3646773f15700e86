package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dailytip/internal/config"
	"dailytip/internal/imagegen"
	"dailytip/internal/media"
	"dailytip/internal/news"
)

type stubPoster struct {
	err       error
	calls     int
	lastText  string
	lastMedia string
}

func (p *stubPoster) Post(ctx context.Context, text, mediaPath string) error {
	p.calls++
	p.lastText = text
	p.lastMedia = mediaPath
	return p.err
}

type failingLookup struct{}

func (failingLookup) Top(ctx context.Context, topic string) (*news.Headline, error) {
	return nil, errors.New("feed unreachable")
}

func writeTips(t *testing.T, tips ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tips.txt")
	if err := os.WriteFile(path, []byte(strings.Join(tips, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testApp(t *testing.T, tipsFile string) (*App, *stubPoster) {
	t.Helper()
	cfg := &config.Config{
		TipsFile:        tipsFile,
		Content:         config.DefaultContent(),
		TempDir:         t.TempDir(),
		RequestTimeout:  time.Second,
		DownloadTimeout: time.Second,
	}
	poster := &stubPoster{}
	return &App{
		Config: cfg,
		Media:  media.NewResolver(nil, nil, nil, cfg.TempDir, time.Second),
		Poster: poster,
	}, poster
}

func TestDryRunEndToEnd(t *testing.T) {
	tip := "Write tests for edge cases first. They define behavior."
	a, poster := testApp(t, writeTips(t, tip))

	result := a.Run(context.Background(), Options{DryRun: true, NoImage: true})

	if !result.OK {
		t.Errorf("ok = false: %s", result.Error)
	}
	if !result.DryRun {
		t.Error("dry_run flag not set")
	}
	if result.MediaPath != "" {
		t.Errorf("media path = %q, want none", result.MediaPath)
	}
	want := tip + "\n\n#coding #programming #devtips"
	if result.Text != want {
		t.Errorf("text = %q, want %q", result.Text, want)
	}
	if poster.calls != 0 {
		t.Errorf("dry run called the poster %d times", poster.calls)
	}
}

func TestNewsLookupFailureFallsBackToTip(t *testing.T) {
	tip := "Prefer pure functions; minimize shared state."
	a, _ := testApp(t, writeTips(t, tip))
	a.News = failingLookup{}

	result := a.Run(context.Background(), Options{DryRun: true, NoImage: true, NewsTopic: "golang"})

	if !result.OK {
		t.Fatalf("fallback run failed: %s", result.Error)
	}
	if !strings.HasPrefix(result.Text, tip) {
		t.Errorf("expected tip fallback, got %q", result.Text)
	}
}

func TestPostFailureSurfaces(t *testing.T) {
	a, poster := testApp(t, writeTips(t, "a tip"))
	poster.err = errors.New("missing required environment variables: TWITTER_API_KEY")

	result := a.Run(context.Background(), Options{NoImage: true})

	if result.OK {
		t.Error("ok = true despite post failure")
	}
	if result.Error == "" || !strings.Contains(result.Error, "TWITTER_API_KEY") {
		t.Errorf("error = %q", result.Error)
	}
	if result.Text == "" {
		t.Error("failed run should still report the composed text")
	}
}

func TestSuccessfulRunPostsOnce(t *testing.T) {
	a, poster := testApp(t, writeTips(t, "a tip"))

	result := a.Run(context.Background(), Options{NoImage: true})

	if !result.OK {
		t.Fatalf("run failed: %s", result.Error)
	}
	if poster.calls != 1 {
		t.Errorf("poster called %d times, want 1", poster.calls)
	}
	if poster.lastText != result.Text {
		t.Errorf("poster text %q != result text %q", poster.lastText, result.Text)
	}
}

func TestGeneratedImageAttached(t *testing.T) {
	a, _ := testApp(t, writeTips(t, "a tip"))
	content := config.DefaultContent()
	content.FontPaths = nil
	a.Media = media.NewResolver(nil, imagegen.NewComposer(content), nil, t.TempDir(), time.Second)

	result := a.Run(context.Background(), Options{DryRun: true, ImageSource: "generated"})

	if result.MediaPath == "" {
		t.Fatal("expected a generated media path")
	}
	if _, err := os.Stat(result.MediaPath); err != nil {
		t.Errorf("media file missing: %v", err)
	}
}

func TestTipsFileOptionOverridesConfig(t *testing.T) {
	a, _ := testApp(t, writeTips(t, "config tip"))
	override := writeTips(t, "override tip")

	result := a.Run(context.Background(), Options{DryRun: true, NoImage: true, TipsFile: override})

	if !strings.HasPrefix(result.Text, "override tip") {
		t.Errorf("text = %q, want the override tip", result.Text)
	}
}
