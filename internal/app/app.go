// Package app assembles one daily post: content, media, then posting.
package app

import (
	"context"

	"dailytip/internal/config"
	"dailytip/internal/content"
	"dailytip/internal/imagegen"
	"dailytip/internal/imagesearch"
	"dailytip/internal/media"
	"dailytip/internal/metrics"
	"dailytip/internal/news"
	"dailytip/internal/poster"
	"dailytip/internal/scraper"
)

// Options mirrors the CLI flags and the HTTP trigger's query parameters.
type Options struct {
	DryRun      bool
	NoImage     bool
	TipsFile    string
	ImageSource string
	ImageQuery  string
	NewsTopic   string
}

// Result is the externally observable outcome of one run.
type Result struct {
	OK        bool   `json:"ok"`
	DryRun    bool   `json:"dry_run"`
	Text      string `json:"tweet_text"`
	MediaPath string `json:"media_path,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Poster is the posting collaborator boundary.
type Poster interface {
	Post(ctx context.Context, text, mediaPath string) error
}

type App struct {
	Config *config.Config
	News   content.Lookup
	Media  *media.Resolver
	Poster Poster
}

// New wires the production collaborators.
func New(cfg *config.Config) *App {
	search := imagesearch.NewClient(cfg.GoogleAPIKey, cfg.GoogleCSEID, cfg.GoogleRightsFilter, cfg.DownloadTimeout)
	composer := imagegen.NewComposer(cfg.Content)
	pages := scraper.NewExtractor(cfg.RequestTimeout)

	return &App{
		Config: cfg,
		News:   news.NewClient(cfg.RequestTimeout),
		Media:  media.NewResolver(search, composer, pages, cfg.TempDir, cfg.DownloadTimeout),
		Poster: poster.NewClient(poster.CredentialsFromEnv(), cfg.RequestTimeout),
	}
}

// Run performs a single post cycle. Content and media resolution never
// fail the run; only the posting collaborator can, and a dry run skips it
// entirely.
func (a *App) Run(ctx context.Context, opts Options) Result {
	tipsFile := opts.TipsFile
	if tipsFile == "" {
		tipsFile = a.Config.TipsFile
	}

	source := content.NewSource(tipsFile, a.Config.Content.TipHashtags, a.News)
	resolved := source.Resolve(ctx, opts.NewsTopic, opts.ImageQuery)

	request := media.Request{
		Query:    resolved.Query,
		CardText: resolved.CardText,
		Seed:     resolved.Seed,
		Source:   media.ParseSource(opts.ImageSource),
		Disabled: opts.NoImage,
	}
	if resolved.Headline != nil {
		request.ArticleURL = resolved.Headline.Link
	}
	mediaPath := a.Media.Resolve(ctx, request)

	if opts.DryRun {
		metrics.Global.SetLastRun()
		return Result{OK: true, DryRun: true, Text: resolved.Text, MediaPath: mediaPath}
	}

	if err := a.Poster.Post(ctx, resolved.Text, mediaPath); err != nil {
		metrics.Global.SetError(err.Error())
		return Result{DryRun: false, Text: resolved.Text, MediaPath: mediaPath, Error: err.Error()}
	}

	metrics.Global.IncrementTweetsPosted()
	metrics.Global.SetLastRun()
	return Result{OK: true, Text: resolved.Text, MediaPath: mediaPath}
}
