package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"dailytip/internal/app"
	"dailytip/internal/config"
	"dailytip/internal/logger"
	"dailytip/internal/server"
)

func main() {
	_ = godotenv.Load()
	logger.Init()

	dryRun := flag.Bool("dry-run", false, "Generate content and print without posting")
	noImage := flag.Bool("no-image", false, "Do not generate or attach an image")
	tipsFile := flag.String("tips-file", "", "Path to a newline-delimited tips file")
	imageSource := flag.String("image-source", "generated", "Image source: generated, google, or none")
	imageQuery := flag.String("image-query", "", "Query for fetching an image with -image-source google")
	newsTopic := flag.String("news-topic", "", "If set, post news for this topic instead of a coding tip")
	listen := flag.String("listen", "", "Run as an HTTP trigger on this address instead of one-shot (e.g. :8080)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	a := app.New(cfg)

	if *listen != "" {
		srv := server.New(a)
		logger.Info("listening", "addr", *listen)
		if err := http.ListenAndServe(*listen, srv.Router()); err != nil {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
		return
	}

	result := a.Run(context.Background(), app.Options{
		DryRun:      *dryRun,
		NoImage:     *noImage,
		TipsFile:    *tipsFile,
		ImageSource: *imageSource,
		ImageQuery:  *imageQuery,
		NewsTopic:   *newsTopic,
	})

	if result.DryRun {
		fmt.Println("[DRY RUN] Would post tweet:")
		fmt.Println()
		fmt.Println(result.Text)
		fmt.Println()
		if result.MediaPath != "" {
			fmt.Printf("[DRY RUN] Image generated at: %s\n", result.MediaPath)
		} else {
			fmt.Println("[DRY RUN] No image attached.")
		}
		return
	}

	if !result.OK {
		logger.Error("failed to post tweet", "error", result.Error)
		os.Exit(1)
	}
	logger.Info("tweet posted successfully", "media", result.MediaPath)
}
