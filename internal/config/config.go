package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Content settings
	TipsFile          string
	ContentConfigPath string
	Content           ContentConfig

	// Google Custom Search (image lookup)
	GoogleAPIKey       string
	GoogleCSEID        string
	GoogleRightsFilter string

	// Media settings
	TempDir string

	// App settings
	Debug           bool
	RequestTimeout  time.Duration
	DownloadTimeout time.Duration
}

// ContentConfig holds the cosmetic constants of a post and the generated
// card. Every field has a built-in default so the YAML file is optional.
type ContentConfig struct {
	TipHashtags string   `yaml:"tip_hashtags"`
	HeaderLabel string   `yaml:"header_label"`
	Footer      string   `yaml:"footer"`
	FontPaths   []string `yaml:"font_paths"`
	BaseHues    []int    `yaml:"base_hues"`
}

// DefaultContent returns the stock post cosmetics.
func DefaultContent() ContentConfig {
	return ContentConfig{
		TipHashtags: "\n\n#coding #programming #devtips",
		HeaderLabel: "Code Tip",
		Footer:      "#coding  #programming  #devtips",
		FontPaths: []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
			"/System/Library/Fonts/SFNS.ttf",
		},
		BaseHues: []int{200, 220, 260, 300, 180, 160, 210},
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		TipsFile:          filepath.Join("content", "coding_tips.txt"),
		ContentConfigPath: filepath.Join("configs", "content.yaml"),
		RequestTimeout:    15 * time.Second,
		DownloadTimeout:   20 * time.Second,
	}

	// Load from environment
	cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	cfg.GoogleCSEID = os.Getenv("GOOGLE_CSE_ID")
	cfg.GoogleRightsFilter = os.Getenv("GOOGLE_IMAGE_RIGHTS_FILTER")

	cfg.TipsFile = getEnvOrDefault("TIPS_FILE", cfg.TipsFile)
	cfg.ContentConfigPath = getEnvOrDefault("CONTENT_CONFIG_PATH", cfg.ContentConfigPath)

	// RUNNER_TEMP comes from CI runners; fall back to the system temp dir
	cfg.TempDir = getEnvOrDefault("RUNNER_TEMP", os.TempDir())

	if v := getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("DOWNLOAD_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.DownloadTimeout = time.Duration(v) * time.Second
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	cfg.Content = LoadContent(cfg.ContentConfigPath)

	return cfg, nil
}

// LoadContent reads the optional YAML content config. A missing or broken
// file yields the defaults; fields absent from the file keep their default.
func LoadContent(path string) ContentConfig {
	content := DefaultContent()

	f, err := os.Open(path)
	if err != nil {
		return content
	}
	defer f.Close()

	var loaded ContentConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&loaded); err != nil {
		return content
	}

	if loaded.TipHashtags != "" {
		content.TipHashtags = loaded.TipHashtags
	}
	if loaded.HeaderLabel != "" {
		content.HeaderLabel = loaded.HeaderLabel
	}
	if loaded.Footer != "" {
		content.Footer = loaded.Footer
	}
	if len(loaded.FontPaths) > 0 {
		content.FontPaths = loaded.FontPaths
	}
	if len(loaded.BaseHues) > 0 {
		content.BaseHues = loaded.BaseHues
	}

	return content
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
