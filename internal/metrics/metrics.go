package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	TipsSelected     int64
	NewsPosts        int64
	NewsFallbacks    int64
	ImagesGenerated  int64
	ImagesDownloaded int64
	TweetsPosted     int64
	PostFailures     int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementTipsSelected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TipsSelected++
}

func (m *Metrics) IncrementNewsPosts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NewsPosts++
}

func (m *Metrics) IncrementNewsFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NewsFallbacks++
}

func (m *Metrics) IncrementImagesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImagesGenerated++
}

func (m *Metrics) IncrementImagesDownloaded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImagesDownloaded++
}

func (m *Metrics) IncrementTweetsPosted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TweetsPosted++
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PostFailures++
	m.LastErrorTime = time.Now()
	m.LastError = err
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"tips_selected":     m.TipsSelected,
		"news_posts":        m.NewsPosts,
		"news_fallbacks":    m.NewsFallbacks,
		"images_generated":  m.ImagesGenerated,
		"images_downloaded": m.ImagesDownloaded,
		"tweets_posted":     m.TweetsPosted,
		"post_failures":     m.PostFailures,
		"last_run_time":     m.LastRunTime,
		"last_error_time":   m.LastErrorTime,
		"last_error":        m.LastError,
		"is_healthy":        m.IsHealthy,
	}
}
