package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	HTTPPort        string
	MCPPort         string
	FetchTimeout    time.Duration
	YouTubeBaseURL  string // watch pages are fetched from here; tests point it at httptest
	MaxPageBytes    int64
	MaxCaptionBytes int64
	PreviewChars    int
	HTTPClient      *http.Client
	BrowserClient   *BrowserClient // nil = plain HTTPClient for YouTube
}

// DefaultYouTubeBaseURL is the public YouTube origin.
const DefaultYouTubeBaseURL = "https://www.youtube.com"

var cfg = Config{
	FetchTimeout:    30 * time.Second,
	YouTubeBaseURL:  DefaultYouTubeBaseURL,
	MaxPageBytes:    6 * 1024 * 1024,
	MaxCaptionBytes: 2 * 1024 * 1024,
	PreviewChars:    200,
	HTTPClient:      http.DefaultClient,
}

// Cfg exposes the engine configuration for sub-packages (sources, server).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
// Zero-valued fields fall back to the defaults.
func Init(c Config) {
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 30 * time.Second
	}
	if c.YouTubeBaseURL == "" {
		c.YouTubeBaseURL = DefaultYouTubeBaseURL
	}
	if c.MaxPageBytes <= 0 {
		c.MaxPageBytes = 6 * 1024 * 1024
	}
	if c.MaxCaptionBytes <= 0 {
		c.MaxCaptionBytes = 2 * 1024 * 1024
	}
	if c.PreviewChars <= 0 {
		c.PreviewChars = 200
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.FetchTimeout}
	}
	cfg = c
	Cfg = &cfg
}
