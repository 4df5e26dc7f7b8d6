// go_transcript: YouTube transcript HTTP + MCP server.
//
// Exposes GET /api?video_id=<id or URL> returning {"transcript": "..."} and an MCP tool,
// youtube_transcript, backed by the same resolver and retriever.
package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/server"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version  = "dev"
	httpPort = env.Str("HTTP_PORT", "8892")
	mcpPort  = env.Str("MCP_PORT", "8891")
)

func main() {
	initLogging(env.Str("LOG_LEVEL", "info"))
	initEngine()

	slog.Info("starting go_transcript",
		slog.String("http_port", httpPort),
		slog.String("mcp_port", mcpPort),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	retriever := transcript.NewRetriever(sources.NewYouTube())

	api := server.New(net.JoinHostPort("", httpPort), retriever, slog.Default())
	if err := api.Start(ctx); err != nil {
		slog.Error("api server failed", slog.Any("error", err))
		os.Exit(1)
	}

	mcpSrv := mcp.NewServer(&mcp.Implementation{
		Name:    "go_transcript",
		Version: version,
	}, nil)
	server.RegisterTools(mcpSrv, retriever)
	slog.Info("tools registered", slog.Int("count", 1))

	if err := mcpserver.Run(mcpSrv, mcpserver.Config{
		Name:         "go_transcript",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: engine.Cfg.FetchTimeout + 30*time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
	api.Stop()
}

func initLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func initEngine() {
	fetchTimeout := env.Duration("FETCH_TIMEOUT", 30*time.Second)
	c := engine.Config{
		HTTPPort:        httpPort,
		MCPPort:         mcpPort,
		FetchTimeout:    fetchTimeout,
		YouTubeBaseURL:  env.Str("YOUTUBE_BASE_URL", engine.DefaultYouTubeBaseURL),
		MaxPageBytes:    int64(env.Int("MAX_PAGE_BYTES", 6*1024*1024)),
		MaxCaptionBytes: int64(env.Int("MAX_CAPTION_BYTES", 2*1024*1024)),
		PreviewChars:    env.Int("LOG_PREVIEW_CHARS", 200),
		HTTPClient: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	if env.Str("STEALTH_DISABLED", "") != "1" {
		c.BrowserClient = newBrowserClient(fetchTimeout)
	}

	engine.Init(c)
}

// newBrowserClient builds the Chrome-fingerprint client, optionally behind a proxy pool.
// Returns nil on failure so YouTube requests fall back to the plain http.Client.
func newBrowserClient(timeout time.Duration) *engine.BrowserClient {
	var opts []stealth.ClientOption
	opts = append(opts, stealth.WithTimeout(int(timeout/time.Second)))

	if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Error("stealth client init failed", slog.Any("error", err))
		return nil
	}
	slog.Info("stealth browser client initialized")
	return bc
}
