package engine

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestInitDefaults(t *testing.T) {
	saved := cfg
	defer Init(saved)

	Init(Config{})
	if Cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s", Cfg.FetchTimeout)
	}
	if Cfg.YouTubeBaseURL != DefaultYouTubeBaseURL {
		t.Errorf("YouTubeBaseURL = %q", Cfg.YouTubeBaseURL)
	}
	if Cfg.HTTPClient == nil || Cfg.HTTPClient.Timeout != 30*time.Second {
		t.Errorf("HTTPClient not defaulted: %+v", Cfg.HTTPClient)
	}
	if Cfg.MaxPageBytes <= 0 || Cfg.MaxCaptionBytes <= 0 {
		t.Errorf("byte limits not defaulted: %d %d", Cfg.MaxPageBytes, Cfg.MaxCaptionBytes)
	}

	hc := &http.Client{}
	Init(Config{YouTubeBaseURL: "http://127.0.0.1:1", HTTPClient: hc, FetchTimeout: time.Second})
	if Cfg.YouTubeBaseURL != "http://127.0.0.1:1" || Cfg.HTTPClient != hc || Cfg.FetchTimeout != time.Second {
		t.Errorf("explicit values overwritten: %+v", *Cfg)
	}
}

func TestCaptionText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"don&#39;t", "don't"},
		{"<i>italic</i> text", "italic text"},
		{"&lt;b&gt;bold&lt;/b&gt;", "bold"},
		{"  spaced\nline ", "  spaced\nline "},
	}
	for _, tt := range tests {
		if got := CaptionText(tt.in); got != tt.want {
			t.Errorf("CaptionText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMetrics(t *testing.T) {
	IncrResolve(true)
	IncrResolve(false)
	IncrTranscriptError("rate_limited")
	IncrTranscriptError("something else")

	m := GetMetrics()
	if m["resolve_requests"] < 2 || m["resolve_failures"] < 1 {
		t.Errorf("resolve counters not bumped: %v", m)
	}
	if m["errors_rate_limited"] < 1 || m["errors_unknown"] < 1 {
		t.Errorf("error counters not bumped: %v", m)
	}

	text := FormatMetrics()
	for _, k := range metricKeys {
		if !strings.Contains(text, k+" ") {
			t.Errorf("FormatMetrics() missing %q", k)
		}
	}
	if len(m) != len(metricKeys) {
		t.Errorf("GetMetrics has %d keys, metricKeys has %d", len(m), len(metricKeys))
	}
}
