package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ResolveRequests     atomic.Int64
	ResolveFailures     atomic.Int64
	TranscriptRequests  atomic.Int64
	TranscriptSuccesses atomic.Int64
	CaptionsDisabled    atomic.Int64
	NoTranscript        atomic.Int64
	VideoUnavailable    atomic.Int64
	RateLimited         atomic.Int64
	UnknownErrors       atomic.Int64
	PageFetches         atomic.Int64
	CaptionFetches      atomic.Int64
}

var metricKeys = []string{
	"resolve_requests", "resolve_failures",
	"transcript_requests", "transcript_successes",
	"errors_captions_disabled", "errors_no_transcript",
	"errors_video_unavailable", "errors_rate_limited", "errors_unknown",
	"youtube_page_fetches", "youtube_caption_fetches",
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"resolve_requests":         metrics.ResolveRequests.Load(),
		"resolve_failures":         metrics.ResolveFailures.Load(),
		"transcript_requests":      metrics.TranscriptRequests.Load(),
		"transcript_successes":     metrics.TranscriptSuccesses.Load(),
		"errors_captions_disabled": metrics.CaptionsDisabled.Load(),
		"errors_no_transcript":     metrics.NoTranscript.Load(),
		"errors_video_unavailable": metrics.VideoUnavailable.Load(),
		"errors_rate_limited":      metrics.RateLimited.Load(),
		"errors_unknown":           metrics.UnknownErrors.Load(),
		"youtube_page_fetches":     metrics.PageFetches.Load(),
		"youtube_caption_fetches":  metrics.CaptionFetches.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// IncrResolve records one resolve attempt and whether it failed.
func IncrResolve(ok bool) {
	metrics.ResolveRequests.Add(1)
	if !ok {
		metrics.ResolveFailures.Add(1)
	}
}

// IncrTranscriptError bumps the per-kind error counter. kind is a transcript.Kind string.
func IncrTranscriptError(kind string) {
	switch kind {
	case "captions_disabled":
		metrics.CaptionsDisabled.Add(1)
	case "no_transcript":
		metrics.NoTranscript.Add(1)
	case "video_unavailable":
		metrics.VideoUnavailable.Add(1)
	case "rate_limited":
		metrics.RateLimited.Add(1)
	default:
		metrics.UnknownErrors.Add(1)
	}
}

// Incrementors for sources/ and transcript/.
func IncrTranscriptRequests()  { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptSuccess()   { metrics.TranscriptSuccesses.Add(1) }
func IncrYouTubePageFetch()    { metrics.PageFetches.Add(1) }
func IncrYouTubeCaptionFetch() { metrics.CaptionFetches.Add(1) }
