package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

// YouTube transcript fetching.
// Watch page → ytInitialPlayerResponse → captionTracks → timedtext XML.

var errNoPlayerResponse = errors.New("ytInitialPlayerResponse not found in watch page")

// YouTube fetches captions from public YouTube watch pages. It implements transcript.Provider.
type YouTube struct{}

// NewYouTube returns a provider that reads engine.Cfg on every call.
func NewYouTube() *YouTube {
	return &YouTube{}
}

// Fetch returns the caption entries of videoID in language, in page order.
func (y *YouTube) Fetch(ctx context.Context, videoID, language string) ([]transcript.Entry, error) {
	watchURL := strings.TrimRight(engine.Cfg.YouTubeBaseURL, "/") + "/watch?v=" + url.QueryEscape(videoID)

	engine.IncrYouTubePageFetch()
	body, status, err := ytGet(ctx, watchURL, engine.Cfg.MaxPageBytes)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	if status == http.StatusTooManyRequests {
		return nil, fmt.Errorf("watch page HTTP %d: %w", status, transcript.ErrTooManyRequests)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("watch page: HTTP %d", status)
	}
	if bytes.Contains(body, []byte(ytRecaptchaMarker)) {
		return nil, fmt.Errorf("watch page requires captcha: %w", transcript.ErrTooManyRequests)
	}

	player, err := parsePlayerResponse(body)
	if errors.Is(err, errNoPlayerResponse) {
		return nil, fmt.Errorf("%s: %w", videoID, transcript.ErrVideoUnavailable)
	}
	if err != nil {
		return nil, err
	}

	tracks, err := captionTracks(player)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", videoID, err)
	}

	track, err := pickTrack(tracks, language)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", videoID, err)
	}

	entries, err := fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	slog.Debug("youtube: transcript fetched",
		slog.String("id", videoID),
		slog.String("lang", track.LanguageCode),
		slog.Bool("asr", track.Kind == ytKindASR),
		slog.Int("entries", len(entries)))
	return entries, nil
}

// parsePlayerResponse walks the watch page scripts and decodes ytInitialPlayerResponse.
func parsePlayerResponse(page []byte) (*playerResponse, error) {
	z := html.NewTokenizer(bytes.NewReader(page))
	inScript := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return nil, errNoPlayerResponse
		case html.StartTagToken:
			name, _ := z.TagName()
			inScript = string(name) == "script"
		case html.EndTagToken:
			inScript = false
		case html.TextToken:
			if !inScript {
				continue
			}
			text := z.Text()
			idx := bytes.Index(text, []byte(ytInitialPlayerResponseMarker))
			if idx < 0 {
				continue
			}
			raw := extractJSON(text[idx+len(ytInitialPlayerResponseMarker):])
			if raw == nil {
				return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
			}
			var pr playerResponse
			if err := json.Unmarshal(raw, &pr); err != nil {
				return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
			}
			if pr.PlayabilityStatus == nil {
				return nil, errNoPlayerResponse
			}
			return &pr, nil
		}
	}
}

// captionTracks maps a player response without usable captions onto provider conditions.
func captionTracks(pr *playerResponse) ([]captionTrack, error) {
	status := pr.PlayabilityStatus.Status
	if pr.Captions == nil {
		if status != ytPlayabilityOK {
			return nil, fmt.Errorf("playability %s %q: %w", status, pr.PlayabilityStatus.Reason, transcript.ErrVideoUnavailable)
		}
		return nil, fmt.Errorf("no captions in player response: %w", transcript.ErrTranscriptsDisabled)
	}
	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no caption tracks: %w", transcript.ErrTranscriptsDisabled)
	}
	return tracks, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickTrack selects the track for lang: manual first, then auto-generated.
// Skips tracks that require PoToken: those only work in a browser.
func pickTrack(tracks []captionTrack, lang string) (captionTrack, error) {
	var manual, generated []captionTrack
	available := make([]string, 0, len(tracks))
	for _, t := range tracks {
		available = append(available, t.LanguageCode)
		if t.LanguageCode != lang {
			continue
		}
		if t.Kind == ytKindASR {
			generated = append(generated, t)
		} else {
			manual = append(manual, t)
		}
	}
	candidates := append(manual, generated...)
	if len(candidates) == 0 {
		return captionTrack{}, fmt.Errorf("language %q not in [%s]: %w",
			lang, strings.Join(available, ", "), transcript.ErrNoTranscript)
	}
	for _, t := range candidates {
		if !needsPoToken(t.BaseURL) {
			return t, nil
		}
	}
	return captionTrack{}, errors.New("all caption tracks require PoToken")
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
func fetchTimedText(ctx context.Context, baseURL string) ([]transcript.Entry, error) {
	engine.IncrYouTubeCaptionFetch()
	body, status, err := ytGet(ctx, strings.Replace(baseURL, "&fmt=srv3", "", 1), engine.Cfg.MaxCaptionBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	if status == http.StatusTooManyRequests {
		return nil, fmt.Errorf("timedtext HTTP %d: %w", status, transcript.ErrTooManyRequests)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("timedtext: HTTP %d", status)
	}
	return parseTimedText(body)
}

// parseTimedText decodes <text start dur> elements in document order.
func parseTimedText(body []byte) ([]transcript.Entry, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	entries := make([]transcript.Entry, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		if line.Text == "" {
			continue
		}
		start, err := strconv.ParseFloat(line.Start, 64)
		if err != nil {
			return nil, fmt.Errorf("timedtext start %q: %w", line.Start, err)
		}
		var dur float64
		if line.Dur != "" {
			if dur, err = strconv.ParseFloat(line.Dur, 64); err != nil {
				return nil, fmt.Errorf("timedtext dur %q: %w", line.Dur, err)
			}
		}
		entries = append(entries, transcript.Entry{
			Start:    start,
			Duration: dur,
			Text:     engine.CaptionText(line.Text),
		})
	}
	return entries, nil
}

// extractJSON returns the balanced {...} object at the start of b, or nil.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr, escaped := false, false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
