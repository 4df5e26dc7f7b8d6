package transcript

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/videoid"
)

// Retriever fetches and classifies transcripts. It holds no per-request state.
type Retriever struct {
	provider Provider
}

// NewRetriever returns a Retriever backed by p.
func NewRetriever(p Provider) *Retriever {
	return &Retriever{provider: p}
}

// Retrieve fetches the default-language transcript for videoID.
// The returned error, when non-nil, is always a *Error.
func (r *Retriever) Retrieve(ctx context.Context, videoID string) (Document, error) {
	engine.IncrTranscriptRequests()

	if !videoid.Valid(videoID) {
		ce := &Error{Kind: Unknown, Message: fmt.Sprintf("Failed to fetch transcript: invalid video ID %q", videoID)}
		engine.IncrTranscriptError(ce.Kind.String())
		return Document{}, ce
	}

	entries, err := r.provider.Fetch(ctx, videoID, DefaultLanguage)
	if err != nil {
		ce := Classify(err)
		engine.IncrTranscriptError(ce.Kind.String())
		slog.Warn("transcript: fetch failed",
			slog.String("id", videoID),
			slog.String("kind", ce.Kind.String()),
			slog.Any("error", err))
		return Document{}, ce
	}

	engine.IncrTranscriptSuccess()
	slog.Debug("transcript: fetched",
		slog.String("id", videoID), slog.Int("entries", len(entries)))
	return Document{VideoID: videoID, Language: DefaultLanguage, Entries: entries}, nil
}
