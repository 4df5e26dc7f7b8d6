package transcript

import (
	"errors"
	"fmt"
	"net/http"
)

// Provider conditions. Providers wrap these with %w.
var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled")
	ErrNoTranscript        = errors.New("no transcript in requested language")
	ErrVideoUnavailable    = errors.New("video unavailable")
	ErrTooManyRequests     = errors.New("too many requests")
)

// Kind tags a classified retrieval failure.
type Kind int

const (
	Unknown Kind = iota
	CaptionsDisabled
	NoTranscript
	VideoUnavailable
	RateLimited
)

func (k Kind) String() string {
	switch k {
	case CaptionsDisabled:
		return "captions_disabled"
	case NoTranscript:
		return "no_transcript"
	case VideoUnavailable:
		return "video_unavailable"
	case RateLimited:
		return "rate_limited"
	}
	return "unknown"
}

// Status returns the suggested HTTP status code for k.
func (k Kind) Status() int {
	switch k {
	case CaptionsDisabled, NoTranscript:
		return http.StatusBadRequest
	case VideoUnavailable:
		return http.StatusNotFound
	case RateLimited:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// Error is a classified retrieval failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify maps a provider error onto a Kind. Unrecognised errors become Unknown
// with the underlying message kept.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	switch {
	case errors.Is(err, ErrTranscriptsDisabled):
		return &Error{Kind: CaptionsDisabled, Message: "Transcripts are disabled for this video", Err: err}
	case errors.Is(err, ErrNoTranscript):
		return &Error{Kind: NoTranscript, Message: "No transcript available for this video", Err: err}
	case errors.Is(err, ErrVideoUnavailable):
		return &Error{Kind: VideoUnavailable, Message: "Video not found or unavailable", Err: err}
	case errors.Is(err, ErrTooManyRequests):
		return &Error{Kind: RateLimited, Message: "Too many requests, please try again later", Err: err}
	}
	return &Error{Kind: Unknown, Message: fmt.Sprintf("Failed to fetch transcript: %v", err), Err: err}
}
