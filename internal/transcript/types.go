// Package transcript retrieves caption entries for a validated video id and
// classifies provider failures into a small set of kinds.
package transcript

import (
	"context"
	"fmt"
	"strings"
)

// DefaultLanguage is the only caption track the retriever asks for.
const DefaultLanguage = "en"

// Entry is one caption unit.
type Entry struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Document is the ordered list of entries for one video, in provider order.
type Document struct {
	VideoID  string  `json:"video_id"`
	Language string  `json:"language"`
	Entries  []Entry `json:"entries"`
}

// Provider fetches raw caption entries for a video id in a language.
// Failures should wrap one of the Err* sentinels when the condition is known.
type Provider interface {
	Fetch(ctx context.Context, videoID, language string) ([]Entry, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, videoID, language string) ([]Entry, error)

// Fetch calls f.
func (f ProviderFunc) Fetch(ctx context.Context, videoID, language string) ([]Entry, error) {
	return f(ctx, videoID, language)
}

// Render formats doc as "[start] text" lines joined by a single newline.
func Render(doc Document) string {
	var sb strings.Builder
	for i, e := range doc.Entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "[%.2f] %s", e.Start, e.Text)
	}
	return sb.String()
}
