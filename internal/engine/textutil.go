package engine

import (
	"html"
	"regexp"

	"github.com/anatolykoptev/go-kit/strutil"
)

// User-Agent strings used across HTTP clients.
const (
	UserAgentBot    = "GoTranscript/1.0"
	UserAgentChrome = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

var htmlTagRe = regexp.MustCompile(`(?i)<[^>]*>`)

// CaptionText unescapes HTML entities and strips markup tags. Whitespace is kept as is.
func CaptionText(s string) string {
	return htmlTagRe.ReplaceAllString(html.UnescapeString(s), "")
}

// Preview caps s at Cfg.PreviewChars runes for log lines.
func Preview(s string) string {
	return strutil.TruncateWith(s, Cfg.PreviewChars, "...")
}
