// Package videoid turns YouTube URLs and bare ids into canonical 11-char video ids.
package videoid

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"
)

// Length is the fixed length of a YouTube video id.
const Length = 11

// ErrNotFound is returned by callers that need an error value for a failed Resolve.
var ErrNotFound = errors.New("no valid video ID found")

// rule is one extraction pattern; group 1 holds the candidate id.
type rule struct {
	name string
	re   *regexp.Regexp
}

// rules are tried in order, first match wins. URL markers take precedence over the bare form.
var rules = []rule{
	{"url", regexp.MustCompile(`(?:v=|/v/|embed/|youtu.be/)([0-9A-Za-z_-]{11})`)},
	{"bare", regexp.MustCompile(`^([0-9A-Za-z_-]{11})$`)},
}

var validRE = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

// urlDecoder undoes only the two escapes found in pasted YouTube links.
var urlDecoder = strings.NewReplacer("%3A", ":", "%2F", "/")

// Valid reports whether id is exactly 11 characters of [0-9A-Za-z_-].
func Valid(id string) bool {
	return len(id) == Length && validRE.MatchString(id)
}

// Normalize trims whitespace and decodes %3A and %2F.
func Normalize(raw string) string {
	return urlDecoder.Replace(strings.TrimSpace(raw))
}

// Resolve extracts the canonical video id from a watch, short or embed URL, or a bare id.
// ok is false when nothing matched or the matched token failed validation.
func Resolve(raw string) (id string, ok bool) {
	clean := Normalize(raw)
	if clean == "" {
		slog.Debug("videoid: empty input")
		return "", false
	}

	for _, r := range rules {
		m := r.re.FindStringSubmatch(clean)
		if len(m) < 2 {
			continue
		}
		// A structural match that fails validation is terminal.
		if !Valid(m[1]) {
			slog.Debug("videoid: matched token failed validation",
				slog.String("rule", r.name), slog.String("token", m[1]))
			return "", false
		}
		return m[1], true
	}

	slog.Debug("videoid: no pattern matched", slog.String("input", clean))
	return "", false
}
