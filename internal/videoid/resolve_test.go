package videoid

import (
	"math/rand"
	"testing"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_-"

func randomID(r *rand.Rand) string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = idAlphabet[r.Intn(len(idAlphabet))]
	}
	return string(b)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"bare id padded", "  dQw4w9WgXcQ\n", "dQw4w9WgXcQ", true},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch url extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"watch url v not first", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short url with si", "https://youtu.be/dQw4w9WgXcQ?si=abcdef", "dQw4w9WgXcQ", true},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"v path url", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"encoded short url", "https%3A%2F%2Fyoutu.be%2FdQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"encoded watch url", "https%3A%2F%2Fwww.youtube.com%2Fwatch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"empty", "", "", false},
		{"whitespace", "   ", "", false},
		{"too short", "short", "", false},
		{"too long", "toolongtobevalid12345", "", false},
		{"marker with short token", "https://www.youtube.com/watch?v=short", "", false},
		{"id inside prose", "the id is dQw4w9WgXcQ ok", "", false},
		{"substring without marker", "xxxxxxabc123xxxxxxxx", "", false},
		{"bad alphabet", "dQw4w9WgX!Q", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveRandomIDs(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	templates := []struct {
		name string
		fn   func(string) string
	}{
		{"bare", func(id string) string { return id }},
		{"watch", func(id string) string { return "https://www.youtube.com/watch?v=" + id }},
		{"short", func(id string) string { return "https://youtu.be/" + id }},
		{"embed", func(id string) string { return "https://www.youtube.com/embed/" + id }},
	}
	for i := 0; i < 500; i++ {
		id := randomID(r)
		for _, tmpl := range templates {
			got, ok := Resolve(tmpl.fn(id))
			if !ok || got != id {
				t.Fatalf("%s: Resolve(%q) = (%q, %v), want %q", tmpl.name, tmpl.fn(id), got, ok, id)
			}
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	inputs := []string{"dQw4w9WgXcQ", "https://youtu.be/dQw4w9WgXcQ", "nope", ""}
	for _, in := range inputs {
		id1, ok1 := Resolve(in)
		id2, ok2 := Resolve(in)
		if id1 != id2 || ok1 != ok2 {
			t.Errorf("Resolve(%q) not stable: (%q,%v) then (%q,%v)", in, id1, ok1, id2, ok2)
		}
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"dQw4w9WgXcQ", true},
		{"a-b_c-d_e-f", true},
		{"dQw4w9WgXc", false},
		{"dQw4w9WgXcQQ", false},
		{"dQw4w9WgXc?", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.id); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize("  https%3A%2F%2Fyoutu.be%2Fx%26y ")
	want := "https://youtu.be/x%26y"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}
