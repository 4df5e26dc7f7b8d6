package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

func stubRetriever(t *testing.T, entries []transcript.Entry, err error) *[]string {
	t.Helper()
	var ids []string
	orig := newRetriever
	newRetriever = func() *transcript.Retriever {
		return transcript.NewRetriever(transcript.ProviderFunc(
			func(_ context.Context, id, _ string) ([]transcript.Entry, error) {
				ids = append(ids, id)
				return entries, err
			}))
	}
	t.Cleanup(func() { newRetriever = orig })
	return &ids
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunFromStdin(t *testing.T) {
	ids := stubRetriever(t, []transcript.Entry{{Start: 0, Text: "a"}, {Start: 1.5, Text: "b"}}, nil)

	out, err := execute(t, "  https://www.youtube.com/watch?v=dQw4w9WgXcQ\n")
	require.NoError(t, err)
	assert.Equal(t, "[0.00] a\n[1.50] b\n", out)
	assert.Equal(t, []string{"dQw4w9WgXcQ"}, *ids)
}

func TestRunFromArg(t *testing.T) {
	ids := stubRetriever(t, []transcript.Entry{{Start: 3, Text: "x"}}, nil)

	out, err := execute(t, "", "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "[3.00] x\n", out)
	assert.Equal(t, []string{"dQw4w9WgXcQ"}, *ids)
}

func TestRunEmptyInput(t *testing.T) {
	ids := stubRetriever(t, nil, nil)
	out, err := execute(t, "   ")
	require.NoError(t, err)
	assert.Equal(t, "No URL provided\n", out)
	assert.Empty(t, *ids)
}

func TestRunInvalidURL(t *testing.T) {
	ids := stubRetriever(t, nil, nil)
	out, err := execute(t, "", "https://example.com/nothing")
	require.NoError(t, err)
	assert.Equal(t, "Invalid YouTube URL\n", out)
	assert.Empty(t, *ids)
}

func TestRunClassifiedError(t *testing.T) {
	stubRetriever(t, nil, transcript.ErrTranscriptsDisabled)
	_, err := execute(t, "", "dQw4w9WgXcQ")
	var ce *transcript.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, transcript.CaptionsDisabled, ce.Kind)
}
