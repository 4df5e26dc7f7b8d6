package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
	"github.com/anatolykoptev/go_transcript/internal/videoid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TranscriptInput is the youtube_transcript tool input.
type TranscriptInput struct {
	URL string `json:"url" jsonschema:"YouTube watch, short or embed URL, or a bare 11-character video ID"`
}

// TranscriptOutput is the youtube_transcript tool output.
type TranscriptOutput struct {
	VideoID    string             `json:"video_id"`
	Language   string             `json:"language"`
	Transcript string             `json:"transcript"`
	Entries    []transcript.Entry `json:"entries"`
}

// RegisterTools registers youtube_transcript on the given MCP server.
func RegisterTools(server *mcp.Server, r *transcript.Retriever) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript",
		Description: "Fetch the English transcript of a YouTube video. Accepts a watch URL, youtu.be short URL, embed URL, or bare video ID. Returns timestamped lines formatted as \"[seconds] text\" plus the raw caption entries.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		out, err := fetchForTool(ctx, r, input)
		if err != nil {
			return nil, TranscriptOutput{}, err
		}
		return nil, out, nil
	})
}

// fetchForTool is split out of the handler so it can be tested without an MCP session.
func fetchForTool(ctx context.Context, r *transcript.Retriever, input TranscriptInput) (TranscriptOutput, error) {
	if strings.TrimSpace(input.URL) == "" {
		return TranscriptOutput{}, errors.New("url is required")
	}
	id, ok := videoid.Resolve(input.URL)
	engine.IncrResolve(ok)
	if !ok {
		return TranscriptOutput{}, fmt.Errorf("invalid YouTube URL or video ID: %s: %w", input.URL, videoid.ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, engine.Cfg.FetchTimeout)
	defer cancel()

	doc, err := r.Retrieve(ctx, id)
	if err != nil {
		return TranscriptOutput{}, err
	}
	return TranscriptOutput{
		VideoID:    doc.VideoID,
		Language:   doc.Language,
		Transcript: transcript.Render(doc),
		Entries:    doc.Entries,
	}, nil
}
