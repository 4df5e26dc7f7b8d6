// Command transcript prints the timestamped transcript of a YouTube video.
//
//	echo "https://youtu.be/dQw4w9WgXcQ" | transcript
//	transcript dQw4w9WgXcQ
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
	"github.com/anatolykoptev/go_transcript/internal/videoid"
)

var (
	verbose bool
	timeout time.Duration
)

// newRetriever is swapped in tests.
var newRetriever = func() *transcript.Retriever {
	engine.Init(engine.Config{
		FetchTimeout: timeout,
		HTTPClient:   &http.Client{Timeout: timeout},
	})
	return transcript.NewRetriever(sources.NewYouTube())
}

var rootCmd = &cobra.Command{
	Use:   "transcript [url-or-id]",
	Short: "Print the English transcript of a YouTube video",
	Long: `Reads a YouTube watch, short or embed URL (or a bare video ID) from the first
argument or from stdin, and prints one "[seconds] text" line per caption.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	RunE: run,
}

func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func run(cmd *cobra.Command, args []string) error {
	var input string
	if len(args) > 0 {
		input = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = string(data)
	}
	input = strings.TrimSpace(input)

	out := cmd.OutOrStdout()
	if input == "" {
		fmt.Fprintln(out, "No URL provided")
		return nil
	}

	id, ok := videoid.Resolve(input)
	engine.IncrResolve(ok)
	if !ok {
		fmt.Fprintln(out, "Invalid YouTube URL")
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	doc, err := newRetriever().Retrieve(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, transcript.Render(doc))
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
