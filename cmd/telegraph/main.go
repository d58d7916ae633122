// Command telegraph is a CLI for the Telegraph publishing API: account
// management, page publishing, view counts, file upload and local
// content conversion.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgonek/telegraph"
)

var (
	flagToken    string
	flagVerbose  bool
	flagCacheTTL time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "telegraph",
	Short: "Publish and manage Telegraph pages",
	Long: `telegraph is a client for the Telegraph publishing API.

It converts HTML or Markdown into the node tree the API accepts,
publishes and edits pages, and manages the publishing account.

Examples:
  telegraph account create --short-name sandbox
  telegraph page create --title "Hello" --file post.md --format markdown
  telegraph page views Sample-Page-12-15 --year 2026
  telegraph convert --format markdown post.md`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Access token (default: $TELEGRAPH_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&flagCacheTTL, "cache-ttl", 0, "Cache page/view reads for this duration (0 disables)")
}

// newClient builds a client from the persistent flags.
func newClient() (*telegraph.Client, error) {
	opts := []telegraph.Option{}

	token := flagToken
	if token == "" {
		token = os.Getenv("TELEGRAPH_TOKEN")
	}
	if token != "" {
		opts = append(opts, telegraph.WithAccessToken(token))
	}

	if flagVerbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, telegraph.WithLogger(logger))
	}

	if flagCacheTTL > 0 {
		cache, err := telegraph.NewCache(flagCacheTTL)
		if err != nil {
			return nil, fmt.Errorf("initialize cache: %w", err)
		}
		opts = append(opts, telegraph.WithCache(cache))
	}

	return telegraph.New(opts...), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
