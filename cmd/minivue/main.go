package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/minivue/internal/config"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┬┌┐┌┬┬  ┬┬ ┬┌─┐
  ││││││││└┐┌┘│ │├┤
  ┴ ┴┴┘└┘┴ └┘ └─┘└─┘
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minivue",
		Short: "A small reactive UI runtime",
		Long: `minivue renders reactive component trees.

Components read reactive state, the renderer diffs their output
against the previous tree, and a batching scheduler re-renders
what changed. Trees render to an in-memory host that can be
snapshotted to HTML or streamed live over WebSocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		renderCmd(),
		demosCmd(),
		serveCmd(),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig reads path, or minivue.yaml from the working directory when
// path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.LoadFromWorkingDir()
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
