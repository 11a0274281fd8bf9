package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/minivue/internal/demo"
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version  string   `json:"version"`
	Commit   string   `json:"commit"`
	Built    string   `json:"built"`
	Go       string   `json:"go"`
	Platform string   `json:"platform"`
	Demos    []string `json:"demos"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:  version,
		Commit:   commit,
		Built:    date,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Demos:    demo.Names(),
	}
}

func versionCmd() *cobra.Command {
	var short, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the minivue build",
		Long:  `Show the version, commit, toolchain and bundled demos of this minivue binary.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bi := currentBuild()
			out := cmd.OutOrStdout()

			if short {
				_, err := fmt.Fprintln(out, bi.Version)
				return err
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(bi)
			}

			printBanner(out)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  version\t%s\n", bi.Version)
			fmt.Fprintf(w, "  commit\t%s\n", bi.Commit)
			fmt.Fprintf(w, "  built\t%s\n", bi.Built)
			fmt.Fprintf(w, "  go\t%s (%s)\n", bi.Go, bi.Platform)
			fmt.Fprintf(w, "  demos\t%s\n", strings.Join(bi.Demos, ", "))
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "print only the version")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print build information as JSON")
	cmd.MarkFlagsMutuallyExclusive("short", "json")

	return cmd
}
