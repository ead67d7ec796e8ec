// Package commands implements the llmarch command line: the HTTP server and
// the content tooling around it.
package commands

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/llmarch/core/internal/content"
)

// Set at build time with -ldflags "-X".
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "llmarch",
		Short: "Serve and inspect LLM architecture diagrams",
		Long: `llmarch serves a fixed catalog of hand-authored LLM architecture diagrams
to the browser and provides tools to list, validate and export that catalog.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("content", "", "Content directory to use instead of the embedded catalog (default: LLMARCH_CONTENT_DIR)")

	root.AddCommand(
		newServeCmd(),
		newListCmd(),
		newValidateCmd(),
		newExportCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// contentFS returns the on-disk content directory when dir is set and the
// embedded content otherwise.
func contentFS(dir string) (fs.FS, error) {
	if dir == "" {
		return content.FS(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

func contentDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("content")
	if dir == "" {
		dir = os.Getenv("LLMARCH_CONTENT_DIR")
	}
	return dir
}

// printErrors writes every error joined into err on its own line.
func printErrors(out io.Writer, err error) {
	red := color.New(color.FgRed)
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			printErrors(out, e)
		}
		return
	}
	red.Fprintf(out, "  ✗ %v\n", err)
}
