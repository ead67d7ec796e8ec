package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/llmarch/core/internal/registry"
)

var errInvalidContent = errors.New("content is invalid")

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [content_dir]",
		Short: "Check every diagram document and the catalog",
		Long: `The validate command loads the diagram catalog the same way the server does
and reports every problem found in every document, so all of them can be fixed
in one pass. Without an argument it checks the configured content.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := contentDir(cmd)
			if len(args) == 1 {
				dir = args[0]
			}
			fsys, err := contentFS(dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			reg, _, err := registry.Load(fsys)
			if err != nil {
				color.New(color.FgRed).Fprintln(out, "Validation failed:")
				printErrors(out, err)
				return errInvalidContent
			}

			color.New(color.FgGreen).Fprintf(out, "✓ %d diagrams valid\n", reg.Len())
			for _, s := range reg.List() {
				d, _ := reg.Get(s.Key)
				fmt.Fprintf(out, "  %-18s %3d nodes %3d edges\n", s.Key, len(d.Nodes), len(d.Edges))
			}
			return nil
		},
	}
}
