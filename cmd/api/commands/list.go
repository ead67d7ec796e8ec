package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/llmarch/core/internal/registry"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the diagram catalog grouped as on the landing page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, err := contentFS(contentDir(cmd))
			if err != nil {
				return err
			}
			reg, catalog, err := registry.Load(fsys)
			if err != nil {
				return err
			}
			sections, err := registry.Group(reg.List(), catalog)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			header := color.New(color.FgCyan, color.Bold)
			for _, s := range sections {
				header.Fprintf(out, "%s\n", s.Name)
				for _, e := range s.Entries {
					fmt.Fprintf(out, "  %-18s %s\n", e.Key, e.Title)
				}
			}
			fmt.Fprintf(out, "\n%d diagrams\n", reg.Len())
			return nil
		},
	}
}
