package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llmarch/core/internal/parser"
	"github.com/llmarch/core/internal/registry"
)

func newExportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <diagram_key>",
		Short: "Write one diagram as renderer JSON, DOT or Mermaid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, err := contentFS(contentDir(cmd))
			if err != nil {
				return err
			}
			reg, _, err := registry.Load(fsys)
			if err != nil {
				return err
			}
			d, err := reg.Get(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(parser.BuildFlow(d))
			}

			exporter := parser.ExporterFor(format)
			if exporter == nil {
				return fmt.Errorf("unsupported format %q (want json, dot or mermaid)", format)
			}
			text, err := exporter.Generate(d)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, text)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, dot or mermaid")
	return cmd
}
