package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/jsondoc"
)

func newYAMLCmd(a *app) *cobra.Command {
	var (
		toJSON bool
		indent int
	)
	cmd := &cobra.Command{
		Use:   "yaml [file]",
		Short: "Convert between JSON and YAML",
		Long:  `Convert a JSON document to YAML, or YAML to JSON with --to-json. Key order is kept both ways.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := inputArg(args, 0)
			if toJSON {
				data, err := readInput(cmd, name)
				if err != nil {
					return err
				}
				opt, err := a.parseOpt()
				if err != nil {
					return err
				}
				d, err := jsondoc.FromYAML(data, opt)
				if err != nil {
					return fmt.Errorf("%s: %w", displayName(name), err)
				}
				return a.write(cmd, d, indent)
			}
			d, err := a.load(cmd, name)
			if err != nil {
				return err
			}
			out, err := d.ToYAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&toJSON, "to-json", false, "Read YAML and print JSON")
	cmd.Flags().IntVarP(&indent, "indent", "i", 2, "Spaces per indentation level for JSON output")
	return cmd
}
