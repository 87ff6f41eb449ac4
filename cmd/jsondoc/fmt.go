package main

import "github.com/spf13/cobra"

func newFmtCmd(a *app) *cobra.Command {
	var (
		indent  int
		compact bool
	)
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Reformat a JSON document",
		Long:  `Parse a document and print it back, pretty-printed or compact. Reads stdin when no file is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load(cmd, inputArg(args, 0))
			if err != nil {
				return err
			}
			if compact {
				indent = 0
			}
			return a.write(cmd, d, indent)
		},
	}
	cmd.Flags().IntVarP(&indent, "indent", "i", 2, "Spaces per indentation level")
	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "Print on a single line")
	return cmd
}
