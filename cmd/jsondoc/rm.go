package main

import "github.com/spf13/cobra"

func newRemoveCmd(a *app) *cobra.Command {
	var indent int
	cmd := &cobra.Command{
		Use:     "rm <path> [file]",
		Aliases: []string{"remove"},
		Short:   "Remove the node at a path",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load(cmd, inputArg(args, 1))
			if err != nil {
				return err
			}
			if err := d.Remove(args[0]); err != nil {
				return err
			}
			return a.write(cmd, d, indent)
		},
	}
	cmd.Flags().IntVarP(&indent, "indent", "i", 2, "Spaces per indentation level")
	return cmd
}
