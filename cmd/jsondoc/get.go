package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/jsondoc"
)

func newGetCmd(a *app) *cobra.Command {
	var (
		indent int
		raw    bool
	)
	cmd := &cobra.Command{
		Use:   "get <path> [file]",
		Short: "Print the node at a path",
		Long: `Print the node addressed by a JSON Pointer ("/a/0"), dot ("a.b") or
bracket ("a[0].b") path. Fails when the path does not resolve.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load(cmd, inputArg(args, 1))
			if err != nil {
				return err
			}
			v, ok := d.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", jsondoc.ErrNotFound, args[0])
			}
			if s, isStr := v.AsString(); raw && isStr {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(v.AppendJSON(nil, indent)))
			return err
		},
	}
	cmd.Flags().IntVarP(&indent, "indent", "i", 0, "Spaces per indentation level")
	cmd.Flags().BoolVarP(&raw, "raw", "r", false, "Print strings without quotes")
	return cmd
}
