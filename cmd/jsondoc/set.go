package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/jsondoc"
)

func newSetCmd(a *app) *cobra.Command {
	var (
		indent   int
		asString bool
		update   bool
	)
	cmd := &cobra.Command{
		Use:   "set <path> <value> [file]",
		Short: "Write a value at a path",
		Long: `Write a JSON value at a path and print the resulting document.

By default missing intermediate objects and arrays are created. With --update
the parent must already exist; only the last object key may be new and array
positions must be in range or one past the end.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load(cmd, inputArg(args, 2))
			if err != nil {
				return err
			}
			val := jsondoc.FromValue(jsondoc.String(args[1]))
			if !asString {
				if val, err = jsondoc.Parse([]byte(args[1])); err != nil {
					return fmt.Errorf("value: %w (use --string for literal text)", err)
				}
			}
			if update {
				err = d.Update(args[0], val)
			} else {
				err = jsondoc.Set(d, args[0], *val.Root())
			}
			if err != nil {
				return err
			}
			a.logger.Debug("jsondoc: wrote", "path", args[0], "kind", val.Type(), "update", update)
			return a.write(cmd, d, indent)
		},
	}
	cmd.Flags().IntVarP(&indent, "indent", "i", 2, "Spaces per indentation level")
	cmd.Flags().BoolVarP(&asString, "string", "s", false, "Treat the value as a literal string")
	cmd.Flags().BoolVarP(&update, "update", "u", false, "Do not create missing parents")
	return cmd
}
