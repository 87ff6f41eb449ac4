package main

import "github.com/spf13/cobra"

func newMergeCmd(a *app) *cobra.Command {
	var (
		indent int
		concat bool
	)
	cmd := &cobra.Command{
		Use:   "merge <base> <overlay>...",
		Short: "Deep-merge documents",
		Long: `Merge each overlay into base, left to right. Objects merge recursively;
arrays are replaced unless --concat-arrays is set; any other value is replaced.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			for _, name := range args[1:] {
				overlay, err := a.load(cmd, name)
				if err != nil {
					return err
				}
				base.Merge(overlay, !concat)
				a.logger.Debug("jsondoc: merged", "overlay", displayName(name))
			}
			return a.write(cmd, base, indent)
		},
	}
	cmd.Flags().IntVarP(&indent, "indent", "i", 2, "Spaces per indentation level")
	cmd.Flags().BoolVar(&concat, "concat-arrays", false, "Append overlay array elements instead of replacing")
	return cmd
}
