package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/jsondoc"
)

func newDupsCmd(a *app) *cobra.Command {
	var maxIssues int
	cmd := &cobra.Command{
		Use:   "dups [file]",
		Short: "List repeated object keys",
		Long:  `Scan a JSON document and print the path of every repeated object key. Exits non-zero when any are found.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := inputArg(args, 0)
			data, err := readInput(cmd, name)
			if err != nil {
				return err
			}
			iss, err := jsondoc.DuplicateKeysBytes(data, maxIssues)
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(name), err)
			}
			a.logger.Debug("jsondoc: scanned", "input", displayName(name), "duplicates", len(iss))
			for _, it := range iss {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), it.Path); err != nil {
					return err
				}
			}
			if len(iss) > 0 {
				return iss
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxIssues, "max-issues", 0, "Stop after this many findings (0 = no limit)")
	return cmd
}
