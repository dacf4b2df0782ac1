package cmd

import (
	"fmt"

	"github.com/hitminer/bucket-sync/versioning"
	"github.com/spf13/cobra"
)

var bumpCmd = &cobra.Command{
	Use:   "bump [version] [increment]",
	Short: "Print version incremented by increment",
	Long: `Print version incremented by increment (default 1.0.0).
The most significant non-zero component of increment is added and the lower ones reset,
so "bump 1.2.3 0.1.0" prints 1.3.0.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		increment := versioning.DefaultIncrement
		if len(args) == 2 {
			increment = args[1]
		}
		next, err := versioning.Increment(args[0], increment)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), next)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bumpCmd)
}
