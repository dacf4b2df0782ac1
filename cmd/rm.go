package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm [key]...",
	Short: "Remove objects from a bucket",
	Long:  "Remove the given keys from the bucket, or every object with --all.",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if all == (len(args) > 0) {
			return cmd.Help()
		}
		bucket, err := bucketName()
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		if all {
			removed, err := engine.DeleteAll(cmd.Context(), bucket)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d objects\n", len(removed))
			return err
		}
		for _, key := range args {
			if err := engine.Delete(cmd.Context(), bucket, key); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
	rmCmd.Flags().BoolP("all", "a", false, "remove every object of the bucket")
}
