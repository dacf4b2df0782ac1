package cmd

import (
	"github.com/hitminer/bucket-sync/objsync"
	"github.com/spf13/cobra"
)

var putCmd = &cobra.Command{
	Use:   "put [endpoint]",
	Short: "Upload the local files matching endpoint",
	Long: `Upload every file of the local bucket whose relative path contains endpoint.
Keys already present remotely are skipped unless --overwrite is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return syncEndpoint(cmd, args, objsync.Upload)
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
	putCmd.Flags().Bool("overwrite", false, "replace remote objects that already exist")
}
