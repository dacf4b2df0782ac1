package cmd

import (
	"github.com/hitminer/bucket-sync/objsync"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [endpoint]",
	Short: "Download the objects of a bucket matching endpoint",
	Long: `Download every object of the bucket whose key contains endpoint into the local bucket.
Objects already present locally are skipped unless --overwrite is given.
An empty endpoint matches the whole bucket.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return syncEndpoint(cmd, args, objsync.Download)
	},
}

func syncEndpoint(cmd *cobra.Command, args []string, dir objsync.Direction) error {
	var endpoint string
	if len(args) == 1 {
		endpoint = args[0]
	}
	bucket, err := bucketName()
	if err != nil {
		return err
	}
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}
	return engine.SyncEndpoint(cmd.Context(), dir, bucket, localRoot(bucket), endpoint, overwrite)
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().Bool("overwrite", false, "replace local files that already exist")
}
