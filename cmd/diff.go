package cmd

import (
	"fmt"

	"github.com/hitminer/bucket-sync/files"
	"github.com/spf13/cobra"
)

type diffEntry struct {
	Key    string `json:"key" yaml:"key"`
	Status string `json:"status" yaml:"status"`
}

var diffCmd = &cobra.Command{
	Use:   "diff [endpoint]",
	Short: "Show how the local bucket differs from the remote one",
	Long: `Compare the objects and local files matching endpoint without transferring anything.
Each line is "remote", "local" or "modified" followed by the key.
With --output the report is also saved as JSON or YAML, chosen by the file extension.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var endpoint string
		if len(args) == 1 {
			endpoint = args[0]
		}
		bucket, err := bucketName()
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		diffs, err := engine.Diff(cmd.Context(), bucket, localRoot(bucket), endpoint)
		if err != nil {
			return err
		}
		report := make([]diffEntry, 0, len(diffs))
		for _, d := range diffs {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-8s\t%s\n", d.Status, d.Key)
			report = append(report, diffEntry{Key: d.Key, Status: d.Status.String()})
		}
		if output, _ := cmd.Flags().GetString("output"); output != "" {
			return files.Save(output, report)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().StringP("output", "o", "", "also save the report to this .json or .yaml file")
}
