package cmd

import (
	"fmt"

	"github.com/hitminer/bucket-sync/files"
	"github.com/hitminer/bucket-sync/objsync"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [key]...",
	Short: "Download the given keys",
	Long: `Download the given keys into the local bucket, in order, and print the paths produced.
Archives are expanded unless --no-decompress is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return syncMany(cmd, args, objsync.Download)
	},
}

var pushCmd = &cobra.Command{
	Use:   "push [path]...",
	Short: "Upload the given files",
	Long: `Upload the given files and print the keys written.
Every path must lie below a directory named after the bucket; the key is the rest of the path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return syncMany(cmd, args, objsync.Upload)
	},
}

// readItems appends the items listed in the --list file, a JSON or YAML
// array of strings, to args.
func readItems(cmd *cobra.Command, args []string) ([]string, error) {
	list, _ := cmd.Flags().GetString("list")
	if list == "" {
		return args, nil
	}
	var items []string
	if err := files.Load(list, &items); err != nil {
		return nil, err
	}
	return append(args, items...), nil
}

func syncMany(cmd *cobra.Command, args []string, dir objsync.Direction) error {
	items, err := readItems(cmd, args)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return cmd.Help()
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
	done, err := engine.SyncMany(cmd.Context(), dir, bucket, items, localRoot(bucket), overwrite)
	for _, d := range done {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), d)
	}
	return err
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(pushCmd)
	fetchCmd.Flags().Bool("overwrite", false, "replace local files that already exist")
	fetchCmd.Flags().String("list", "", "read more keys from a .json or .yaml file")
	pushCmd.Flags().String("list", "", "read more paths from a .json or .yaml file")
}
