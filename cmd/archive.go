package cmd

import (
	"fmt"
	"os"

	"github.com/hitminer/bucket-sync/zipper"
	"github.com/spf13/cobra"
)

var zipCmd = &cobra.Command{
	Use:   "zip [dir]",
	Short: "Archive a directory into <dir>.zip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := zipper.ZipDir(args[0])
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var unzipCmd = &cobra.Command{
	Use:   "unzip [path]",
	Short: "Expand an archive, or every archive below a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetBool("keep")
		info, err := os.Stat(args[0])
		if err != nil {
			return err
		}

		var dirs []string
		if info.IsDir() {
			dirs, err = zipper.UnzipAll(args[0], !keep)
		} else {
			var dir string
			dir, err = zipper.Unzip(args[0], "", !keep)
			if err == nil {
				dirs = append(dirs, dir)
			}
		}
		for _, d := range dirs {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), d)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(zipCmd)
	rootCmd.AddCommand(unzipCmd)
	unzipCmd.Flags().BoolP("keep", "k", false, "keep the archives after expanding them")
}
