package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls [filter]",
	Short: "List the objects of a bucket",
	Long:  "List the objects of a bucket, optionally only those whose key contains filter.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bucket, err := bucketName()
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		objects, err := engine.Objects(cmd.Context(), bucket)
		if err != nil {
			return err
		}

		loc := time.Now().Location()
		var total uint64
		for _, object := range objects {
			if len(args) == 1 && !strings.Contains(object.Key, args[0]) {
				continue
			}
			var buffer bytes.Buffer
			buffer.WriteString(fmt.Sprintf("%9s\t", humanize.IBytes(uint64(object.Size))))
			buffer.WriteString(object.LastModified.In(loc).Format("Jan 02 15:04"))
			buffer.WriteString("\t")
			buffer.WriteString(object.Key)
			buffer.WriteString("\n")
			_, _ = cmd.OutOrStdout().Write(buffer.Bytes())
			total += uint64(object.Size)
		}
		logger.Debug().Str("bucket", bucket).Str("size", humanize.IBytes(total)).Msg("listed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
