package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hitminer/bucket-sync/objsync"
	"github.com/hitminer/bucket-sync/server"
	"github.com/hitminer/bucket-sync/server/miniogateway"
	"github.com/hitminer/bucket-sync/server/s3gateway"
	"github.com/hitminer/bucket-sync/util/multibar"
	"github.com/hitminer/bucket-sync/util/multibar/cmdbar"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newBar(cmd *cobra.Command) multibar.MultiBar {
	if viper.GetBool("quiet") {
		return &multibar.DefaultBar{}
	}
	return cmdbar.NewBar(cmd.OutOrStdout())
}

func newStore(ctx context.Context, bar multibar.MultiBar) (server.ObjectStore, error) {
	switch backend := viper.GetString("backend"); backend {
	case "s3", "":
		return s3gateway.NewS3Server(ctx, s3gateway.Config{
			Endpoint:  viper.GetString("endpoint"),
			Region:    viper.GetString("region"),
			PathStyle: viper.GetBool("path_style"),
		}, bar)
	case "minio":
		return miniogateway.NewMinioServer(miniogateway.Config{
			Endpoint: viper.GetString("endpoint"),
			Region:   viper.GetString("region"),
			Secure:   viper.GetBool("secure"),
		}, bar)
	default:
		return nil, fmt.Errorf("unknown backend %q, want s3 or minio", backend)
	}
}

func newEngine(cmd *cobra.Command) (*objsync.Engine, error) {
	bar := newBar(cmd)
	store, err := newStore(cmd.Context(), bar)
	if err != nil {
		return nil, err
	}
	return objsync.New(store,
		objsync.WithLogger(logger),
		objsync.WithBar(bar),
		objsync.WithConcurrency(viper.GetInt("concurrency")),
		objsync.WithDecompress(viper.GetBool("decompress")),
		objsync.WithIgnoreMissing(viper.GetBool("ignore_missing")),
	), nil
}

func bucketName() (string, error) {
	bucket := viper.GetString("bucket")
	if bucket == "" {
		return "", fmt.Errorf("no bucket configured, pass --bucket or set bucket in the config file")
	}
	return bucket, nil
}

// localRoot is the configured local bucket, ./<bucket> by default so that
// uploaded paths carry the bucket directory their keys are derived from.
func localRoot(bucket string) string {
	if root := viper.GetString("local_bucket"); root != "" {
		return root
	}
	return filepath.Join(".", bucket)
}
