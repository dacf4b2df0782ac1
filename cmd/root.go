package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hitminer/bucket-sync/logging"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at link time.
var version = "v0.0.0"

var (
	logger  = zerolog.Nop()
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:          "bucket-sync",
	Short:        "bucket-sync client",
	Long:         "bucket-sync mirrors S3 compatible buckets to local directories and back",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		if cmd.Flags().Changed("no-decompress") {
			viper.Set("decompress", false)
		}
		log, closer, err := logging.Setup(logging.Config{
			Name:    "bucket_sync",
			Dir:     viper.GetString("logs_dir"),
			Version: version,
			Level:   viper.GetString("log_level"),
			Console: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		logger, logFile = log, closer
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logFile == nil {
			return nil
		}
		err := logFile.Close()
		logFile = nil
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return err
	})

	home, _ := os.UserHomeDir()
	configDir := filepath.Join(home, ".config", "hitminer")

	viper.SetDefault("backend", "s3")
	viper.SetDefault("region", "us-east-1")
	viper.SetDefault("secure", true)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("logs_dir", filepath.Join(configDir, "logs"))
	viper.SetDefault("decompress", true)
	viper.SetDefault("concurrency", 8)
	viper.SetConfigName("bucket_sync")
	viper.SetConfigType("toml")
	viper.AddConfigPath(configDir)
	viper.SetEnvPrefix("BUCKET_SYNC")
	viper.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	flags.StringP("bucket", "b", "", "remote bucket name")
	flags.StringP("local", "l", "", "local bucket directory (default ./<bucket>)")
	flags.Bool("ignore-missing", false, "skip objects that disappear before they are downloaded")
	flags.Bool("no-decompress", false, "keep downloaded .zip archives as they are")
	flags.BoolP("quiet", "q", false, "do not draw progress bars")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("bucket", flags.Lookup("bucket"))
	_ = viper.BindPFlag("local_bucket", flags.Lookup("local"))
	_ = viper.BindPFlag("ignore_missing", flags.Lookup("ignore-missing"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
}

// loadConfig reads .env and the config file; both are optional.
func loadConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
