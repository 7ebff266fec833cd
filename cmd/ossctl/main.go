package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tendant/ossgate/pkg/ossgate"
	"github.com/tendant/ossgate/pkg/ossgate/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	var envFile string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "ossctl",
		Short: "Issue signed OSS URLs, upload through them and delete objects",
		Long: `ossctl talks to Aliyun OSS the same way the ossgate server does.

Credentials are read from OSS_BUCKET, OSS_REGION, OSS_ACCESS_KEY_ID and
OSS_ACCESS_KEY_SECRET, optionally loaded from an .env file.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to load %s: %w", envFile, err)
				}
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load (ignored when missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(NewSignUploadCommand())
	rootCmd.AddCommand(NewUploadCommand())
	rootCmd.AddCommand(NewDeleteCommand())
	rootCmd.AddCommand(NewEmulateCommand())
	rootCmd.AddCommand(NewEnvCommand())

	return rootCmd
}

// newService builds the service from the environment, as the server does
func newService() (ossgate.Service, *config.ServerConfig, error) {
	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	svc, err := cfg.BuildService(config.EnvSource{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, cfg, nil
}
