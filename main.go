package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/animeshelf/library/internal/config"
	"github.com/animeshelf/library/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

var rootCmd = &cobra.Command{
	Use:           "anime-library",
	Short:         "Personal anime library API",
	Long:          "Serve the anime library REST API, or prepare its database",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema and indexes, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewConfig()
		return entrypoint.Migrate(cfg)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("anime-library %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	return entrypoint.Run(cfg, Version)
}

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
