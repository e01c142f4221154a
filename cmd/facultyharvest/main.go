package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/amosWeiskopf/facultyharvest/internal/config"
	"github.com/amosWeiskopf/facultyharvest/internal/log"
	"github.com/amosWeiskopf/facultyharvest/pkg/fetcher"
	"github.com/amosWeiskopf/facultyharvest/pkg/harvester"
	"github.com/amosWeiskopf/facultyharvest/pkg/robots"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "facultyharvest",
	Short: "FacultyHarvest - university directory contact harvester",
	Long: `FacultyHarvest crawls a university personnel directory, follows the
links to individual profile pages, and extracts name, email, phone and
education fields into a CSV file.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var harvestCmd = &cobra.Command{
	Use:   "harvest FILE.csv",
	Short: "Crawl the directory and write profile rows to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]
		if filepath.Ext(filename) != ".csv" {
			fmt.Println("Please specify a csv filename")
			return nil
		}

		cfg, logger, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		f := fetcher.New(cfg.HTTP.UserAgent, cfg.HTTP.Timeout, logger)
		checker := robots.New(f.Client(), f.UserAgent(), logger)
		if !checker.Allowed(cmd.Context(), cfg.Harvest.IndexURL) {
			fmt.Println("This URL cannot be fetched!")
			return nil
		}

		h := harvester.New(cfg.Harvest, f, logger)
		rows, err := h.Harvest(cmd.Context(), filename)
		if err != nil {
			return fmt.Errorf("harvest failed: %w", err)
		}

		fmt.Printf("Wrote %d profiles to %s\n", rows, filename)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [URL]",
	Short: "Check whether robots.txt permits crawling a URL",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		target := cfg.Harvest.IndexURL
		if len(args) == 1 {
			target = args[0]
		}

		f := fetcher.New(cfg.HTTP.UserAgent, cfg.HTTP.Timeout, logger)
		checker := robots.New(f.Client(), f.UserAgent(), logger)
		if checker.Allowed(cmd.Context(), target) {
			fmt.Printf("Crawling allowed: %s\n", target)
		} else {
			fmt.Printf("Crawling denied: %s\n", target)
		}
		return nil
	},
}

// setup loads configuration and builds the logger shared by the
// subcommands.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, func(), error) {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logFile, _ := cmd.Flags().GetString("log-file")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level := log.ParseLevel(cfg.Logging.Level)
	if verbose {
		level = zapcore.DebugLevel
	}
	if logFile == "" {
		logFile = cfg.Logging.File
	}

	cores := []zapcore.Core{log.NewStdoutPlugin(level)}
	cleanup := func() {}
	if logFile != "" {
		fileCore, closer := log.NewFilePlugin(logFile, level)
		cores = append(cores, fileCore)
		cleanup = func() { closer.Close() }
	}
	logger := log.NewLogger(zapcore.NewTee(cores...))

	return cfg, logger, func() {
		logger.Sync()
		cleanup()
	}, nil
}

func init() {
	rootCmd.AddCommand(harvestCmd)
	rootCmd.AddCommand(checkCmd)

	rootCmd.PersistentFlags().String("config", "", "Config file path")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this rotating file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
