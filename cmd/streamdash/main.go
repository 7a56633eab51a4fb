package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TobiSchelling/streamdash/internal/analysis"
	"github.com/TobiSchelling/streamdash/internal/config"
	"github.com/TobiSchelling/streamdash/internal/logging"
	"github.com/TobiSchelling/streamdash/internal/pipeline"
	"github.com/TobiSchelling/streamdash/internal/present"
	"github.com/TobiSchelling/streamdash/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "streamdash",
	Short:   "Dashboard for a streaming titles dataset",
	Long:    "streamdash loads a CSV of streaming titles and serves genre, ranking, and statistics views.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logCfg := logging.DefaultConfig()
		logCfg.Level = cfg.Logging.Level
		logCfg.Format = cfg.Logging.Format
		if verbose {
			logCfg.Level = "debug"
			logCfg.Caller = true
		}
		logging.Init(logCfg)

		if path != "" {
			logging.Debug().Str("path", path).Msg("Config loaded")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(describeCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("streamdash", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/streamdash/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to point at a different dataset or change the dashboard title.")
		return nil
	},
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the dataset and start the dashboard server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != 0 {
			cfg.Server.Port = servePort
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		logo, err := server.LoadLogo(cfg.Dashboard.Logo)
		if err != nil {
			return err
		}

		result := load()
		if err := result.Err(); err != nil {
			logging.Warn().Msg("Serving error page only until the dataset is fixed")
		}

		srv, err := server.New(result, cfg.Dashboard.Title, logo)
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}

		fmt.Printf("Starting server at http://%s\n", cfg.Addr())
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(srv, cfg.Addr())
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (overrides config)")
}

// --- check command ---

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate the dataset: fetch -> validate -> session",
	RunE: func(cmd *cobra.Command, args []string) error {
		result := load()

		for i, step := range result.Steps {
			fmt.Printf("\nStep %d/3: %s\n", i+1, step.Name)
			if step.Err != nil {
				fmt.Printf("  Error: %v\n", step.Err)
			} else {
				fmt.Printf("  %s\n", step.Summary)
			}
		}
		if err := result.Err(); err != nil {
			return err
		}

		genres := analysis.GenreDistribution(result.Session.Titles()).ByCount()
		fmt.Println("\nTitles by genre:")
		for _, g := range genres {
			name := g.Genre
			if name == "" {
				name = "(none)"
			}
			fmt.Printf("  %s: %d\n", name, g.Count)
		}

		fmt.Println("\nDataset OK! Run 'streamdash serve' to open the dashboard.")
		return nil
	},
}

// --- describe command ---

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print descriptive statistics for rating and votes",
	RunE: func(cmd *cobra.Command, args []string) error {
		result := load()
		if err := result.Err(); err != nil {
			return err
		}

		summaries, err := analysis.Describe(result.Session.Titles(), analysis.DescribedColumns...)
		if err != nil {
			return err
		}
		table := present.StatsTable(summaries)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, strings.Join(table.Columns, "\t")+"\t")
		for _, row := range table.Rows {
			fmt.Fprintln(w, strings.Join(row, "\t")+"\t")
		}
		return w.Flush()
	},
}

func load() *pipeline.Result {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return pipeline.New(cfg).Run(ctx)
}
