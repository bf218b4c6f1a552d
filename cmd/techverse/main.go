// Command techverse serves the item manager and the technology graph.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/techverse/internal/app"
)

var (
	// configFile is set by the --config flag.
	configFile string

	v = app.NewViper()
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "techverse",
	Short: "Item manager and technology graph web app",
	Long: `techverse serves a small persisted item list and an interactive graph of
the technologies that appear in a catalog of science fiction books.

Without a subcommand it starts the web server. --seed and --force-seed
migrate the database, insert the sample items and exit.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetBool("seed")
		force, _ := cmd.Flags().GetBool("force-seed")
		switch {
		case force:
			return runSeed(cmd, true)
		case seed:
			return runSeed(cmd, false)
		}
		return runServe(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml); a .env in the working directory is read otherwise")
	rootCmd.PersistentFlags().String("database-url", "", "database url (sqlite:path or postgres://...)")
	rootCmd.PersistentFlags().String("log-mode", "", "development, production or test")
	_ = v.BindPFlag("database_url", rootCmd.PersistentFlags().Lookup("database-url"))
	_ = v.BindPFlag("log_mode", rootCmd.PersistentFlags().Lookup("log-mode"))

	rootCmd.Flags().Bool("seed", false, "migrate and seed an empty database, then exit")
	rootCmd.Flags().Bool("force-seed", false, "migrate and insert the sample items regardless, then exit")
	rootCmd.MarkFlagsMutuallyExclusive("seed", "force-seed")
	addServeFlags(rootCmd)
	addServeFlags(serveCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(forceSeedCmd)
	rootCmd.AddCommand(exportGraphCmd)
	rootCmd.AddCommand(versionCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("port", "", "listen port or host:port")
	cmd.Flags().String("dataset-source", "", "dataset directory, s3://bucket/prefix or gs://bucket/prefix")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := app.Migrate(cmd.Context(), cfg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database migrations completed")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate, then insert the sample items if the table is empty",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd, false)
	},
}

var forceSeedCmd = &cobra.Command{
	Use:   "force-seed",
	Short: "Migrate, then insert the sample items regardless of existing rows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd, true)
	},
}

var exportGraphCmd = &cobra.Command{
	Use:   "export-graph",
	Short: "Mirror the book and technology dataset into Neo4j (requires NEO4J_URI)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		stats, err := app.ExportGraph(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("export graph: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d books, %d technologies, %d categories, %d links\n",
			stats.Books, stats.Techs, stats.Categories, stats.Features)
		return nil
	},
}

func init() {
	exportGraphCmd.Flags().String("dataset-source", "", "dataset directory, s3://bucket/prefix or gs://bucket/prefix")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "techverse", app.Version)
	},
}

func loadConfig(cmd *cobra.Command) (app.Config, error) {
	for flag, key := range map[string]string{
		"port":           "port",
		"dataset-source": "dataset_source",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return app.Config{}, err
			}
		}
	}
	cfg, err := app.LoadConfig(v, configFile)
	if err != nil {
		return app.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}

func runSeed(cmd *cobra.Command, force bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	n, err := app.Seed(cmd.Context(), cfg, force)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d items\n", n)
	return nil
}
