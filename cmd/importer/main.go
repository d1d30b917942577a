// Command importer is the Brotherhood legacy-data CLI.
//
// Usage:
//
//	brotherhood-import translate groups --host staging
//	brotherhood-import import people --host staging --force
//	brotherhood-import import groups --host production
//	brotherhood-import geo fetch --host staging
//	brotherhood-import import areas --host staging
//
// Each command takes an optional positional env-file argument (default .env).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tcassidy/brotherhood-data/internal/config"
	"github.com/tcassidy/brotherhood-data/internal/db"
	"github.com/tcassidy/brotherhood-data/internal/geo"
	"github.com/tcassidy/brotherhood-data/internal/importer"
	"github.com/tcassidy/brotherhood-data/internal/mapping"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// host selects the data/<host>/ subtree commands read and write.
var host string

func main() {
	root := &cobra.Command{
		Use:   "brotherhood-import",
		Short: "Brotherhood legacy data translation and import CLI",
	}
	root.PersistentFlags().StringVar(&host, "host", "production", "Data host subdirectory (data/<host>/...)")

	root.AddCommand(translateCmd())
	root.AddCommand(importCmd())
	root.AddCommand(geoCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// translate command
// --------------------------------------------------------------------------

func translateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate legacy export files into target-schema JSON",
	}
	cmd.AddCommand(translateGroupsCmd())
	return cmd
}

func translateGroupsCmd() *cobra.Command {
	var opts importer.TranslateOptions
	cmd := &cobra.Command{
		Use:   "groups [env-file]",
		Short: "Classify legacy groups and write i-group/f-group files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loadEnv(args)
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			areas, err := mapping.Load(cfg.HostDir(host, "areas"))
			if err != nil {
				return fmt.Errorf("load area mappings: %w", err)
			}
			communities, err := mapping.Load(cfg.HostDir(host, "communities"))
			if err != nil {
				return fmt.Errorf("load community mappings: %w", err)
			}
			maps := importer.Mappings{Areas: areas, Communities: communities}
			logger.Info("Mappings loaded", "areas", areas.Len(), "communities", communities.Len())

			start := time.Now()
			stats, err := importer.TranslateGroups(
				cfg.HostDir(host, "groups"),
				filepath.Join(cfg.DataDir, host),
				maps, opts, logger,
			)
			if err != nil {
				return fmt.Errorf("translate groups: %w", err)
			}
			logger.Info("Translate finished",
				"duration", time.Since(start).Round(time.Millisecond),
				"summary", stats.Summary())
			logFailures(stats)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Run every step except writing output files")
	cmd.Flags().BoolVar(&opts.Pretty, "pretty", false, "Indent output JSON")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite existing output files")
	return cmd
}

// --------------------------------------------------------------------------
// import command
// --------------------------------------------------------------------------

type importFn func(ctx context.Context, store *importer.Store, srcDir string, opts importer.Options, logger *slog.Logger) (*importer.Stats, error)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import translated files into the database",
	}
	cmd.AddCommand(importEntityCmd("areas", "Import areas", "areas", importer.ImportAreas))
	cmd.AddCommand(importEntityCmd("communities", "Import communities", "communities", importer.ImportCommunities))
	cmd.AddCommand(importEntityCmd("people", "Import people", "people", importer.ImportPeople))
	cmd.AddCommand(importEntityCmd("venues", "Import venues", "venues", importer.ImportVenues))
	cmd.AddCommand(importEntityCmd("warriors", "Import warriors", "warriors", importer.ImportWarriors))
	cmd.AddCommand(importGroupsCmd())
	return cmd
}

func importEntityCmd(use, short, entity string, fn importFn) *cobra.Command {
	var opts importer.Options
	var srcDir string
	cmd := &cobra.Command{
		Use:   use + " [env-file]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args, func(ctx context.Context, cfg *config.Config, store *importer.Store) error {
				src := srcDir
				if src == "" {
					src = cfg.HostDir(host, entity)
				}
				start := time.Now()
				stats, err := fn(ctx, store, src, opts, logger)
				if err != nil {
					return fmt.Errorf("import %s: %w", entity, err)
				}
				logger.Info("Import finished",
					"entity", entity,
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", stats.Summary())
				logFailures(stats)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Update existing records instead of skipping")
	cmd.Flags().StringVar(&srcDir, "src", "", "Source directory (default data/<host>/"+entity+"; use the geo fetch output for areas/communities)")
	return cmd
}

// importGroupsCmd reads from the translate output root, not a single
// entity dir: ImportGroups walks i-groups/ and f-groups/ underneath it.
func importGroupsCmd() *cobra.Command {
	var opts importer.Options
	cmd := &cobra.Command{
		Use:   "groups [env-file]",
		Short: "Import translated i-groups and f-groups",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args, func(ctx context.Context, cfg *config.Config, store *importer.Store) error {
				start := time.Now()
				stats, err := importer.ImportGroups(ctx, store, filepath.Join(cfg.DataDir, host), opts, logger)
				if err != nil {
					return fmt.Errorf("import groups: %w", err)
				}
				logger.Info("Import finished",
					"entity", "groups",
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", stats.Summary())
				logFailures(stats)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Update existing records instead of skipping")
	return cmd
}

// --------------------------------------------------------------------------
// geo command
// --------------------------------------------------------------------------

func geoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geo",
		Short: "Manage the area/community reference dataset",
	}
	cmd.AddCommand(geoFetchCmd())
	return cmd
}

func geoFetchCmd() *cobra.Command {
	var opts geo.Options
	cmd := &cobra.Command{
		Use:   "fetch [env-file]",
		Short: "Download and extract the geography reference dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loadEnv(args)
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			start := time.Now()
			dir, err := geo.Fetch(ctx, cfg.GeoDatasetURL, filepath.Join(cfg.DataDir, host), opts, logger)
			if err != nil {
				return fmt.Errorf("fetch geography dataset: %w", err)
			}
			logger.Info("Geography dataset ready",
				"dir", dir,
				"duration", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.SkipDownload, "skip-download", false, "Reuse a previously downloaded archive")
	cmd.Flags().BoolVar(&opts.SkipExtract, "skip-extract", false, "Reuse a previously extracted dataset")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Re-download even if the archive exists")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// loadEnv loads the positional env-file argument, falling back to .env.
func loadEnv(args []string) {
	envFile := ".env"
	if len(args) > 0 {
		envFile = args[0]
	}
	_ = godotenv.Load(envFile)
}

// runImport handles env loading, config, DB connection, and context
// cancellation. Per-record errors stay inside Stats; only run-level
// failures propagate (and exit non-zero).
func runImport(args []string, fn func(ctx context.Context, cfg *config.Config, store *importer.Store) error) error {
	loadEnv(args)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, importer.NewStore(pool.Pool))
}

func logFailures(stats *importer.Stats) {
	for _, f := range stats.Failures {
		logger.Error("record error", "error", f)
	}
}
