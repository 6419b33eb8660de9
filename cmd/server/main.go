package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"nzpt/internal/artifacts"
	"nzpt/internal/config"
	"nzpt/internal/db"
	"nzpt/internal/server"
	"nzpt/internal/stats"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "nzpt",
		Short: "New Zealand Parliament urgency tracker",
		Long: `nzpt serves statistics on the New Zealand Parliament's use of urgency.

Figures are read from the sitting-day and bill tables plus the
lastupdate.txt and billcounter.txt files written by the ingestion job.
Configuration comes from the environment.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// setup loads and validates configuration and installs the default logger.
func setup() (*config.Config, error) {
	cfg := config.Load()

	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(handler))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openStats connects to the database and builds the stats service over it.
func openStats(ctx context.Context, cfg *config.Config) (*db.DB, *stats.Service, *config.ParliamentsConfig, error) {
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	parliaments, err := config.LoadParliaments(cfg.ParliamentsFile, cfg.CurrentParliament)
	if err != nil {
		database.Close()
		return nil, nil, nil, err
	}
	terms, err := stats.TermsFromConfig(parliaments)
	if err != nil {
		database.Close()
		return nil, nil, nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		database.Close()
		return nil, nil, nil, err
	}

	files := artifacts.NewFiles(cfg.LastUpdateFile, cfg.BillCounterFile)
	svc := stats.NewService(database, files, cfg.CurrentParliament, terms, loc)
	return database, svc, parliaments, nil
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the urgency tracker website",
		RunE: func(cmd *cobra.Command, args []string) error {
			runMigrations, _ := cmd.Flags().GetBool("migrate")

			cfg, err := setup()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			database, svc, parliaments, err := openStats(ctx, cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			if runMigrations {
				if err := database.RunMigrations(); err != nil {
					return fmt.Errorf("failed to run migrations: %w", err)
				}
				slog.Info("migrations completed successfully")
			}

			srv := server.New(cfg)
			srv.RegisterRoutes(database, svc, parliaments.PageUpdated)

			// Graceful shutdown
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return fmt.Errorf("server error: %w", err)
			case <-quit:
			}

			slog.Info("shutting down server")
			if err := srv.Shutdown(); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			slog.Info("server exited")
			return nil
		},
	}

	cmd.Flags().Bool("migrate", false, "Apply database migrations before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			database, err := db.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()

			if err := database.RunMigrations(); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			slog.Info("migrations completed successfully", "dialect", database.Dialect)
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load development fixtures for the current parliament",
		Long: `Load a few months of sitting days and a handful of bills for the
current parliament so the site can be previewed without the ingestion job.
Refuses to run outside development.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if !cfg.IsDev() {
				return fmt.Errorf("seed only runs with ENV=development, got %q", cfg.Env)
			}

			database, err := db.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()

			if err := database.RunMigrations(); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			if err := database.SeedDev(cmd.Context(), cfg.CurrentParliament); err != nil {
				return err
			}
			slog.Info("seeded development data", "parliament", cfg.CurrentParliament)
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the current parliament's urgency statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			database, svc, _, err := openStats(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			sum, err := svc.Current(cmd.Context(), time.Now())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Parliament\t%s\n", sum.ParliamentOrdinal)
			fmt.Fprintf(w, "Days sat\t%d\n", sum.DaysSat)
			fmt.Fprintf(w, "Days in urgency\t%d (%v%%)\n", sum.DaysUrgent, sum.PercentUrgent)
			fmt.Fprintf(w, "Last urgent day\t%s\n", sum.LastUrgentDate)
			fmt.Fprintf(w, "Days since urgency\t%s\n", sum.DaysSinceUrgency)
			fmt.Fprintf(w, "Bills under urgency\t%d of %d (%v%%)\n", sum.BillsUrgent, sum.TotalBills, sum.PercentBillsUrgent)
			fmt.Fprintf(w, "Last updated\t%s\n", sum.LastUpdated)
			return w.Flush()
		},
	}
}
