package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hvacops/internal/app"
	"hvacops/internal/config"
	"hvacops/internal/database"
	"hvacops/internal/modules/dashboard"
	"hvacops/internal/repository"
)

var (
	cfg         *config.Config
	rollupDays  int
	seedConfirm bool
	hashCost    int

	rootCmd = &cobra.Command{
		Use:               "opsctl",
		Short:             "Operational tasks for the hvacops API database",
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			slog.SetDefault(app.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat))
			return nil
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update all tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				if err := database.Migrate(db); err != nil {
					return err
				}
				slog.Info("migration complete")
				return nil
			})
		},
	}

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with a demo dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !seedConfirm {
				return fmt.Errorf("seed deletes every row; rerun with --yes to continue")
			}
			return withDB(func(db *gorm.DB) error {
				if err := database.Migrate(db); err != nil {
					return err
				}
				return seedDemo(cmd.Context(), db, cfg, bcrypt.DefaultCost)
			})
		},
	}

	rollupCmd = &cobra.Command{
		Use:   "rollup-metrics",
		Short: "Recompute daily dashboard metrics for the last N days",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				svc := dashboard.NewService(
					repository.NewMetricRepository(db, cfg.DBTimeout),
					repository.NewJobRepository(db, cfg.DBTimeout),
					repository.NewLeadRepository(db, cfg.DBTimeout),
					repository.NewTechnicianRepository(db, cfg.DBTimeout),
				)
				rows, err := svc.Rollup(cmd.Context(), rollupDays)
				if err != nil {
					return err
				}
				slog.Info("metrics rolled up", "days", len(rows))
				return nil
			})
		},
	}

	hashPasswordCmd = &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for provisioning a user",
		Args:  cobra.ExactArgs(1),
		// no database or config needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			pw := strings.TrimSpace(args[0])
			if pw == "" {
				return fmt.Errorf("password must not be empty")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(pw), hashCost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
)

func init() {
	rollupCmd.Flags().IntVar(&rollupDays, "days", 30, "number of days to recompute, today included")
	seedCmd.Flags().BoolVar(&seedConfirm, "yes", false, "confirm wiping existing data")
	hashPasswordCmd.Flags().IntVar(&hashCost, "cost", bcrypt.DefaultCost, "bcrypt cost")

	rootCmd.AddCommand(migrateCmd, seedCmd, rollupCmd, hashPasswordCmd)
}

func withDB(fn func(db *gorm.DB) error) error {
	db, err := database.ConnectWithOptions(cfg.DatabaseURL, database.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return fn(db)
}
