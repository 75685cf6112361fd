package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hrdesk/internal/app/server"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/platform/config"
	"hrdesk/internal/platform/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hrdesk",
		Short: "hrdesk - employee, leave and payroll management",
		Long: `hrdesk - employee, leave and payroll management.

All settings are read from the environment, optionally preloaded from a
.env file (ENV_FILE). Run without a subcommand to start the web server.`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			RunE:  runMigrate,
		},
		newSeedCmd(),
		&cobra.Command{
			Use:   "hash-password [password]",
			Short: "Print a bcrypt hash suitable for the password_hash column",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				hash, err := auth.HashPassword(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), hash)
				return nil
			},
		},
	)
	return root
}

func loadConfig() (config.Config, error) {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return cfg, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return err
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server failed")
		return err
	}
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := server.Migrate(cmd.Context(), cfg); err != nil {
		log.Error().Err(err).Msg("migrations failed")
		return err
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("migrations complete")
	return nil
}

func newSeedCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if email == "" {
				email = cfg.SeedAdminEmail
			}
			if password == "" {
				password = cfg.SeedAdminPassword
			}
			if email == "" || password == "" {
				return errors.New("an admin email and password are required")
			}
			created, err := server.SeedAdmin(cmd.Context(), cfg, email, password)
			if err != nil {
				log.Error().Err(err).Msg("seed failed")
				return err
			}
			log.Info().Str("email", email).Bool("created", created).Msg("seed complete")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email (default SEED_ADMIN_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (default SEED_ADMIN_PASSWORD)")
	return cmd
}
