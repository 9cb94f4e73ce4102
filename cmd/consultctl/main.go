// Command consultctl runs operator tasks against the site database:
// migrations, admin grants, accounts, session pruning and demo content.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"consultancy/internal/backend/gormstore"
	"consultancy/internal/backend/localauth"
	"consultancy/internal/config"
	"consultancy/internal/database"
	jwtsvc "consultancy/internal/pkg/jwt"
	"consultancy/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "consultctl:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	databaseURL string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "consultctl",
		Short:         "Operate the consultancy site backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.databaseURL, "database", "", "database DSN (defaults to DATABASE_URL)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log what the command does")

	root.AddCommand(
		newMigrateCmd(opts),
		newAdminCmd(opts),
		newUserCmd(opts),
		newSessionsCmd(opts),
		newSeedCmd(opts),
	)
	return root
}

// env is what every subcommand works against.
type env struct {
	cfg   *config.Config
	db    *gorm.DB
	log   *zap.Logger
	store *gormstore.Store
	auth  *localauth.Service
}

func (o *rootOptions) open() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.databaseURL != "" {
		cfg.DatabaseURL = o.databaseURL
	}

	log := zap.NewNop()
	if o.verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			return nil, err
		}
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, server.Models()...); err != nil {
		return nil, err
	}

	return &env{
		cfg:   cfg,
		db:    db,
		log:   log,
		store: gormstore.New(db),
		auth:  localauth.NewService(db, jwtsvc.New(cfg.JWTSecret, cfg.SessionTTL), nil, log),
	}, nil
}

func (e *env) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = e.log.Sync()
}
