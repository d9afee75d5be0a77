// Command protrackctl runs product imports and schema maintenance against the
// inventory store, either Postgres (configured from the environment) or a
// local SQLite file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fekuna/protrack-service/config"
	"github.com/fekuna/protrack-service/internal/database"
	"github.com/fekuna/protrack-service/internal/logger"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	sqlitePath  string
	usePostgres bool
	verbose     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts globalOptions

	root := &cobra.Command{
		Use:           "protrackctl",
		Short:         "Operator tool for the ProTrack inventory store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().StringVar(&opts.sqlitePath, "db", "protrack.db", "SQLite database file for local mode")
	root.PersistentFlags().BoolVar(&opts.usePostgres, "postgres", false, "Use the Postgres database configured by POSTGRES_* variables")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		newMigrateCmd(&opts),
		newImportCmd(&opts),
		newTemplateCmd(),
		newProductsCmd(&opts),
	)
	return root
}

func (o *globalOptions) logger() logger.ZapLogger {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	return logger.NewZapLogger(&logger.ZapLoggerConfig{
		Encoding:          "console",
		Level:             level,
		DisableCaller:     true,
		DisableStacktrace: true,
	})
}

// openDB connects to the selected store and makes sure the schema exists.
func (o *globalOptions) openDB(ctx context.Context) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	if o.usePostgres {
		cfg := config.LoadEnv()
		db, err = database.NewPostgres(&database.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    2,
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
	} else {
		db, err = database.NewSQLite(o.sqlitePath)
	}
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
