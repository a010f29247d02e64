package cmd

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/krew-solutions/ascetic-attr-go/asceticattr/catalog"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/session"
	pgxsession "github.com/krew-solutions/ascetic-attr-go/asceticattr/session/pgx"
	sqlsession "github.com/krew-solutions/ascetic-attr-go/asceticattr/session/sql"
)

func newSearchCmd(v *viper.Viper) *cobra.Command {
	var file string
	var limit int
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Print the ids of the observations matching a query document",
		Long: `Runs the query against database.dsn. database.driver selects pgx
(PostgreSQL, the default) or sqlite3.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := readTree(v, cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			compiler, err := newCompiler(v)
			if err != nil {
				return err
			}
			pool, closePool, err := openPool(cmd.Context(), v)
			if err != nil {
				return err
			}
			defer closePool()

			search := catalog.NewSearch(tree, compiler,
				catalog.WithLogger(logrus.StandardLogger()),
				catalog.WithLimit(limit),
			)
			return pool.Session(cmd.Context(), func(s session.Session) error {
				dbSession, ok := s.(session.DbSession)
				if !ok {
					return errors.New("session has no database connection")
				}
				ids, err := search.Evaluate(dbSession)
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				logrus.Debugf("%d observations found", len(ids))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "query document, - for stdin")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of ids, 0 for no limit")
	cmd.Flags().String("dsn", "", "database connection string")
	if err := v.BindPFlag("database.dsn", cmd.Flags().Lookup("dsn")); err != nil {
		panic(err)
	}
	return cmd
}

func openPool(ctx context.Context, v *viper.Viper) (session.SessionPool, func(), error) {
	dsn := v.GetString("database.dsn")
	if dsn == "" {
		return nil, nil, errors.New("database.dsn is not set")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	switch driver := v.GetString("database.driver"); driver {
	case "pgx", "postgres":
		pool, err := pgxsession.Connect(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return pool, pool.Close, nil
	case "sqlite3":
		db, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open sqlite3")
		}
		return sqlsession.NewSessionPool(db), func() { db.Close() }, nil
	default:
		return nil, nil, errors.Errorf("unknown database.driver %q", driver)
	}
}
