package pgx

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/krew-solutions/ascetic-attr-go/asceticattr/session"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/session/result"
)

// Session represents a database session without transaction
type Session struct {
	ctx  context.Context
	conn *pgxpool.Conn
}

func NewSession(ctx context.Context, conn *pgxpool.Conn) *Session {
	return &Session{ctx: ctx, conn: conn}
}

func (s *Session) Context() context.Context {
	return s.ctx
}

func (s *Session) Connection() session.DbConnection {
	return &connection{ctx: s.ctx, exec: s.conn}
}

func (s *Session) Atomic(callback session.SessionCallback) error {
	tx, err := s.conn.Begin(s.ctx)
	if err != nil {
		return errors.Wrap(err, "unable to start transaction")
	}
	return atomic(s.ctx, tx, NewTransactionSession(s.ctx, tx), callback, "transaction")
}

// TransactionSession represents a session inside transaction
type TransactionSession struct {
	ctx context.Context
	tx  pgx.Tx
}

func NewTransactionSession(ctx context.Context, tx pgx.Tx) *TransactionSession {
	return &TransactionSession{ctx: ctx, tx: tx}
}

func (s *TransactionSession) Context() context.Context {
	return s.ctx
}

func (s *TransactionSession) Connection() session.DbConnection {
	return &connection{ctx: s.ctx, exec: s.tx}
}

// Atomic runs callback inside a savepoint.
func (s *TransactionSession) Atomic(callback session.SessionCallback) error {
	nestedTx, err := s.tx.Begin(s.ctx)
	if err != nil {
		return errors.Wrap(err, "unable to start savepoint")
	}
	return atomic(s.ctx, nestedTx, NewTransactionSession(s.ctx, nestedTx), callback, "savepoint")
}

func atomic(ctx context.Context, tx pgx.Tx, txSession session.Session, callback session.SessionCallback, label string) error {
	if err := callback(txSession); err != nil {
		if txErr := tx.Rollback(ctx); txErr != nil {
			return multierror.Append(err, txErr)
		}
		return err
	}
	if txErr := tx.Commit(ctx); txErr != nil {
		return errors.Wrapf(txErr, "failed to commit %s", label)
	}
	return nil
}

// executor interface for both *pgxpool.Conn and pgx.Tx
type executor interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}

// connection implements session.DbConnection
type connection struct {
	ctx  context.Context
	exec executor
}

func (c *connection) Exec(query string, args ...any) (session.Result, error) {
	if session.IsAutoincrementInsertQuery(query) {
		return c.insert(query, args...)
	}
	tag, err := c.exec.Exec(c.ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return result.New(0, tag.RowsAffected()), nil
}

func (c *connection) insert(query string, args ...any) (session.Result, error) {
	var id int64
	if err := c.exec.QueryRow(c.ctx, query, args...).Scan(&id); err != nil {
		return nil, err
	}
	return result.New(id, 0), nil
}

func (c *connection) Query(query string, args ...any) (session.Rows, error) {
	r, err := c.exec.Query(c.ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows{r}, nil
}

func (c *connection) QueryRow(query string, args ...any) session.Row {
	return c.exec.QueryRow(c.ctx, query, args...)
}

// rows adapts pgx.Rows, whose Close reports nothing, to session.Rows.
type rows struct {
	pgx.Rows
}

func (r rows) Close() error {
	r.Rows.Close()
	return r.Rows.Err()
}
