package pgx

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/krew-solutions/ascetic-attr-go/asceticattr/session"
)

type SessionPool struct {
	pool *pgxpool.Pool
}

func NewSessionPool(pool *pgxpool.Pool) *SessionPool {
	return &SessionPool{pool: pool}
}

// Connect opens a pool for dsn.
func Connect(ctx context.Context, dsn string) (*SessionPool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open pool")
	}
	return NewSessionPool(pool), nil
}

func (p *SessionPool) Close() {
	p.pool.Close()
}

func (p *SessionPool) Session(ctx context.Context, callback session.SessionPoolCallback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to acquire connection")
	}
	defer conn.Release()

	return callback(NewSession(ctx, conn))
}
