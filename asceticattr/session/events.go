package session

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

type QueryStartedEvent struct {
	QueryId ulid.ULID
	Query   string
	Params  []any
	Sender  any
}

type QueryEndedEvent struct {
	QueryId      ulid.ULID
	Query        string
	Params       []any
	Sender       any
	ResponseTime time.Duration
	Err          error
}

type QueryObserver interface {
	QueryStarted(QueryStartedEvent)
	QueryEnded(QueryEndedEvent)
}

// LogObserver writes query events to a logrus logger at debug level.
// Failed queries are logged as warnings.
type LogObserver struct {
	Logger logrus.FieldLogger
}

func (o LogObserver) QueryStarted(e QueryStartedEvent) {
	o.Logger.WithFields(logrus.Fields{
		"query_id": e.QueryId.String(),
		"params":   e.Params,
	}).Debug(e.Query)
}

func (o LogObserver) QueryEnded(e QueryEndedEvent) {
	entry := o.Logger.WithFields(logrus.Fields{
		"query_id":      e.QueryId.String(),
		"response_time": e.ResponseTime,
	})
	if e.Err != nil {
		entry.WithError(e.Err).Warn("query failed")
		return
	}
	entry.Debug("query done")
}

// Observe wraps conn so that every statement is reported to observer.
func Observe(conn DbConnection, sender any, observer QueryObserver) DbConnection {
	return &observedConnection{conn: conn, sender: sender, observer: observer}
}

type observedConnection struct {
	conn     DbConnection
	sender   any
	observer QueryObserver
}

func (c *observedConnection) start(query string, args []any) (ulid.ULID, time.Time) {
	id := ulid.Make()
	c.observer.QueryStarted(QueryStartedEvent{QueryId: id, Query: query, Params: args, Sender: c.sender})
	return id, time.Now()
}

func (c *observedConnection) end(id ulid.ULID, started time.Time, query string, args []any, err error) {
	c.observer.QueryEnded(QueryEndedEvent{
		QueryId:      id,
		Query:        query,
		Params:       args,
		Sender:       c.sender,
		ResponseTime: time.Since(started),
		Err:          err,
	})
}

func (c *observedConnection) Exec(query string, args ...any) (Result, error) {
	id, started := c.start(query, args)
	r, err := c.conn.Exec(query, args...)
	c.end(id, started, query, args, err)
	return r, err
}

func (c *observedConnection) Query(query string, args ...any) (Rows, error) {
	id, started := c.start(query, args)
	rows, err := c.conn.Query(query, args...)
	c.end(id, started, query, args, err)
	return rows, err
}

func (c *observedConnection) QueryRow(query string, args ...any) Row {
	id, started := c.start(query, args)
	row := c.conn.QueryRow(query, args...)
	c.end(id, started, query, args, nil)
	return row
}
