package catalog

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"

	"github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/infrastructure"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/session"
)

// Observation is one searchable record. Wave bounds are in Angstrom.
type Observation struct {
	ID         string
	Provider   string
	Source     string
	Instrument string
	Physobs    string
	Level      string
	Detector   string
	Start      time.Time
	End        time.Time
	WaveMin    float64
	WaveMax    float64
}

// Store writes observations into the table a compiler searches.
type Store struct {
	schema      *infrastructure.Schema
	placeholder infrastructure.Placeholder
}

func NewStore(compiler *infrastructure.Compiler) *Store {
	return &Store{schema: compiler.Schema(), placeholder: compiler.Placeholder()}
}

// Migrate creates the table when missing.
func (st *Store) Migrate(s session.DbSession) error {
	_, err := s.Connection().Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	provider TEXT,
	source TEXT,
	instrument TEXT,
	physobs TEXT,
	level TEXT,
	detector TEXT,
	time_start TIMESTAMP,
	time_end TIMESTAMP,
	wave_wavemin DOUBLE PRECISION,
	wave_wavemax DOUBLE PRECISION
)`, st.schema.Table))
	return errors.Wrapf(err, "create table %s", st.schema.Table)
}

// Save inserts o. An empty ID is filled with a fresh ULID.
func (st *Store) Save(s session.DbSession, o *Observation) error {
	if o.ID == "" {
		o.ID = ulid.Make().String()
	}
	query := st.placeholder.Rebind(fmt.Sprintf(
		`INSERT INTO %s (id, provider, source, instrument, physobs, level, detector,
	time_start, time_end, wave_wavemin, wave_wavemax)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, st.schema.Table))
	_, err := s.Connection().Exec(query,
		o.ID, o.Provider, o.Source, o.Instrument, o.Physobs, o.Level, o.Detector,
		o.Start.UTC(), o.End.UTC(), o.WaveMin, o.WaveMax,
	)
	return errors.Wrapf(err, "save observation %s", o.ID)
}

// SaveAll inserts every observation in one transaction.
func (st *Store) SaveAll(s session.DbSession, observations []*Observation) error {
	return s.Atomic(func(tx session.Session) error {
		dbTx, ok := tx.(session.DbSession)
		if !ok {
			return errors.New("transaction has no database connection")
		}
		for _, o := range observations {
			if err := st.Save(dbTx, o); err != nil {
				return err
			}
		}
		return nil
	})
}
