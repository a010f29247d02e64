package catalog

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	attr "github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/domain"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/attr/infrastructure"
	"github.com/krew-solutions/ascetic-attr-go/asceticattr/session"
)

var _ session.QueryEvaluator[[]string] = (*Search)(nil)

type SearchOption func(*Search)

func WithLogger(logger logrus.FieldLogger) SearchOption {
	return func(s *Search) {
		s.logger = logger
	}
}

// WithLimit caps the number of returned ids. Zero means no limit.
func WithLimit(limit int) SearchOption {
	return func(s *Search) {
		s.limit = limit
	}
}

// Search selects the ids of the records matching tree.
type Search struct {
	tree     attr.Attr
	compiler *infrastructure.Compiler
	logger   logrus.FieldLogger
	limit    int
}

func NewSearch(tree attr.Attr, compiler *infrastructure.Compiler, opts ...SearchOption) *Search {
	s := &Search{
		tree:     tree,
		compiler: compiler,
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Search) SQL() (string, []any, error) {
	where, params, err := s.compiler.Compile(s.tree)
	if err != nil {
		return "", nil, err
	}
	schema := s.compiler.Schema()
	id := schema.Ref("id")
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s", id, schema.From(), where, id)
	if s.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", s.limit)
	}
	return query, params, nil
}

func (s *Search) Evaluate(sess session.DbSession) (ids []string, err error) {
	query, params, err := s.SQL()
	if err != nil {
		return nil, err
	}
	conn := session.Observe(sess.Connection(), s, session.LogObserver{Logger: s.logger})
	rows, err := conn.Query(query, params...)
	if err != nil {
		return nil, errors.Wrap(err, "search observations")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = multierror.Append(err, closeErr).ErrorOrNil()
		}
	}()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scan observation id")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "search observations")
	}
	return ids, nil
}
