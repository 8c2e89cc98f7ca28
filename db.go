package agentboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrUnknownResource = errors.New("agentboard: unknown resource")
	ErrNoRowStore      = errors.New("agentboard: no row store configured")
)

// RowStore returns the raw rows of a resource. Rows may use any column naming; the
// normalizer reconciles them.
type RowStore interface {
	Rows(ctx context.Context, resource Resource) ([]Row, error)
}

type QueryInterface interface {
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
}

// SQLRowStore reads rows from a SQL database, one query per resource. Column names come
// back exactly as the query selects them, so legacy column spellings flow through untouched.
type SQLRowStore struct {
	conn    QueryInterface
	queries map[Resource]string
}

func NewSQLRowStore(conn QueryInterface, queries map[Resource]string) *SQLRowStore {
	return &SQLRowStore{
		conn:    conn,
		queries: queries,
	}
}

func (s *SQLRowStore) Rows(ctx context.Context, resource Resource) ([]Row, error) {
	query, ok := s.queries[resource]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}

	rows, err := s.conn.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", resource, err)
	}
	// Let's make sure we don't have a memory leak!! :)
	defer rows.Close()

	objs := []Row{}
	for rows.Next() {
		row := map[string]interface{}{}
		err = rows.MapScan(row)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", resource, err)
		}

		// text columns come back as []byte from most drivers
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		objs = append(objs, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows %s: %w", resource, err)
	}
	return objs, nil
}
