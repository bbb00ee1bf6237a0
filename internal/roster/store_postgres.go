package roster

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore reads the roster from the graduates table. The table mirrors
// the registrar's export: a full_name column plus a jsonb blob of attested
// attributes.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// LoadAll returns every roster record in insertion order. Insertion order is
// load-bearing: the matcher breaks ties by taking the first record.
func (s *PostgresStore) LoadAll(ctx context.Context) ([]Record, error) {
	rows, err := s.db.Query(ctx,
		`SELECT full_name, attributes
		 FROM graduates
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			fullName string
			attrs    []byte
		)
		if err := rows.Scan(&fullName, &attrs); err != nil {
			return nil, fmt.Errorf("scan roster record: %w", err)
		}
		rec := Record{FullName: fullName, Attributes: map[string]string{}}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &rec.Attributes); err != nil {
				return nil, fmt.Errorf("decode roster attributes for %q: %w", fullName, err)
			}
		}
		rec.Attributes[AttrFullName] = fullName
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read roster rows: %w", err)
	}
	return records, nil
}
