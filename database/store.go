package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Schema describes how records of type T map onto a single table.
// Columns[0] is the primary key; Values must return the columns in order.
type Schema[T any] struct {
	Table   string
	Columns []string
	Values  func(T) []any
	Scan    func(Scanner) (T, error)
}

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// QueryOption adjusts the ordering of a multi-record read.
type QueryOption func(*query)

type query struct {
	orderBy string
}

// OrderBy sorts ascending by column. Ties keep insertion order.
func OrderBy(column string) QueryOption {
	return func(q *query) {
		q.orderBy = column
	}
}

func (q query) clause() string {
	if q.orderBy == "" {
		return ""
	}
	return " ORDER BY " + q.orderBy + " ASC, rowid ASC"
}

// Store is generic CRUD over one table. Every call runs in its own
// transaction; nothing is held between calls.
type Store[T any] struct {
	db     *sql.DB
	schema Schema[T]

	selectSQL string
	insertSQL string
	updateSQL string
	deleteSQL string
	countSQL  string
}

func NewStore[T any](db *sql.DB, schema Schema[T]) *Store[T] {
	key := schema.Columns[0]
	cols := strings.Join(schema.Columns, ", ")
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(schema.Columns)), ", ")

	sets := make([]string, 0, len(schema.Columns)-1)
	for _, col := range schema.Columns[1:] {
		sets = append(sets, col+" = ?")
	}

	return &Store[T]{
		db:        db,
		schema:    schema,
		selectSQL: fmt.Sprintf("SELECT %s FROM %s", cols, schema.Table),
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", schema.Table, cols, placeholders),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", schema.Table, strings.Join(sets, ", "), key),
		deleteSQL: fmt.Sprintf("DELETE FROM %s WHERE %s = ?", schema.Table, key),
		countSQL:  fmt.Sprintf("SELECT COUNT(*) FROM %s", schema.Table),
	}
}

// Add inserts obj. A duplicate primary key fails like any other write.
func (s *Store[T]) Add(ctx context.Context, obj T) error {
	err := s.within(ctx, false, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, s.insertSQL, s.schema.Values(obj)...)
		return err
	})
	if err != nil {
		return s.writeError("add", err)
	}
	return nil
}

// GetAll returns every record as a point-in-time slice.
func (s *Store[T]) GetAll(ctx context.Context, opts ...QueryOption) ([]T, error) {
	q := buildQuery(opts)

	var records []T
	err := s.within(ctx, true, func(tx *sql.Tx) error {
		var err error
		records, err = s.scanAll(ctx, tx, s.selectSQL+q.clause())
		return err
	})
	if err != nil {
		return nil, s.readError("get all", err)
	}
	return records, nil
}

// Window counts the table and reads [offset, offset+limit) in the same
// transaction, so the slice always matches the returned total.
func (s *Store[T]) Window(ctx context.Context, offset, limit int, opts ...QueryOption) ([]T, int, error) {
	q := buildQuery(opts)

	records := make([]T, 0)
	var total int
	err := s.within(ctx, true, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, s.countSQL).Scan(&total); err != nil {
			return err
		}
		if offset < 0 || limit <= 0 || offset >= total {
			return nil
		}

		var err error
		records, err = s.scanAll(ctx, tx, s.selectSQL+q.clause()+" LIMIT ? OFFSET ?", limit, offset)
		return err
	})
	if err != nil {
		return nil, 0, s.readError("window", err)
	}
	return records, total, nil
}

// GetByKey returns found=false, with no error, when the key is absent.
func (s *Store[T]) GetByKey(ctx context.Context, key string) (T, bool, error) {
	var (
		record T
		found  bool
	)
	err := s.within(ctx, true, func(tx *sql.Tx) error {
		var err error
		record, found, err = s.getByKey(ctx, tx, key)
		return err
	})
	if err != nil {
		var zero T
		return zero, false, s.readError("get by key", err)
	}
	return record, found, nil
}

// Update loads the record, applies mutate and writes every non-key column
// back in one transaction. It reports found=false when the key is absent.
func (s *Store[T]) Update(ctx context.Context, key string, mutate func(*T)) (bool, error) {
	var found bool
	err := s.within(ctx, false, func(tx *sql.Tx) error {
		record, ok, err := s.getByKey(ctx, tx, key)
		if err != nil || !ok {
			return err
		}
		found = true

		mutate(&record)

		args := append(s.schema.Values(record)[1:], key)
		_, err = tx.ExecContext(ctx, s.updateSQL, args...)
		return err
	})
	if err != nil {
		return false, s.writeError("update", err)
	}
	return found, nil
}

// Delete removes the record with key. It reports found=false when the key
// is absent.
func (s *Store[T]) Delete(ctx context.Context, key string) (bool, error) {
	var found bool
	err := s.within(ctx, false, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, s.deleteSQL, key)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		found = n > 0
		return nil
	})
	if err != nil {
		return false, s.writeError("delete", err)
	}
	return found, nil
}

func (s *Store[T]) getByKey(ctx context.Context, tx *sql.Tx, key string) (T, bool, error) {
	row := tx.QueryRowContext(ctx, s.selectSQL+" WHERE "+s.schema.Columns[0]+" = ?", key)
	record, err := s.schema.Scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return record, true, nil
}

func (s *Store[T]) scanAll(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]T, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	records := make([]T, 0)
	for rows.Next() {
		record, err := s.schema.Scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func (s *Store[T]) within(ctx context.Context, readOnly bool, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: readOnly})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	committed = true
	return nil
}

func (s *Store[T]) readError(op string, err error) error {
	return &ReadError{Op: op, Table: s.schema.Table, Err: err}
}

func (s *Store[T]) writeError(op string, err error) error {
	return &WriteError{Op: op, Table: s.schema.Table, Err: err}
}

func buildQuery(opts []QueryOption) query {
	var q query
	for _, opt := range opts {
		opt(&q)
	}
	return q
}
