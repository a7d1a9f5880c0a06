package database

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"employee-records/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var employeeColumns = []string{
	"id", "icon", "name", "email", "birthday", "gender",
	"department", "join_date", "employee_number", "notes",
}

func newMockStore(t *testing.T) (*Store[models.Employee], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStore(db, employeeSchema), mock
}

func employeeRow(rows *sqlmock.Rows, id, name string) *sqlmock.Rows {
	day := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(id, nil, name, name+"@example.com", day, "male", "marketing", day, "E-"+id, "")
}

func TestStore_GeneratedSQL(t *testing.T) {
	store, _ := newMockStore(t)

	assert.Equal(t,
		"INSERT INTO employees (id, icon, name, email, birthday, gender, department, join_date, employee_number, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		store.insertSQL)
	assert.Equal(t,
		"UPDATE employees SET icon = ?, name = ?, email = ?, birthday = ?, gender = ?, department = ?, join_date = ?, employee_number = ?, notes = ? WHERE id = ?",
		store.updateSQL)
	assert.Equal(t, "DELETE FROM employees WHERE id = ?", store.deleteSQL)
}

func TestStore_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("Commit failure is a write error", func(t *testing.T) {
		store, mock := newMockStore(t)
		commitErr := errors.New("disk I/O error")

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO employees")).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit().WillReturnError(commitErr)

		err := store.Add(ctx, models.Employee{ID: "e1", Name: "Alice"})

		var writeErr *WriteError
		require.ErrorAs(t, err, &writeErr)
		assert.Equal(t, "add", writeErr.Op)
		assert.Equal(t, "employees", writeErr.Table)
		assert.ErrorIs(t, err, commitErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert failure rolls back", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO employees")).
			WillReturnError(errors.New("UNIQUE constraint failed: employees.id"))
		mock.ExpectRollback()

		err := store.Add(ctx, models.Employee{ID: "e1"})

		var writeErr *WriteError
		assert.ErrorAs(t, err, &writeErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Open failure is a read error", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin().WillReturnError(errors.New("unable to open database file"))

		records, err := store.GetAll(ctx)

		var readErr *ReadError
		require.ErrorAs(t, err, &readErr)
		assert.Equal(t, "get all", readErr.Op)
		assert.Nil(t, records)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ordered read", func(t *testing.T) {
		store, mock := newMockStore(t)

		rows := sqlmock.NewRows(employeeColumns)
		employeeRow(rows, "a", "Alice")
		employeeRow(rows, "b", "Bob")

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FROM employees ORDER BY name ASC, rowid ASC")).WillReturnRows(rows)
		mock.ExpectCommit()

		records, err := store.GetAll(ctx, OrderBy("name"))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Alice", records[0].Name)
		assert.Equal(t, models.GenderMale, records[0].Gender)
		assert.Equal(t, models.DepartmentMarketing, records[1].Department)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_Window(t *testing.T) {
	ctx := context.Background()

	t.Run("Count and slice share one transaction", func(t *testing.T) {
		store, mock := newMockStore(t)

		rows := sqlmock.NewRows(employeeColumns)
		employeeRow(rows, "c", "Carol")

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM employees")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY name ASC, rowid ASC LIMIT ? OFFSET ?")).
			WithArgs(1, 2).
			WillReturnRows(rows)
		mock.ExpectCommit()

		records, total, err := store.Window(ctx, 2, 1, OrderBy("name"))
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, records, 1)
		assert.Equal(t, "c", records[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Offset at the end skips the slice query", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM employees")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectCommit()

		records, total, err := store.Window(ctx, 3, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, records)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Query failure rolls back", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM employees")).
			WillReturnError(errors.New("database disk image is malformed"))
		mock.ExpectRollback()

		_, _, err := store.Window(ctx, 0, 10)

		var readErr *ReadError
		assert.ErrorAs(t, err, &readErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_GetByKey(t *testing.T) {
	ctx := context.Background()

	t.Run("Absent key is not an error", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE id = ?")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(employeeColumns))
		mock.ExpectCommit()

		_, found, err := store.GetByKey(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Scan failure is a read error", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE id = ?")).
			WithArgs("e1").
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		_, found, err := store.GetByKey(ctx, "e1")

		var readErr *ReadError
		assert.ErrorAs(t, err, &readErr)
		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Absent key commits without writing", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE id = ?")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(employeeColumns))
		mock.ExpectCommit()

		called := false
		found, err := store.Update(ctx, "missing", func(*models.Employee) { called = true })
		require.NoError(t, err)
		assert.False(t, found)
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Read and write happen in one transaction", func(t *testing.T) {
		store, mock := newMockStore(t)

		rows := sqlmock.NewRows(employeeColumns)
		employeeRow(rows, "e1", "Alice")

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE id = ?")).
			WithArgs("e1").
			WillReturnRows(rows)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE employees SET")).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		found, err := store.Update(ctx, "e1", func(e *models.Employee) { e.Name = "Alicia" })
		require.NoError(t, err)
		assert.True(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Write failure rolls back", func(t *testing.T) {
		store, mock := newMockStore(t)

		rows := sqlmock.NewRows(employeeColumns)
		employeeRow(rows, "e1", "Alice")

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE id = ?")).
			WithArgs("e1").
			WillReturnRows(rows)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE employees SET")).
			WillReturnError(errors.New("attempt to write a readonly database"))
		mock.ExpectRollback()

		found, err := store.Update(ctx, "e1", func(e *models.Employee) { e.Name = "Alicia" })

		var writeErr *WriteError
		assert.ErrorAs(t, err, &writeErr)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_Delete(t *testing.T) {
	tests := []struct {
		name      string
		affected  int64
		wantFound bool
	}{
		{name: "Existing key", affected: 1, wantFound: true},
		{name: "Absent key", affected: 0, wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM employees WHERE id = ?")).
				WithArgs("e1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectCommit()

			found, err := store.Delete(context.Background(), "e1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("Commit failure", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM employees WHERE id = ?")).
			WithArgs("e1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit().WillReturnError(errors.New("database is locked"))

		found, err := store.Delete(context.Background(), "e1")
		assert.False(t, found)

		var writeErr *WriteError
		assert.ErrorAs(t, err, &writeErr)
		assert.Equal(t, "delete", writeErr.Op)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
