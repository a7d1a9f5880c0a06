package database

import (
	"context"
	"log/slog"
	"math"
	"time"

	"employee-records/models"

	"github.com/google/uuid"
)

var employeeSchema = Schema[models.Employee]{
	Table: "employees",
	Columns: []string{
		"id", "icon", "name", "email", "birthday", "gender",
		"department", "join_date", "employee_number", "notes",
	},
	Values: func(e models.Employee) []any {
		return []any{
			e.ID, e.Icon, e.Name, e.Email, e.Birthday, string(e.Gender),
			string(e.Department), e.JoinDate, e.EmployeeNumber, e.Notes,
		}
	},
	Scan: scanEmployee,
}

func scanEmployee(row Scanner) (models.Employee, error) {
	var e models.Employee
	var gender, department string

	if err := row.Scan(
		&e.ID, &e.Icon, &e.Name, &e.Email, &e.Birthday, &gender,
		&department, &e.JoinDate, &e.EmployeeNumber, &e.Notes,
	); err != nil {
		return models.Employee{}, err
	}

	e.Gender = models.Gender(gender)
	e.Department = models.Department(department)
	return e, nil
}

// EmployeeRepository implements the employee operations on top of Store.
// Storage failures are logged here and returned to the caller.
type EmployeeRepository struct {
	store  *Store[models.Employee]
	logger *slog.Logger
	now    func() time.Time
}

func NewEmployeeRepository(db *DB, logger *slog.Logger) *EmployeeRepository {
	return &EmployeeRepository{
		store:  NewStore(db.DB, employeeSchema),
		logger: logger,
		now:    time.Now,
	}
}

// ListRange returns the inclusive range [from, to] of employees sorted by
// name, clamped to the end of the list, together with the total count.
func (r *EmployeeRepository) ListRange(ctx context.Context, from, to int) ([]models.Employee, int, error) {
	if from < 0 || to < 0 || from > to {
		return nil, 0, &InvalidRangeError{From: from, To: to, Reason: ReasonInvalidIndex}
	}

	limit := to - from
	if limit < math.MaxInt {
		limit++
	}

	employees, total, err := r.store.Window(ctx, from, limit, OrderBy("name"))
	if err != nil {
		r.logger.Error("failed to list employees", "from", from, "to", to, "error", err)
		return nil, 0, err
	}

	if total == 0 {
		return []models.Employee{}, 0, nil
	}

	// from == total is accepted and yields an empty slice
	if from > total {
		return nil, total, &InvalidRangeError{From: from, To: to, Reason: ReasonInvalidRange}
	}

	return employees, total, nil
}

// ListAll returns every employee in storage order. On failure the slice is
// empty, never nil.
func (r *EmployeeRepository) ListAll(ctx context.Context) ([]models.Employee, error) {
	employees, err := r.store.GetAll(ctx)
	if err != nil {
		r.logger.Error("failed to get all employees", "error", err)
		return []models.Employee{}, err
	}
	return employees, nil
}

// Create stores a new employee under a freshly generated ID. A zero join
// date defaults to the creation time.
func (r *EmployeeRepository) Create(ctx context.Context, e models.Employee) (models.Employee, error) {
	e.ID = uuid.New().String()
	if e.JoinDate.IsZero() {
		e.JoinDate = r.now()
	}
	e.Birthday = normalizeTime(e.Birthday)
	e.JoinDate = normalizeTime(e.JoinDate)

	if err := r.store.Add(ctx, e); err != nil {
		r.logger.Error("failed to add employee", "name", e.Name, "error", err)
		return models.Employee{}, err
	}
	return e, nil
}

// Fetch returns nil when no employee has the given ID. Storage failures are
// also mapped to nil, with the error returned alongside.
func (r *EmployeeRepository) Fetch(ctx context.Context, id string) (*models.Employee, error) {
	e, found, err := r.store.GetByKey(ctx, id)
	if err != nil {
		r.logger.Error("failed to get employee", "id", id, "error", err)
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &e, nil
}

// Update overwrites the updatable fields of one employee in a single
// transaction. The ID and icon are left untouched.
func (r *EmployeeRepository) Update(ctx context.Context, id string, fields models.EmployeeFields) error {
	fields.Birthday = normalizeTime(fields.Birthday)
	fields.JoinDate = normalizeTime(fields.JoinDate)

	found, err := r.store.Update(ctx, id, func(e *models.Employee) {
		e.Apply(fields)
	})
	if err != nil {
		r.logger.Error("failed to update employee", "id", id, "error", err)
		return err
	}
	if !found {
		r.logger.Warn("employee not found for update", "id", id)
		return ErrEmployeeNotFound
	}
	return nil
}

// Delete removes one employee. It returns ErrEmployeeNotFound when no
// employee has the ID.
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	found, err := r.store.Delete(ctx, id)
	if err != nil {
		r.logger.Error("failed to delete employee", "id", id, "error", err)
		return err
	}
	if !found {
		r.logger.Warn("employee not found for delete", "id", id)
		return ErrEmployeeNotFound
	}
	return nil
}

// normalizeTime stores instants in UTC without a monotonic reading so they
// read back identical.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Round(0)
}
