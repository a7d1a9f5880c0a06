package services

import (
	"context"
	"employee-records/models"
)

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	ListRange(ctx context.Context, from, to int) ([]models.Employee, int, error)
	ListAll(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, e models.Employee) (models.Employee, error)
	Fetch(ctx context.Context, id string) (*models.Employee, error)
	Update(ctx context.Context, id string, fields models.EmployeeFields) error
	Delete(ctx context.Context, id string) error
}
