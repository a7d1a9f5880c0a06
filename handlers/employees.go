package handlers

import (
	"context"

	"employee-records/app"
	"employee-records/models"

	"github.com/gofiber/fiber/v2"
)

// ListEmployees returns one page of employees sorted by name
func ListEmployees(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)

		// a running bulk job holds the list; answer with the loading state
		// instead of waiting for it to finish
		ctx := c.UserContext()
		if a.Config != nil && a.Config.ListWaitTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, a.Config.ListWaitTimeout)
			defer cancel()
		}

		view := a.Employees.ListPage(ctx, page)

		return success(c, fiber.Map{"page": view})
	}
}

// GetEmployee returns the details of one employee
func GetEmployee(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		employee := a.Employees.GetEmployeeDetail(c.UserContext(), c.Params("id"))
		if employee == nil {
			return notFound(c, "Employee not found")
		}

		return success(c, fiber.Map{"employee": employee})
	}
}

// CreateEmployee registers a new employee
func CreateEmployee(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateEmployeeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		// Validate request
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		fields, err := employeeFields(req.Name, req.Email, req.Birthday, req.Gender,
			req.Department, req.JoinDate, req.EmployeeNumber, req.Notes)
		if err != nil {
			return badRequest(c, "Invalid date")
		}

		employee := a.Employees.CreateEmployee(c.UserContext(), fields, req.Icon)
		if employee == nil {
			return serverError(c, "Failed to create employee")
		}

		return created(c, fiber.Map{"employee": employee})
	}
}

// UpdateEmployee overwrites every editable field of an employee
func UpdateEmployee(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var req models.UpdateEmployeeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		// Validate request
		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		fields, err := employeeFields(req.Name, req.Email, req.Birthday, req.Gender,
			req.Department, req.JoinDate, req.EmployeeNumber, req.Notes)
		if err != nil {
			return badRequest(c, "Invalid date")
		}

		if !a.Employees.UpdateEmployeeDetail(c.UserContext(), id, fields) {
			if a.Employees.GetEmployeeDetail(c.UserContext(), id) == nil {
				return notFound(c, "Employee not found")
			}
			return serverError(c, "Failed to update employee")
		}

		employee := a.Employees.GetEmployeeDetail(c.UserContext(), id)
		if employee == nil {
			return notFound(c, "Employee not found")
		}

		return success(c, fiber.Map{"employee": employee})
	}
}

// DeleteEmployee removes an employee and returns the list to page 1
func DeleteEmployee(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !a.Employees.DeleteEmployee(c.UserContext(), id) {
			if a.Employees.GetEmployeeDetail(c.UserContext(), id) == nil {
				return notFound(c, "Employee not found")
			}
			return serverError(c, "Failed to delete employee")
		}

		return success(c, fiber.Map{"deleted": true})
	}
}

func employeeFields(name, email, birthday, gender, department, joinDate, number, notes string) (models.EmployeeFields, error) {
	born, err := parseDate(birthday)
	if err != nil {
		return models.EmployeeFields{}, err
	}
	joined, err := parseDate(joinDate)
	if err != nil {
		return models.EmployeeFields{}, err
	}

	return models.EmployeeFields{
		Name:           name,
		Email:          email,
		Birthday:       born,
		Gender:         models.Gender(gender),
		Department:     models.Department(department),
		JoinDate:       joined,
		EmployeeNumber: number,
		Notes:          notes,
	}, nil
}
