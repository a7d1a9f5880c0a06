package models

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Genders lists the labels accepted for Employee.Gender.
var Genders = []Gender{GenderMale, GenderFemale}

func (g Gender) Valid() bool {
	for _, known := range Genders {
		if g == known {
			return true
		}
	}
	return false
}

type Department string

const (
	DepartmentEngineering Department = "engineering"
	DepartmentMarketing   Department = "marketing"
	DepartmentAccounting  Department = "accounting"
)

// Departments lists the labels accepted for Employee.Department.
var Departments = []Department{DepartmentEngineering, DepartmentMarketing, DepartmentAccounting}

func (d Department) Valid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// Employee is the only record type kept by the application.
// ID is assigned once at creation and never changes.
type Employee struct {
	ID             string     `json:"id"`
	Icon           []byte     `json:"icon,omitempty"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Birthday       time.Time  `json:"birthday"`
	Gender         Gender     `json:"gender"`
	Department     Department `json:"department"`
	JoinDate       time.Time  `json:"join_date"`
	EmployeeNumber string     `json:"employee_number"`
	Notes          string     `json:"notes"`
}

// EmployeeFields is the whole-field update contract. The icon is not part of it.
type EmployeeFields struct {
	Name           string
	Email          string
	Birthday       time.Time
	Gender         Gender
	Department     Department
	JoinDate       time.Time
	EmployeeNumber string
	Notes          string
}

// Apply overwrites every field covered by the update contract.
func (e *Employee) Apply(f EmployeeFields) {
	e.Name = f.Name
	e.Email = f.Email
	e.Birthday = f.Birthday
	e.Gender = f.Gender
	e.Department = f.Department
	e.JoinDate = f.JoinDate
	e.EmployeeNumber = f.EmployeeNumber
	e.Notes = f.Notes
}

// Fields returns the updatable part of the record.
func (e Employee) Fields() EmployeeFields {
	return EmployeeFields{
		Name:           e.Name,
		Email:          e.Email,
		Birthday:       e.Birthday,
		Gender:         e.Gender,
		Department:     e.Department,
		JoinDate:       e.JoinDate,
		EmployeeNumber: e.EmployeeNumber,
		Notes:          e.Notes,
	}
}

type CreateEmployeeRequest struct {
	Icon           []byte `json:"icon"`
	Name           string `json:"name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,max=254,basicemail"`
	Birthday       string `json:"birthday" validate:"required,dateformat"`
	Gender         string `json:"gender" validate:"required,gender"`
	Department     string `json:"department" validate:"required,department"`
	JoinDate       string `json:"join_date" validate:"omitempty,dateformat"`
	EmployeeNumber string `json:"employee_number" validate:"required,max=50"`
	Notes          string `json:"notes" validate:"max=1000"`
}

type UpdateEmployeeRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,max=254,basicemail"`
	Birthday       string `json:"birthday" validate:"required,dateformat"`
	Gender         string `json:"gender" validate:"required,gender"`
	Department     string `json:"department" validate:"required,department"`
	JoinDate       string `json:"join_date" validate:"required,dateformat"`
	EmployeeNumber string `json:"employee_number" validate:"required,max=50"`
	Notes          string `json:"notes" validate:"max=1000"`
}

type SubmitJobRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=seed purge"`
	Count int    `json:"count" validate:"gte=0,lte=10000"`
}
