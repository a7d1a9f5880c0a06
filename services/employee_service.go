package services

import (
	"context"
	"log/slog"

	"employee-records/models"
)

// PageView is one page of the employee list as shown to a client.
type PageView struct {
	Items       []models.Employee `json:"items"`
	CurrentPage int               `json:"current_page"`
	TotalPages  int               `json:"total_pages"`
	PageSize    int               `json:"page_size"`
	IsLoading   bool              `json:"is_loading"`
	Bar         PageBar           `json:"page_bar"`
}

// EmployeeService is the surface the presentation layer talks to. Storage
// failures never reach the caller: they are logged by the repository and
// turned into empty, nil or no-op results here.
type EmployeeService struct {
	repo   EmployeeRepository
	pages  *PageController
	logger *slog.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(repo EmployeeRepository, pages *PageController, logger *slog.Logger) *EmployeeService {
	return &EmployeeService{
		repo:   repo,
		pages:  pages,
		logger: logger,
	}
}

// ListPage loads the requested page. When a bulk job holds the controller
// and ctx ends before it finishes, the current state is shown as loading.
func (s *EmployeeService) ListPage(ctx context.Context, page int) PageView {
	state, err := s.pages.LoadPage(ctx, page)
	if err != nil {
		s.logger.Debug("page load interrupted", "page", page, "error", err)
		state.IsLoading = true
	}
	return newPageView(state)
}

// CreateEmployee stores a new employee and returns it, or nil when it could
// not be saved.
func (s *EmployeeService) CreateEmployee(ctx context.Context, fields models.EmployeeFields, icon []byte) *models.Employee {
	e := models.Employee{Icon: icon}
	e.Apply(fields)

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil
	}
	return &created
}

// GetEmployeeDetail returns nil when the employee does not exist or cannot
// be read.
func (s *EmployeeService) GetEmployeeDetail(ctx context.Context, id string) *models.Employee {
	e, err := s.repo.Fetch(ctx, id)
	if err != nil {
		return nil
	}
	return e
}

// UpdateEmployeeDetail reports whether the employee was updated.
func (s *EmployeeService) UpdateEmployeeDetail(ctx context.Context, id string, fields models.EmployeeFields) bool {
	return s.repo.Update(ctx, id, fields) == nil
}

// DeleteEmployee removes the employee and sends the list back to page 1.
// Nothing is reset when no employee was removed.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id string) bool {
	if err := s.repo.Delete(ctx, id); err != nil {
		return false
	}

	if _, err := s.pages.Reset(ctx); err != nil {
		s.logger.Debug("page reset after delete interrupted", "id", id, "error", err)
	}
	return true
}

func newPageView(state PageState) PageView {
	return PageView{
		Items:       state.Items,
		CurrentPage: state.CurrentPage,
		TotalPages:  state.TotalPages,
		PageSize:    state.PageSize,
		IsLoading:   state.IsLoading,
		Bar:         PageWindow(state.CurrentPage, state.TotalPages),
	}
}
