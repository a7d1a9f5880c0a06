package services

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"employee-records/database"
	"employee-records/models"
)

const (
	DefaultPageSize = 50

	// pageButtonCount is the number of page buttons shown in a page bar
	pageButtonCount = 5
)

// PageState is the observable state of a PageController.
type PageState struct {
	CurrentPage int               `json:"current_page"`
	TotalPages  int               `json:"total_pages"`
	PageSize    int               `json:"page_size"`
	Items       []models.Employee `json:"items"`
	IsLoading   bool              `json:"is_loading"`
}

// PageController turns page numbers into index ranges and keeps the total
// page count in line with the repository. Page loads and exclusive jobs are
// serialized; readers of the state never wait for them.
type PageController struct {
	repo     EmployeeRepository
	logger   *slog.Logger
	pageSize int

	// turn is held by the running page load or exclusive job
	turn chan struct{}

	mu    sync.RWMutex
	state PageState
}

func NewPageController(repo EmployeeRepository, pageSize int, logger *slog.Logger) *PageController {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &PageController{
		repo:     repo,
		logger:   logger,
		pageSize: pageSize,
		turn:     make(chan struct{}, 1),
		state: PageState{
			CurrentPage: 1,
			TotalPages:  1,
			PageSize:    pageSize,
			Items:       []models.Employee{},
		},
	}
}

// LoadPage loads the given page. While another load or a job holds the
// controller it waits; if ctx ends first the current state is returned
// unchanged together with ctx.Err().
func (pc *PageController) LoadPage(ctx context.Context, page int) (PageState, error) {
	if err := pc.acquire(ctx); err != nil {
		return pc.Snapshot(), err
	}
	defer pc.release()

	return pc.load(ctx, page), nil
}

// Reset goes back to the first page. Used after mutations that change the
// listing, instead of working out where the current page moved to.
func (pc *PageController) Reset(ctx context.Context) (PageState, error) {
	return pc.LoadPage(ctx, 1)
}

func (pc *PageController) First(ctx context.Context) (PageState, error) {
	return pc.LoadPage(ctx, 1)
}

func (pc *PageController) Last(ctx context.Context) (PageState, error) {
	if err := pc.acquire(ctx); err != nil {
		return pc.Snapshot(), err
	}
	defer pc.release()

	pc.mu.RLock()
	last := pc.state.TotalPages
	pc.mu.RUnlock()

	return pc.load(ctx, last), nil
}

// RunExclusive runs fn with the controller marked as loading. Page loads
// wait until fn returns; afterwards the controller is back on page 1.
func (pc *PageController) RunExclusive(ctx context.Context, fn func(context.Context) error) error {
	if err := pc.acquire(ctx); err != nil {
		return err
	}
	defer pc.release()

	pc.mu.Lock()
	pc.state.IsLoading = true
	pc.mu.Unlock()

	err := fn(ctx)
	pc.load(ctx, 1)
	return err
}

// Snapshot returns a copy of the current state.
func (pc *PageController) Snapshot() PageState {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.snapshotLocked()
}

func (pc *PageController) load(ctx context.Context, page int) PageState {
	if page < 1 {
		page = 1
	}

	pc.mu.Lock()
	pc.state.IsLoading = true
	pc.state.CurrentPage = page
	pc.mu.Unlock()

	var (
		items []models.Employee
		total int
		err   error
	)
	if page > math.MaxInt/pc.pageSize {
		// the index range of such a page is not representable
		err = &database.InvalidRangeError{From: math.MaxInt, To: math.MaxInt, Reason: database.ReasonInvalidRange}
	} else {
		// page 1: 0..49, page 2: 50..99, ...
		from := (page - 1) * pc.pageSize
		to := page*pc.pageSize - 1
		items, total, err = pc.repo.ListRange(ctx, from, to)
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()

	switch {
	case err != nil:
		pc.logger.Warn("failed to load employee page", "page", page, "error", err)
		pc.state.Items = []models.Employee{}
		pc.state.TotalPages = 1
	case total == 0:
		pc.state.Items = []models.Employee{}
		pc.state.TotalPages = 1
	default:
		pc.state.Items = items
		pc.state.TotalPages = TotalPages(total, pc.pageSize)
	}
	pc.state.IsLoading = false

	return pc.snapshotLocked()
}

func (pc *PageController) snapshotLocked() PageState {
	state := pc.state
	state.Items = make([]models.Employee, len(pc.state.Items))
	copy(state.Items, pc.state.Items)
	return state
}

func (pc *PageController) acquire(ctx context.Context) error {
	select {
	case pc.turn <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (pc *PageController) release() {
	<-pc.turn
}

// TotalPages is ceil(count/size), and never less than one.
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// PageBar describes which page buttons to show around the current page.
type PageBar struct {
	Pages            []int `json:"pages"`
	LeadingEllipsis  bool  `json:"leading_ellipsis"`
	TrailingEllipsis bool  `json:"trailing_ellipsis"`
	ShowFirst        bool  `json:"show_first"`
	ShowLast         bool  `json:"show_last"`
}

// PageWindow picks at most five page buttons for the current page:
//
//	total <= 5            1 2 3 4 5
//	current <= 3          1 2 3 4 5 ...
//	current >= total-2    ... 6 7 8 9 10
//	otherwise             ... 4 5 6 7 8 ...
func PageWindow(current, total int) PageBar {
	if total < 1 {
		total = 1
	}

	bar := PageBar{
		ShowFirst: current > 1,
		ShowLast:  current < total,
	}

	switch {
	case total <= pageButtonCount:
		bar.Pages = pageRange(1, total)
	case current <= pageButtonCount-2:
		bar.Pages = pageRange(1, pageButtonCount)
		bar.TrailingEllipsis = true
	case current >= total-2:
		bar.LeadingEllipsis = true
		bar.Pages = pageRange(total-(pageButtonCount-1), total)
	default:
		bar.LeadingEllipsis = true
		bar.Pages = pageRange(current-2, current+2)
		bar.TrailingEllipsis = true
	}

	return bar
}

func pageRange(from, to int) []int {
	pages := make([]int, 0, to-from+1)
	for p := from; p <= to; p++ {
		pages = append(pages, p)
	}
	return pages
}
