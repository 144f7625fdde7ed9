package smoke

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// CheckFunc runs one check group against the shared page.
type CheckFunc func(p Page, s Suite, l Listener) []Result

// Group is a titled check group.
type Group struct {
	Title string
	Run   CheckFunc
}

// DefaultGroups returns the seven check groups in execution order.
func DefaultGroups() []Group {
	return []Group{
		{Title: "Login Page", Run: CheckLoginPage},
		{Title: "Protected Routes", Run: CheckProtectedRoutes},
		{Title: "API Endpoints", Run: CheckAPIEndpoints},
		{Title: "Static Assets", Run: CheckStaticAssets},
		{Title: "Responsive Design", Run: CheckResponsiveDesign},
		{Title: "Error Pages", Run: CheckErrorPage},
		{Title: "Accessibility", Run: CheckAccessibility},
	}
}

// Runner executes check groups sequentially against one page.
type Runner struct {
	Page     Page
	Suite    Suite
	Groups   []Group
	Listener Listener
	Logger   *zap.Logger
}

// NewRunner wires the default groups.
func NewRunner(page Page, suite Suite, listener Listener, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Page:     page,
		Suite:    suite,
		Groups:   DefaultGroups(),
		Listener: listener,
		Logger:   logger,
	}
}

// Run executes every group in order and returns all results. Once ctx is
// done no further group is started; results gathered so far are returned.
func (r *Runner) Run(ctx context.Context) []Result {
	var results []Result
	for _, g := range r.Groups {
		if err := ctx.Err(); err != nil {
			r.Logger.Warn("Stopping before remaining check groups",
				zap.String("next", g.Title), zap.Error(err))
			break
		}
		if r.Listener != nil {
			r.Listener.Section(g.Title)
		}
		groupResults := r.runGroup(g)
		r.Logger.Debug("Check group finished",
			zap.String("group", g.Title), zap.Int("results", len(groupResults)))
		results = append(results, groupResults...)
	}
	return results
}

// runGroup turns a panic inside a group into a failed result appended to
// whatever the group had already reported, so the remaining groups still run.
func (r *Runner) runGroup(g Group) (results []Result) {
	streamed := &teeListener{next: r.Listener}
	defer func() {
		if rec := recover(); rec != nil {
			r.Logger.Error("Check group panicked", zap.String("group", g.Title), zap.Any("panic", rec))
			res := Failure(g.Title, fmt.Errorf("panic: %v", rec))
			streamed.Result(res)
			results = streamed.results
		}
	}()
	return g.Run(r.Page, r.Suite, streamed)
}

// teeListener keeps a copy of every result it forwards.
type teeListener struct {
	next    Listener
	results []Result
}

func (t *teeListener) Section(title string) {
	if t.next != nil {
		t.next.Section(title)
	}
}

func (t *teeListener) Result(res Result) {
	t.results = append(t.results, res)
	if t.next != nil {
		t.next.Result(res)
	}
}
