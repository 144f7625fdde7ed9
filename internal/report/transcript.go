package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/educacion-app/frontend-smoke/internal/smoke"
)

const rule = 60

// Transcript prints the human-readable run log. It implements
// smoke.Listener and is safe to share with the browser console hook.
type Transcript struct {
	out io.Writer
	mu  sync.Mutex

	passStyle    lipgloss.Style
	failStyle    lipgloss.Style
	consoleStyle lipgloss.Style
	headerStyle  lipgloss.Style
}

// NewTranscript writes to out. Colors are only emitted when out is a
// terminal that supports them.
func NewTranscript(out io.Writer) *Transcript {
	r := lipgloss.NewRenderer(out)
	return &Transcript{
		out: out,
		passStyle: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"}),
		failStyle: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}).
			Bold(true),
		consoleStyle: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFAA00"}),
		headerStyle: r.NewStyle().Bold(true),
	}
}

// Banner prints the suite title.
func (t *Transcript) Banner() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, strings.Repeat("=", rule))
	fmt.Fprintln(t.out, t.headerStyle.Render("EDUCACION APP - FRONTEND TEST SUITE"))
	fmt.Fprintln(t.out, strings.Repeat("=", rule))
	fmt.Fprintln(t.out)
}

// Section prints a check group header.
func (t *Transcript) Section(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "\n--- Testing %s ---\n", title)
}

// Result prints one PASS/FAIL line.
func (t *Transcript) Result(r smoke.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	status := t.passStyle.Render("[PASS]")
	if !r.Passed {
		status = t.failStyle.Render("[FAIL]")
	}
	line := status + " " + r.Name
	if r.Details != "" {
		line += " - " + r.Details
	}
	fmt.Fprintln(t.out, line)
}

// Console echoes a browser console message.
func (t *Transcript) Console(kind, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, t.consoleStyle.Render(fmt.Sprintf("[CONSOLE] %s: %s", kind, text)))
}

// Summary prints totals, the success rate and the failing checks.
func (t *Transcript) Summary(s Summary, screenshotDir string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, "\n"+strings.Repeat("=", rule))
	fmt.Fprintln(t.out, t.headerStyle.Render("TEST SUMMARY"))
	fmt.Fprintln(t.out, strings.Repeat("=", rule))

	fmt.Fprintf(t.out, "\nTotal: %d | Passed: %d | Failed: %d\n", s.Total, s.Passed, s.Failed)
	fmt.Fprintf(t.out, "Success Rate: %.1f%%\n", s.SuccessRate)

	if failed := s.FailedResults(); len(failed) > 0 {
		fmt.Fprintln(t.out, "\nFailed Tests:")
		for _, r := range failed {
			fmt.Fprintf(t.out, "  - %s: %s\n", r.Name, r.Details)
		}
	}

	if screenshotDir != "" {
		fmt.Fprintf(t.out, "\nScreenshots saved to %s\n", strings.TrimRight(screenshotDir, "/")+"/test-*.png")
	}
}
