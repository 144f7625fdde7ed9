package smoke

// Page is the subset of browser automation the checks rely on. Paths are
// relative to the configured base URL. internal/browser provides the
// playwright-backed implementation.
type Page interface {
	// Navigate loads path and, when configured, waits for network idle.
	// It returns the URL the page settled on.
	Navigate(path string) (string, error)
	// URL reports the page's current URL.
	URL() string
	// Content returns the serialized DOM.
	Content() (string, error)
	// Count returns how many elements match selector.
	Count(selector string) (int, error)
	// FirstVisible reports whether the first element matching selector is visible.
	FirstVisible(selector string) (bool, error)
	// Evaluate runs a JavaScript expression in the page.
	Evaluate(expression string) (any, error)
	// EvaluateOn runs a JavaScript function with the first element matching
	// selector as its argument.
	EvaluateOn(selector, expression string) (any, error)
	// SetViewport resizes the page.
	SetViewport(width, height int) error
	// Press sends a single key press to the focused element.
	Press(key string) error
	// Screenshot captures the full page to name inside the screenshot
	// directory. Implementations may treat it as a no-op when disabled.
	Screenshot(name string) error
	// Get issues a GET through the browser context's request API without
	// navigating and returns the HTTP status.
	Get(path string) (int, error)
}
