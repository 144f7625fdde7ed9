// Package testutil provides an in-memory smoke.Page for exercising check
// groups without a browser.
package testutil

import (
	"fmt"
	"strings"
)

// FakePage scripts what a browser would observe. Zero values describe a
// page with no elements, no redirects and no screenshots taken.
type FakePage struct {
	BaseURL string

	// Redirects maps a requested path to the path the browser settles on.
	Redirects map[string]string
	// NavigateErrors fails navigation to the given paths.
	NavigateErrors map[string]error
	// Contents maps a settled path to its serialized DOM.
	Contents map[string]string
	// ContentErr fails every Content call.
	ContentErr error

	Counts        map[string]int
	CountErrors   map[string]error
	Visible       map[string]bool
	Background    string
	Hydrated      bool
	FocusedTag    string
	EvaluateErr   error
	Statuses      map[string]int
	GetErrors     map[string]error
	ViewportErr   error
	ScreenshotErr error

	// PanicOn panics when the given path is navigated to.
	PanicOn string

	// Recorded calls.
	Navigations []string
	Viewports   [][2]int
	Screenshots []string
	Pressed     []string
	Requests    []string

	current string
}

// NewFakePage returns a page that behaves like a healthy Educacion App:
// protected routes bounce to login, the login form is complete and
// accessible and the API answers 401.
func NewFakePage() *FakePage {
	return &FakePage{
		BaseURL: "http://localhost:3000",
		Redirects: map[string]string{
			"/dashboard":           "/auth/login?callbackUrl=%2Fdashboard",
			"/matrices":            "/auth/login?callbackUrl=%2Fmatrices",
			"/evaluaciones":        "/auth/login?callbackUrl=%2Fevaluaciones",
			"/horarios":            "/auth/login?callbackUrl=%2Fhorarios",
			"/planificacion-anual": "/auth/login?callbackUrl=%2Fplanificacion-anual",
		},
		Contents: map[string]string{
			"/nonexistent-page-12345": `<html lang="es"><body><span>404</span><h1>Página no encontrada</h1></body></html>`,
		},
		Counts: map[string]int{
			`input[type="email"], input[name="email"]`:                                    1,
			`input[type="password"]`:                                                      1,
			`button[type="submit"], button:has-text("Iniciar"), button:has-text("Login")`: 1,
			`button:has-text("Google"), [data-provider="google"]`:                         1,
			"html[lang]": 1,
			"input":      2,
			"label":      2,
		},
		Visible: map[string]bool{
			`form, [role="form"]`: true,
		},
		Background: "rgb(249, 250, 251)",
		Hydrated:   true,
		FocusedTag: "INPUT",
		Statuses: map[string]int{
			"/api/asignaturas":  401,
			"/api/niveles":      401,
			"/api/metodologias": 401,
		},
	}
}

func (f *FakePage) Navigate(path string) (string, error) {
	f.Navigations = append(f.Navigations, path)
	if path == f.PanicOn {
		panic("fake page: navigation to " + path)
	}
	if err := f.NavigateErrors[path]; err != nil {
		return "", err
	}
	settled := path
	if to, ok := f.Redirects[path]; ok {
		settled = to
	}
	f.current = settled
	return f.URL(), nil
}

func (f *FakePage) URL() string {
	if f.current == "" {
		return "about:blank"
	}
	return f.BaseURL + f.current
}

func (f *FakePage) Content() (string, error) {
	if f.ContentErr != nil {
		return "", f.ContentErr
	}
	if c, ok := f.Contents[f.current]; ok {
		return c, nil
	}
	return "<html><head></head><body></body></html>", nil
}

func (f *FakePage) Count(selector string) (int, error) {
	if err := f.CountErrors[selector]; err != nil {
		return 0, err
	}
	return f.Counts[selector], nil
}

func (f *FakePage) FirstVisible(selector string) (bool, error) {
	return f.Visible[selector], nil
}

func (f *FakePage) Evaluate(expression string) (any, error) {
	if f.EvaluateErr != nil {
		return nil, f.EvaluateErr
	}
	switch {
	case strings.Contains(expression, "activeElement"):
		return f.FocusedTag, nil
	case strings.Contains(expression, "typeof window"):
		return f.Hydrated, nil
	default:
		return nil, fmt.Errorf("fake page: unexpected expression %q", expression)
	}
}

func (f *FakePage) EvaluateOn(selector, expression string) (any, error) {
	if f.EvaluateErr != nil {
		return nil, f.EvaluateErr
	}
	if selector == "body" && strings.Contains(expression, "backgroundColor") {
		return f.Background, nil
	}
	return nil, fmt.Errorf("fake page: unexpected evaluation on %s", selector)
}

func (f *FakePage) SetViewport(width, height int) error {
	if f.ViewportErr != nil {
		return f.ViewportErr
	}
	f.Viewports = append(f.Viewports, [2]int{width, height})
	return nil
}

func (f *FakePage) Press(key string) error {
	f.Pressed = append(f.Pressed, key)
	return nil
}

func (f *FakePage) Screenshot(name string) error {
	if f.ScreenshotErr != nil {
		return f.ScreenshotErr
	}
	f.Screenshots = append(f.Screenshots, name)
	return nil
}

func (f *FakePage) Get(path string) (int, error) {
	f.Requests = append(f.Requests, path)
	if err := f.GetErrors[path]; err != nil {
		return 0, err
	}
	if status, ok := f.Statuses[path]; ok {
		return status, nil
	}
	return 404, nil
}
