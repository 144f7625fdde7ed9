package smoke

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Viewport is a named browser window size.
type Viewport struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Label renders the viewport as it appears in result names.
func (v Viewport) Label() string {
	return fmt.Sprintf("%s (%dx%d)", v.Name, v.Width, v.Height)
}

// ScreenshotName is the file written for this viewport.
func (v Viewport) ScreenshotName() string {
	return "test-" + strings.ToLower(v.Name) + ".png"
}

// Suite holds the targets every check group runs against.
type Suite struct {
	LoginPath        string     `yaml:"login_path"`
	LoginMarkers     []string   `yaml:"login_markers"`
	ProtectedRoutes  []string   `yaml:"protected_routes"`
	APIEndpoints     []string   `yaml:"api_endpoints"`
	AcceptedStatuses []int      `yaml:"accepted_statuses"`
	Viewports        []Viewport `yaml:"viewports"`
	NotFoundPath     string     `yaml:"not_found_path"`
	NotFoundMarkers  []string   `yaml:"not_found_markers"`
	HydrationMarker  string     `yaml:"hydration_marker"`
	StrictCSS        bool       `yaml:"strict_css"`
}

// DefaultSuite returns the Educacion App targets.
func DefaultSuite() Suite {
	return Suite{
		LoginPath:    "/auth/login",
		LoginMarkers: []string{"/auth/login", "/login"},
		ProtectedRoutes: []string{
			"/dashboard",
			"/matrices",
			"/evaluaciones",
			"/horarios",
			"/planificacion-anual",
		},
		APIEndpoints: []string{
			"/api/asignaturas",
			"/api/niveles",
			"/api/metodologias",
		},
		AcceptedStatuses: []int{200, 401, 403},
		Viewports: []Viewport{
			{Name: "Mobile", Width: 375, Height: 667},
			{Name: "Tablet", Width: 768, Height: 1024},
			{Name: "Desktop", Width: 1920, Height: 1080},
		},
		NotFoundPath:    "/nonexistent-page-12345",
		NotFoundMarkers: []string{"404", "not found", "no encontrada"},
		HydrationMarker: "__NEXT_DATA__",
	}
}

// LoadSuite reads a YAML suite file on top of DefaultSuite. Keys absent
// from the file keep their defaults. An empty path returns the defaults.
func LoadSuite(path string) (Suite, error) {
	suite := DefaultSuite()
	if path == "" {
		return suite, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return suite, fmt.Errorf("failed to read suite file: %w", err)
	}
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return suite, fmt.Errorf("failed to parse suite file %s: %w", path, err)
	}
	if err := suite.Validate(); err != nil {
		return suite, fmt.Errorf("invalid suite file %s: %w", path, err)
	}
	return suite, nil
}

// Validate rejects suites the check groups cannot run.
func (s Suite) Validate() error {
	var errs []error
	if !strings.HasPrefix(s.LoginPath, "/") {
		errs = append(errs, fmt.Errorf("login_path must start with /: %q", s.LoginPath))
	}
	if !strings.HasPrefix(s.NotFoundPath, "/") {
		errs = append(errs, fmt.Errorf("not_found_path must start with /: %q", s.NotFoundPath))
	}
	if len(s.LoginMarkers) == 0 {
		errs = append(errs, errors.New("login_markers must not be empty"))
	}
	if len(s.AcceptedStatuses) == 0 {
		errs = append(errs, errors.New("accepted_statuses must not be empty"))
	}
	for _, route := range s.ProtectedRoutes {
		if !strings.HasPrefix(route, "/") {
			errs = append(errs, fmt.Errorf("protected route must start with /: %q", route))
		}
	}
	for _, endpoint := range s.APIEndpoints {
		if !strings.HasPrefix(endpoint, "/") {
			errs = append(errs, fmt.Errorf("api endpoint must start with /: %q", endpoint))
		}
	}
	for i, vp := range s.Viewports {
		if strings.TrimSpace(vp.Name) == "" {
			errs = append(errs, fmt.Errorf("viewport %d has no name", i))
		}
		if vp.Width <= 0 || vp.Height <= 0 {
			errs = append(errs, fmt.Errorf("viewport %q has non-positive size %dx%d", vp.Name, vp.Width, vp.Height))
		}
	}
	if s.HydrationMarker == "" {
		errs = append(errs, errors.New("hydration_marker must not be empty"))
	}
	return errors.Join(errs...)
}

func (s Suite) statusAccepted(status int) bool {
	for _, accepted := range s.AcceptedStatuses {
		if status == accepted {
			return true
		}
	}
	return false
}

func (s Suite) isLoginURL(url string) bool {
	for _, marker := range s.LoginMarkers {
		if strings.Contains(url, marker) {
			return true
		}
	}
	return false
}
