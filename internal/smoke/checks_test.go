package smoke_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educacion-app/frontend-smoke/internal/smoke"
	"github.com/educacion-app/frontend-smoke/internal/testutil"
)

func names(results []smoke.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func TestCheckLoginPage(t *testing.T) {
	t.Run("complete form", func(t *testing.T) {
		page := testutil.NewFakePage()

		results := smoke.CheckLoginPage(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 2)
		assert.Equal(t, smoke.Result{
			Name:    "Login Page - Form Elements",
			Passed:  true,
			Details: "Email, password, and submit button found",
			Kind:    smoke.KindPass,
		}, results[0])
		assert.Equal(t, "Login Page - Google OAuth", results[1].Name)
		assert.True(t, results[1].Passed)
		assert.Equal(t, []string{"/auth/login"}, page.Navigations)
		assert.Equal(t, []string{"test-login.png"}, page.Screenshots)
	})

	t.Run("missing password field", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.Counts[`input[type="password"]`] = 0

		results := smoke.CheckLoginPage(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 2)
		assert.False(t, results[0].Passed)
		assert.Equal(t, smoke.KindAssertion, results[0].Kind)
		assert.Equal(t, "email=true, password=false, submit=true", results[0].Details)
	})

	t.Run("missing google button does not fail", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.Counts[`button:has-text("Google"), [data-provider="google"]`] = 0

		results := smoke.CheckLoginPage(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 2)
		assert.True(t, results[0].Passed)
		assert.Equal(t, "Login Page - Google OAuth", results[1].Name)
		assert.True(t, results[1].Passed)
		assert.Equal(t, smoke.KindPass, results[1].Kind)
		assert.Equal(t, "No Google button found (optional)", results[1].Details)
	})

	t.Run("navigation error collapses to one result", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.NavigateErrors = map[string]error{"/auth/login": errors.New("net::ERR_CONNECTION_REFUSED")}

		results := smoke.CheckLoginPage(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 1)
		assert.Equal(t, "Login Page", results[0].Name)
		assert.False(t, results[0].Passed)
		assert.Equal(t, smoke.KindError, results[0].Kind)
		assert.Equal(t, "error: net::ERR_CONNECTION_REFUSED", results[0].Details)
		assert.Empty(t, page.Screenshots)
	})
}

func TestCheckProtectedRoutes(t *testing.T) {
	t.Run("every route redirects", func(t *testing.T) {
		page := testutil.NewFakePage()

		results := smoke.CheckProtectedRoutes(page, smoke.DefaultSuite(), nil)

		assert.Equal(t, []string{
			"Protected Route /dashboard",
			"Protected Route /matrices",
			"Protected Route /evaluaciones",
			"Protected Route /horarios",
			"Protected Route /planificacion-anual",
		}, names(results))
		for _, r := range results {
			assert.True(t, r.Passed, r.Name)
			assert.Contains(t, r.Details, "Redirected to http://localhost:3000/auth/login")
		}
	})

	t.Run("dashboard auth bypass", func(t *testing.T) {
		page := testutil.NewFakePage()
		delete(page.Redirects, "/dashboard")

		results := smoke.CheckProtectedRoutes(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 5)
		assert.False(t, results[0].Passed)
		assert.Equal(t, "No redirect, stayed at http://localhost:3000/dashboard", results[0].Details)
		for _, r := range results[1:] {
			assert.True(t, r.Passed, r.Name)
		}
	})

	t.Run("plain /login counts as a login URL", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.Redirects["/horarios"] = "/login"

		results := smoke.CheckProtectedRoutes(page, smoke.DefaultSuite(), nil)

		assert.True(t, results[3].Passed)
	})

	t.Run("navigation error does not stop iteration", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.NavigateErrors = map[string]error{"/matrices": errors.New("Timeout 30000ms exceeded")}

		results := smoke.CheckProtectedRoutes(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 5)
		assert.Equal(t, smoke.KindError, results[1].Kind)
		assert.Equal(t, "error: Timeout 30000ms exceeded", results[1].Details)
		assert.Len(t, page.Navigations, 5)
	})
}

func TestCheckAPIEndpoints(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		passed bool
	}{
		{name: "ok", status: 200, passed: true},
		{name: "unauthorized", status: 401, passed: true},
		{name: "forbidden", status: 403, passed: true},
		{name: "not found", status: 404, passed: false},
		{name: "server error", status: 500, passed: false},
		{name: "redirect", status: 302, passed: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page := testutil.NewFakePage()
			page.Statuses["/api/niveles"] = tc.status

			results := smoke.CheckAPIEndpoints(page, smoke.DefaultSuite(), nil)

			require.Len(t, results, 3)
			assert.Equal(t, "API /api/niveles", results[1].Name)
			assert.Equal(t, tc.passed, results[1].Passed)
			assert.Equal(t, "Status: "+strconv.Itoa(tc.status), results[1].Details)
			assert.True(t, results[0].Passed, "other endpoints are unaffected")
			assert.True(t, results[2].Passed, "other endpoints are unaffected")
		})
	}

	t.Run("request error", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.GetErrors = map[string]error{"/api/asignaturas": errors.New("socket hang up")}

		results := smoke.CheckAPIEndpoints(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 3)
		assert.Equal(t, smoke.KindError, results[0].Kind)
		assert.True(t, results[1].Passed)
		assert.Empty(t, page.Navigations, "API checks never navigate")
		assert.Equal(t, []string{"/api/asignaturas", "/api/niveles", "/api/metodologias"}, page.Requests)
	})
}

func TestCheckStaticAssets(t *testing.T) {
	t.Run("default css check is vacuous", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.Background = "rgba(0, 0, 0, 0)"

		results := smoke.CheckStaticAssets(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 2)
		assert.Equal(t, "Static Assets - CSS", results[0].Name)
		assert.True(t, results[0].Passed)
		assert.Equal(t, "Styles loaded", results[0].Details)
		assert.Equal(t, "Next.js hydrated", results[1].Details)
	})

	t.Run("strict css rejects unstyled body", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.Background = "rgba(0, 0, 0, 0)"
		suite := smoke.DefaultSuite()
		suite.StrictCSS = true

		results := smoke.CheckStaticAssets(page, suite, nil)

		require.Len(t, results, 2)
		assert.False(t, results[0].Passed)
		assert.Contains(t, results[0].Details, "unstyled")
	})

	t.Run("strict css accepts styled body", func(t *testing.T) {
		page := testutil.NewFakePage()
		suite := smoke.DefaultSuite()
		suite.StrictCSS = true

		results := smoke.CheckStaticAssets(page, suite, nil)

		assert.True(t, results[0].Passed)
		assert.Contains(t, results[0].Details, "rgb(249, 250, 251)")
	})

	t.Run("missing hydration marker", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.Hydrated = false

		results := smoke.CheckStaticAssets(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 2)
		assert.False(t, results[1].Passed)
		assert.Equal(t, "Next.js not found", results[1].Details)
	})

	t.Run("evaluation error", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.EvaluateErr = errors.New("Execution context was destroyed")

		results := smoke.CheckStaticAssets(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 1)
		assert.Equal(t, "Static Assets", results[0].Name)
		assert.Equal(t, smoke.KindError, results[0].Kind)
	})
}

func TestCheckResponsiveDesign(t *testing.T) {
	t.Run("form visible everywhere", func(t *testing.T) {
		page := testutil.NewFakePage()

		results := smoke.CheckResponsiveDesign(page, smoke.DefaultSuite(), nil)

		assert.Equal(t, []string{
			"Responsive - Mobile (375x667)",
			"Responsive - Tablet (768x1024)",
			"Responsive - Desktop (1920x1080)",
		}, names(results))
		for _, r := range results {
			assert.True(t, r.Passed)
			assert.Equal(t, "Form visible", r.Details)
		}
		assert.Equal(t, [][2]int{{375, 667}, {768, 1024}, {1920, 1080}}, page.Viewports)
		assert.Equal(t, []string{"test-mobile.png", "test-tablet.png", "test-desktop.png"}, page.Screenshots)
	})

	t.Run("form hidden", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.Visible = nil

		results := smoke.CheckResponsiveDesign(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 3)
		for _, r := range results {
			assert.False(t, r.Passed)
			assert.Equal(t, "Form not visible", r.Details)
		}
	})

	t.Run("error uses the short name", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.ViewportErr = errors.New("page closed")

		results := smoke.CheckResponsiveDesign(page, smoke.DefaultSuite(), nil)

		assert.Equal(t, []string{"Responsive - Mobile", "Responsive - Tablet", "Responsive - Desktop"}, names(results))
		for _, r := range results {
			assert.Equal(t, smoke.KindError, r.Kind)
		}
	})
}

func TestCheckErrorPage(t *testing.T) {
	testCases := []struct {
		name     string
		redirect string
		content  string
		passed   bool
	}{
		{name: "numeric 404", content: "<h1>404</h1>", passed: true},
		{name: "english copy", content: "<p>This page could not be found. NOT FOUND</p>", passed: true},
		{name: "spanish copy", content: "<h1>PÁGINA NO ENCONTRADA</h1>", passed: true},
		{name: "redirect to login", redirect: "/auth/login", content: "<form></form>", passed: true},
		{name: "soft landing on home", redirect: "/", content: "<h1>Bienvenido</h1>", passed: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page := testutil.NewFakePage()
			settled := "/nonexistent-page-12345"
			if tc.redirect != "" {
				settled = tc.redirect
				page.Redirects[settled] = settled
				page.Redirects["/nonexistent-page-12345"] = settled
			}
			page.Contents[settled] = tc.content

			results := smoke.CheckErrorPage(page, smoke.DefaultSuite(), nil)

			require.Len(t, results, 1)
			assert.Equal(t, "Error Page - 404", results[0].Name)
			assert.Equal(t, tc.passed, results[0].Passed)
			assert.Equal(t, "URL: http://localhost:3000"+settled, results[0].Details)
			assert.Equal(t, []string{"test-404.png"}, page.Screenshots, "captured regardless of outcome")
		})
	}

	t.Run("content error still captures the page", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.ContentErr = errors.New("target closed")

		results := smoke.CheckErrorPage(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 1)
		assert.Equal(t, "Error Pages", results[0].Name)
		assert.Equal(t, "error: target closed", results[0].Details)
		assert.Equal(t, []string{"test-404.png"}, page.Screenshots)
	})

	t.Run("navigation error skips the capture", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.NavigateErrors = map[string]error{"/nonexistent-page-12345": errors.New("net::ERR_CONNECTION_REFUSED")}

		results := smoke.CheckErrorPage(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 1)
		assert.Equal(t, "Error Pages", results[0].Name)
		assert.Empty(t, page.Screenshots)
	})

	t.Run("screenshot failure is reported", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.ScreenshotErr = errors.New("disk full")

		results := smoke.CheckErrorPage(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 2)
		assert.True(t, results[0].Passed)
		assert.Equal(t, "Error Pages", results[1].Name)
		assert.Equal(t, smoke.KindError, results[1].Kind)
	})
}

func TestCheckAccessibility(t *testing.T) {
	t.Run("accessible login page", func(t *testing.T) {
		page := testutil.NewFakePage()

		results := smoke.CheckAccessibility(page, smoke.DefaultSuite(), nil)

		assert.Equal(t, []string{
			"A11y - HTML lang attribute",
			"A11y - Form labels",
			"A11y - Keyboard navigation",
		}, names(results))
		for _, r := range results {
			assert.True(t, r.Passed, r.Name)
		}
		assert.Equal(t, "inputs=2, labels=2", results[1].Details)
		assert.Equal(t, "Focused element: INPUT", results[2].Details)
		assert.Equal(t, []string{"Tab"}, page.Pressed)
	})

	t.Run("label coverage", func(t *testing.T) {
		testCases := []struct {
			inputs, labels int
			passed         bool
		}{
			{inputs: 0, labels: 0, passed: true},
			{inputs: 0, labels: 3, passed: true},
			{inputs: 2, labels: 2, passed: true},
			{inputs: 2, labels: 3, passed: true},
			{inputs: 3, labels: 2, passed: false},
			{inputs: 1, labels: 0, passed: false},
		}
		for _, tc := range testCases {
			page := testutil.NewFakePage()
			page.Counts["input"] = tc.inputs
			page.Counts["label"] = tc.labels

			results := smoke.CheckAccessibility(page, smoke.DefaultSuite(), nil)

			require.Len(t, results, 3)
			assert.Equal(t, tc.passed, results[1].Passed, "inputs=%d labels=%d", tc.inputs, tc.labels)
		}
	})

	t.Run("missing lang and body focus", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.Counts["html[lang]"] = 0
		page.FocusedTag = "BODY"

		results := smoke.CheckAccessibility(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 3)
		assert.False(t, results[0].Passed)
		assert.Empty(t, results[0].Details)
		assert.False(t, results[2].Passed)
		assert.Equal(t, "Focused element: BODY", results[2].Details)
	})

	t.Run("locator error", func(t *testing.T) {
		page := testutil.NewFakePage()
		page.CountErrors = map[string]error{"label": errors.New("locator detached")}

		results := smoke.CheckAccessibility(page, smoke.DefaultSuite(), nil)

		require.Len(t, results, 2)
		assert.True(t, results[0].Passed)
		assert.Equal(t, "Accessibility", results[1].Name)
		assert.Equal(t, "error: count labels: locator detached", results[1].Details)
	})
}
