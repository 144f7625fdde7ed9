// Package browser drives the application under test through playwright-go.
package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/educacion-app/frontend-smoke/internal/config"
	"github.com/educacion-app/frontend-smoke/internal/smoke"
)

var _ smoke.Page = (*Session)(nil)

// Options controls how the session is launched and how pages are loaded.
type Options struct {
	BaseURL           string
	Browser           string
	Headless          bool
	SlowMo            time.Duration
	NavigationTimeout time.Duration
	ActionTimeout     time.Duration
	WaitNetworkIdle   bool
	NavigationRetries int
	Screenshots       bool
	ScreenshotDir     string
	InstallBrowsers   bool

	// OnConsole receives browser console messages of type "error".
	OnConsole func(kind, text string)
}

// OptionsFromConfig maps resolved configuration onto session options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:           cfg.BaseURL,
		Browser:           cfg.Browser,
		Headless:          cfg.Headless,
		SlowMo:            time.Duration(cfg.SlowMo) * time.Millisecond,
		NavigationTimeout: cfg.NavigationTimeout,
		ActionTimeout:     cfg.ActionTimeout,
		WaitNetworkIdle:   cfg.WaitNetworkIdle,
		NavigationRetries: cfg.NavigationRetries,
		Screenshots:       cfg.Screenshots,
		ScreenshotDir:     cfg.ScreenshotDir,
		InstallBrowsers:   cfg.InstallBrowsers,
	}
}

// Session owns one playwright driver, browser, context and page.
type Session struct {
	opts   Options
	logger *zap.Logger

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// Install downloads the playwright driver and the requested browser.
func Install(browserName string) error {
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{browserName}}); err != nil {
		return fmt.Errorf("could not install playwright browsers: %w", err)
	}
	return nil
}

// Open launches the browser and creates the shared page. Callers must Close
// the returned session; Close is also safe on a partially opened session.
func Open(opts Options, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{opts: opts, logger: logger}
	if err := s.setup(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) setup() error {
	if s.opts.InstallBrowsers {
		s.logger.Info("Installing playwright browsers", zap.String("browser", s.opts.Browser))
		if err := Install(s.opts.Browser); err != nil {
			return err
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("could not start playwright (ensure the driver version matches): %w", err)
	}
	s.pw = pw

	browserType, err := s.browserType()
	if err != nil {
		return err
	}
	s.logger.Debug("Launching browser",
		zap.String("browser", s.opts.Browser), zap.Bool("headless", s.opts.Headless))
	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.opts.Headless),
		SlowMo:   playwright.Float(float64(s.opts.SlowMo.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("could not launch browser: %w", err)
	}
	s.browser = browser

	context, err := browser.NewContext()
	if err != nil {
		return fmt.Errorf("could not create context: %w", err)
	}
	s.context = context

	page, err := context.NewPage()
	if err != nil {
		return fmt.Errorf("could not create page: %w", err)
	}
	s.page = page

	if s.opts.ActionTimeout > 0 {
		page.SetDefaultTimeout(float64(s.opts.ActionTimeout.Milliseconds()))
	}
	if s.opts.NavigationTimeout > 0 {
		page.SetDefaultNavigationTimeout(float64(s.opts.NavigationTimeout.Milliseconds()))
	}

	if s.opts.OnConsole != nil {
		page.OnConsole(func(msg playwright.ConsoleMessage) {
			if msg.Type() == "error" {
				s.opts.OnConsole(msg.Type(), msg.Text())
			}
		})
	}

	if s.opts.Screenshots {
		if err := os.MkdirAll(s.opts.ScreenshotDir, 0o755); err != nil {
			return fmt.Errorf("could not create screenshot directory: %w", err)
		}
	}
	return nil
}

func (s *Session) browserType() (playwright.BrowserType, error) {
	switch s.opts.Browser {
	case "", "chromium":
		return s.pw.Chromium, nil
	case "firefox":
		return s.pw.Firefox, nil
	case "webkit":
		return s.pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser %q", s.opts.Browser)
	}
}

// Close releases the page, context, browser and driver in that order.
func (s *Session) Close() {
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			s.logger.Debug("Closing page", zap.Error(err))
		}
	}
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			s.logger.Debug("Closing context", zap.Error(err))
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.logger.Warn("Closing browser", zap.Error(err))
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			s.logger.Warn("Stopping playwright", zap.Error(err))
		}
	}
}

// Navigate loads path relative to the base URL. With WaitNetworkIdle set it
// also waits for network quiescence. Failed attempts are retried up to
// NavigationRetries times.
func (s *Session) Navigate(path string) (string, error) {
	target := resolveURL(s.opts.BaseURL, path)

	var err error
	for attempt := 0; attempt <= s.opts.NavigationRetries; attempt++ {
		if attempt > 0 {
			s.logger.Info("Retrying navigation",
				zap.String("url", target), zap.Int("attempt", attempt), zap.Error(err))
		}
		if err = s.navigateOnce(target); err == nil {
			url := s.page.URL()
			s.logger.Debug("Navigated", zap.String("target", target), zap.String("url", url))
			return url, nil
		}
	}
	return "", err
}

func (s *Session) navigateOnce(target string) error {
	if _, err := s.page.Goto(target); err != nil {
		if strings.Contains(err.Error(), "ERR_TOO_MANY_REDIRECTS") {
			return fmt.Errorf("redirect loop navigating to %s (check the login redirect configuration): %w", target, err)
		}
		return fmt.Errorf("navigate to %s: %w", target, err)
	}
	if !s.opts.WaitNetworkIdle {
		return nil
	}
	if err := s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("wait for network idle on %s: %w", target, err)
	}
	return nil
}

func (s *Session) URL() string {
	return s.page.URL()
}

func (s *Session) Content() (string, error) {
	return s.page.Content()
}

func (s *Session) Count(selector string) (int, error) {
	return s.page.Locator(selector).Count()
}

func (s *Session) FirstVisible(selector string) (bool, error) {
	return s.page.Locator(selector).First().IsVisible()
}

func (s *Session) Evaluate(expression string) (any, error) {
	return s.page.Evaluate(expression)
}

func (s *Session) EvaluateOn(selector, expression string) (any, error) {
	return s.page.Locator(selector).First().Evaluate(expression, nil)
}

func (s *Session) SetViewport(width, height int) error {
	if err := s.page.SetViewportSize(width, height); err != nil {
		return fmt.Errorf("set viewport %dx%d: %w", width, height, err)
	}
	return nil
}

func (s *Session) Press(key string) error {
	return s.page.Keyboard().Press(key)
}

// Screenshot writes a full-page PNG into the screenshot directory,
// replacing any earlier file of the same name.
func (s *Session) Screenshot(name string) error {
	if !s.opts.Screenshots {
		return nil
	}
	path := filepath.Join(s.opts.ScreenshotDir, name)
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return fmt.Errorf("screenshot %s: %w", path, err)
	}
	s.logger.Debug("Saved screenshot", zap.String("path", path))
	return nil
}

// Get requests path through the context's API client, sharing its cookies
// but leaving the page where it is.
func (s *Session) Get(path string) (int, error) {
	target := resolveURL(s.opts.BaseURL, path)
	resp, err := s.page.Request().Get(target)
	if err != nil {
		return 0, fmt.Errorf("GET %s: %w", target, err)
	}
	status := resp.Status()
	if err := resp.Dispose(); err != nil {
		s.logger.Debug("Disposing response", zap.Error(err))
	}
	return status, nil
}

// resolveURL joins base and path with exactly one slash between them.
// Absolute URLs are returned unchanged.
func resolveURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base = strings.TrimRight(base, "/")
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
