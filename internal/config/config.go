package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds everything the smoke runner needs to reach and drive the
// target application.
type Config struct {
	BaseURL           string        `mapstructure:"base_url"`
	Browser           string        `mapstructure:"browser"`
	Headless          bool          `mapstructure:"headless"`
	SlowMo            int           `mapstructure:"slow_mo"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout"`
	ActionTimeout     time.Duration `mapstructure:"action_timeout"`
	WaitNetworkIdle   bool          `mapstructure:"wait_network_idle"`
	NavigationRetries int           `mapstructure:"navigation_retries"`
	Screenshots       bool          `mapstructure:"screenshots"`
	ScreenshotDir     string        `mapstructure:"screenshot_dir"`
	SuiteFile         string        `mapstructure:"suite_file"`
	ReportPath        string        `mapstructure:"report_path"`
	MetricsPath       string        `mapstructure:"metrics_path"`
	StrictCSS         bool          `mapstructure:"strict_css"`
	InstallBrowsers   bool          `mapstructure:"install_browsers"`
	LogLevel          string        `mapstructure:"log_level"`
	Probe             bool          `mapstructure:"probe"`
}

// envNames lists the environment variables consulted for each key, most
// preferred first. Unprefixed names are kept for existing CI scripts.
var envNames = map[string][]string{
	"base_url":           {"SMOKE_BASE_URL", "BASE_URL"},
	"browser":            {"SMOKE_BROWSER"},
	"headless":           {"SMOKE_HEADLESS", "HEADLESS"},
	"slow_mo":            {"SMOKE_SLOW_MO", "SLOW_MO"},
	"navigation_timeout": {"SMOKE_NAVIGATION_TIMEOUT"},
	"action_timeout":     {"SMOKE_ACTION_TIMEOUT"},
	"wait_network_idle":  {"SMOKE_WAIT_NETWORK_IDLE"},
	"navigation_retries": {"SMOKE_NAVIGATION_RETRIES"},
	"screenshots":        {"SMOKE_SCREENSHOTS", "SCREENSHOTS"},
	"screenshot_dir":     {"SMOKE_SCREENSHOT_DIR"},
	"suite_file":         {"SMOKE_SUITE_FILE"},
	"report_path":        {"SMOKE_REPORT_PATH"},
	"metrics_path":       {"SMOKE_METRICS_PATH"},
	"strict_css":         {"SMOKE_STRICT_CSS"},
	"install_browsers":   {"SMOKE_INSTALL_BROWSERS"},
	"log_level":          {"SMOKE_LOG_LEVEL"},
	"probe":              {"SMOKE_PROBE"},
}

// flagKeys maps CLI flag names onto configuration keys.
var flagKeys = map[string]string{
	"base-url":       "base_url",
	"browser":        "browser",
	"headed":         "headless",
	"screenshot-dir": "screenshot_dir",
	"suite":          "suite_file",
	"report":         "report_path",
	"metrics":        "metrics_path",
	"strict-css":     "strict_css",
	"log-level":      "log_level",
}

// RegisterFlags defines the command-line overrides understood by Load.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("base-url", "", "Base URL of the application under test")
	fs.String("browser", "", "Browser engine: chromium, firefox or webkit")
	fs.Bool("headed", false, "Show the browser window")
	fs.String("screenshot-dir", "", "Directory screenshots are written to")
	fs.String("suite", "", "YAML file overriding the checked routes, endpoints and viewports")
	fs.String("report", "", "Write a JSON report to this path")
	fs.String("metrics", "", "Write Prometheus textfile metrics to this path")
	fs.Bool("strict-css", false, "Fail the CSS check when the body is unstyled")
	fs.String("log-level", "", "Log level: debug, info, warn or error")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "http://localhost:3000")
	v.SetDefault("browser", "chromium")
	v.SetDefault("headless", true)
	v.SetDefault("slow_mo", 0)
	v.SetDefault("navigation_timeout", 30*time.Second)
	v.SetDefault("action_timeout", 30*time.Second)
	v.SetDefault("wait_network_idle", true)
	v.SetDefault("navigation_retries", 0)
	v.SetDefault("screenshots", true)
	v.SetDefault("screenshot_dir", "/tmp")
	v.SetDefault("suite_file", "")
	v.SetDefault("report_path", "")
	v.SetDefault("metrics_path", "")
	v.SetDefault("strict_css", false)
	v.SetDefault("install_browsers", os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1")
	v.SetDefault("log_level", "info")
	v.SetDefault("probe", true)
}

// Load resolves configuration from, in increasing precedence: defaults, the
// optional YAML configFile, the environment (with a .env file in the working
// directory filling in unset variables) and any changed flags.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	// gotenv.Load never overrides variables that are already set.
	if _, err := os.Stat(".env"); err == nil {
		if err := gotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, names := range envNames {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		// --headed is the inverse of the headless key.
		if name == "headed" {
			headed, err := flags.GetBool(name)
			if err != nil {
				return fmt.Errorf("failed to read --%s: %w", name, err)
			}
			v.Set(key, !headed)
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

// Validate rejects configurations the runner cannot use.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("base_url is not a valid URL: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("base_url must be http or https, got %q", c.BaseURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("base_url has no host: %q", c.BaseURL))
	}

	switch c.Browser {
	case "chromium", "firefox", "webkit":
	default:
		errs = append(errs, fmt.Errorf("browser must be chromium, firefox or webkit, got %q", c.Browser))
	}

	if c.NavigationTimeout < 0 {
		errs = append(errs, errors.New("navigation_timeout must not be negative"))
	}
	if c.ActionTimeout < 0 {
		errs = append(errs, errors.New("action_timeout must not be negative"))
	}
	if c.NavigationRetries < 0 {
		errs = append(errs, errors.New("navigation_retries must not be negative"))
	}
	if c.SlowMo < 0 {
		errs = append(errs, errors.New("slow_mo must not be negative"))
	}
	if c.Screenshots && c.ScreenshotDir == "" {
		errs = append(errs, errors.New("screenshot_dir is required when screenshots are enabled"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
