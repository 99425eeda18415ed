package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/stackmill/env-dashboard/internal/app"
	"github.com/stackmill/env-dashboard/internal/session"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envAPIURL    = "ENV_DASHBOARD_API_URL"
	envAPIToken  = "ENV_DASHBOARD_API_TOKEN"
	envURL       = "ENV_DASHBOARD_URL"
	envClusterID = "ENV_DASHBOARD_CLUSTER_ID"
	envStack     = "ENV_DASHBOARD_STACK"
	envCluster   = "ENV_DASHBOARD_CLUSTER"
	envTab       = "ENV_DASHBOARD_TAB"
	envWidth     = "ENV_DASHBOARD_WIDTH"
	envHeight    = "ENV_DASHBOARD_HEIGHT"
	envFooter    = "ENV_DASHBOARD_FOOTER"
	envVerbose   = "ENV_DASHBOARD_VERBOSE"
	envTrace     = "ENV_DASHBOARD_TRACE"
	envLogFile   = "ENV_DASHBOARD_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("env-dashboard", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	apiURL := fs.String("api-url", envOrDefault(env, envAPIURL, ""), "base URL of the platform API")
	apiToken := fs.String("api-token", envOrDefault(env, envAPIToken, ""), "bearer token for the platform API")
	location := fs.String("url", envOrDefault(env, envURL, ""), "console URL to derive the target environment from")
	clusterID := fs.String("cluster-id", envOrDefault(env, envClusterID, ""), "environment id to load directly")
	stack := fs.String("stack", envOrDefault(env, envStack, ""), "project name of the target environment")
	cluster := fs.String("cluster", envOrDefault(env, envCluster, ""), "environment name within the project")
	tab := fs.String("tab", envOrDefault(env, envTab, ""), "tab to open first")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "show notes for declined and completed actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			APIURL:     *apiURL,
			APIToken:   *apiToken,
			URL:        *location,
			ClusterID:  *clusterID,
			Stack:      *stack,
			Cluster:    *cluster,
			InitialTab: *tab,
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			Verbose:    *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"apiUrl":    *apiURL,
			"apiToken":  presence(*apiToken),
			"url":       *location,
			"clusterId": *clusterID,
			"stack":     *stack,
			"cluster":   *cluster,
			"tab":       *tab,
			"width":     strconv.Itoa(*width),
			"height":    strconv.Itoa(*height),
			"footer":    strconv.FormatBool(*footer),
			"trace":     strconv.FormatBool(*trace),
			"verbose":   strconv.FormatBool(*verbose),
			"logFile":   *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// presence records whether a secret was supplied. The value itself never
// reaches the Flags map or the startup trace.
func presence(secret string) string {
	if secret == "" {
		return "unset"
	}
	return "set"
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.APIURL == "" {
		return fmt.Errorf("--api-url (or %s) is required", envAPIURL)
	}
	parsed, err := url.Parse(cfg.App.APIURL)
	if err != nil || !parsed.IsAbs() {
		return fmt.Errorf("api-url must be an absolute URL (got %q)", cfg.App.APIURL)
	}
	if cfg.App.InitialTab != "" {
		if _, ok := session.ParseTab(cfg.App.InitialTab); !ok {
			return fmt.Errorf("unknown tab %q (valid: %s)", cfg.App.InitialTab, tabNames())
		}
	}
	return nil
}

func tabNames() string {
	tabs := session.Tabs()
	names := make([]string, len(tabs))
	for i, tab := range tabs {
		names[i] = string(tab)
	}
	return strings.Join(names, ", ")
}
