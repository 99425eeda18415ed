package config

import (
	"strings"
	"testing"
)

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	environ := []string{
		"ENV_DASHBOARD_API_URL=https://env.example.com",
		"ENV_DASHBOARD_WIDTH=50",
	}
	cfg, err := LoadArgs([]string{"--api-url", "https://flag.example.com", "--width", "120"}, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.APIURL != "https://flag.example.com" {
		t.Fatalf("expected the flag value to win, got %q", cfg.App.APIURL)
	}
	if cfg.App.Width != 120 {
		t.Fatalf("expected width 120, got %d", cfg.App.Width)
	}
}

func TestLoadArgsEnvironmentFallbacks(t *testing.T) {
	environ := []string{
		"ENV_DASHBOARD_API_URL=https://api.example.com",
		"ENV_DASHBOARD_API_TOKEN=sekrit",
		"ENV_DASHBOARD_CLUSTER_ID=env-42",
		"ENV_DASHBOARD_TAB=releases",
		"ENV_DASHBOARD_FOOTER=1",
		"ENV_DASHBOARD_TRACE=true",
		"ENV_DASHBOARD_VERBOSE=true",
		"ENV_DASHBOARD_LOG_FILE=/tmp/dash.log",
	}
	cfg, err := LoadArgs(nil, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.APIURL != "https://api.example.com" {
		t.Fatalf("expected api url from environment, got %q", cfg.App.APIURL)
	}
	if cfg.App.APIToken != "sekrit" {
		t.Fatalf("expected token from environment, got %q", cfg.App.APIToken)
	}
	if cfg.App.ClusterID != "env-42" {
		t.Fatalf("expected cluster id from environment, got %q", cfg.App.ClusterID)
	}
	if cfg.App.InitialTab != "releases" {
		t.Fatalf("expected tab from environment, got %q", cfg.App.InitialTab)
	}
	if !cfg.App.ShowFooter {
		t.Fatal("expected footer enabled via environment")
	}
	if !cfg.Logging.Trace {
		t.Fatal("expected trace enabled via environment")
	}
	if cfg.Logging.FilePath != "/tmp/dash.log" {
		t.Fatalf("expected log file from environment, got %q", cfg.Logging.FilePath)
	}
	if !cfg.Features.Verbose {
		t.Fatal("expected verbose feature mirrored from the flag")
	}
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.APIURL != "" || cfg.App.ClusterID != "" || cfg.App.URL != "" {
		t.Fatalf("expected empty identity defaults, got %#v", cfg.App)
	}
	if cfg.App.Width != 0 || cfg.App.Height != 0 {
		t.Fatalf("expected zero dimensions, got %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.ShowFooter || cfg.Logging.Trace || cfg.Features.Verbose {
		t.Fatal("expected boolean flags off by default")
	}
}

func TestLoadArgsRejectsNegativeDimensions(t *testing.T) {
	if _, err := LoadArgs([]string{"--width", "-1"}, nil); err == nil {
		t.Fatal("expected an error for negative width")
	}
	if _, err := LoadArgs([]string{"--height", "-2"}, nil); err == nil {
		t.Fatal("expected an error for negative height")
	}
}

func TestLoadArgsRejectsUnknownFlag(t *testing.T) {
	if _, err := LoadArgs([]string{"--definitely-not-a-flag"}, nil); err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
}

func TestLoadArgsRedactsTokenInFlagsMap(t *testing.T) {
	cfg, err := LoadArgs([]string{"--api-token", "sekrit"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Flags["apiToken"] != "set" {
		t.Fatalf("expected the flags map to record presence only, got %q", cfg.Flags["apiToken"])
	}
	cfg, err = LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Flags["apiToken"] != "unset" {
		t.Fatalf("expected an unset marker, got %q", cfg.Flags["apiToken"])
	}
}

func TestLoadArgsCapturesArgsCopy(t *testing.T) {
	args := []string{"--stack", "acme", "--cluster", "prod-eu"}
	cfg, err := LoadArgs(args, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Args) != len(args) {
		t.Fatalf("expected %d captured args, got %d", len(args), len(cfg.Args))
	}
	args[0] = "mutated"
	if cfg.Args[0] != "--stack" {
		t.Fatalf("expected an independent copy of args, got %q", cfg.Args[0])
	}
	if cfg.App.Stack != "acme" || cfg.App.Cluster != "prod-eu" {
		t.Fatalf("expected the name pair parsed, got %q/%q", cfg.App.Stack, cfg.App.Cluster)
	}
}

func TestValidateRequiresAPIURL(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	verr := Validate(cfg)
	if verr == nil {
		t.Fatal("expected validation to fail without an api url")
	}
	if !strings.Contains(verr.Error(), "--api-url") {
		t.Fatalf("expected the error to name the flag, got %q", verr.Error())
	}
}

func TestValidateRejectsRelativeAPIURL(t *testing.T) {
	cfg, err := LoadArgs([]string{"--api-url", "api.example.com/v1"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Validate(cfg) == nil {
		t.Fatal("expected validation to reject a relative url")
	}
}

func TestValidateChecksTabName(t *testing.T) {
	cfg, err := LoadArgs([]string{"--api-url", "https://api.example.com", "--tab", "schedule"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verr := Validate(cfg); verr != nil {
		t.Fatalf("expected a known tab to pass, got %v", verr)
	}
	cfg, err = LoadArgs([]string{"--api-url", "https://api.example.com", "--tab", "billing"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	verr := Validate(cfg)
	if verr == nil {
		t.Fatal("expected an unknown tab to fail validation")
	}
	if !strings.Contains(verr.Error(), "billing") {
		t.Fatalf("expected the error to quote the tab, got %q", verr.Error())
	}
}

func TestEnvHelpersIgnoreMalformedValues(t *testing.T) {
	env := parseEnv([]string{"GOOD=1", "NOEQUALS", "", "EMPTY="})
	if len(env) != 2 {
		t.Fatalf("expected 2 parsed entries, got %d", len(env))
	}
	if envOrInt(map[string]string{"W": "abc"}, "W", 7) != 7 {
		t.Fatal("expected the fallback for a junk integer")
	}
	if envOrBool(map[string]string{"F": "maybe"}, "F", true) != true {
		t.Fatal("expected the fallback for a junk boolean")
	}
	if envOrDefault(map[string]string{"EMPTY": ""}, "EMPTY", "fallback") != "" {
		t.Fatal("expected a present-but-empty variable to win over the fallback")
	}
}
