package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/stackmill/env-dashboard/internal/app"
	"github.com/stackmill/env-dashboard/internal/config"
	"github.com/stackmill/env-dashboard/internal/logging"
	"github.com/stackmill/env-dashboard/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	// A missing .env is fine; explicit environment and flags still apply.
	_ = godotenv.Load()

	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	route, err := app.Run(runtimeCfg.App)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if route != "" {
		fmt.Println(route)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging. The API
// token never appears in it: argv is masked and the config copy is blanked.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	safeCfg := cfg
	safeCfg.App.APIToken = ""

	payload := map[string]interface{}{
		"argv":   redactArgs(cfg.Args),
		"flags":  flags,
		"config": safeCfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

// redactArgs masks the value of the api token flag in both its separated
// and inline forms.
func redactArgs(args []string) []string {
	out := make([]string, len(args))
	redactNext := false
	for i, arg := range args {
		switch {
		case redactNext:
			out[i] = "(redacted)"
			redactNext = false
		case arg == "--api-token" || arg == "-api-token":
			out[i] = arg
			redactNext = true
		case strings.HasPrefix(arg, "--api-token=") || strings.HasPrefix(arg, "-api-token="):
			out[i] = arg[:strings.IndexByte(arg, '=')+1] + "(redacted)"
		default:
			out[i] = arg
		}
	}
	return out
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
