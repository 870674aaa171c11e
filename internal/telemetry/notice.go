package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/secretreview/sr/internal/config"
	"github.com/secretreview/sr/internal/userconfig"
)

const (
	// NoticeMarkerFile is the filename used to track if the notice has been shown.
	NoticeMarkerFile = "telemetry_notice_shown"

	// NoticeText is the message displayed to users on first run.
	NoticeText = `sr collects anonymous usage statistics: command name and outcome only.
Project names, variable names, and values are never collected.

To opt out: sr config set telemetry false
         or export SR_NO_TELEMETRY=1
`
)

// ShowNoticeIfNeeded displays the telemetry notice on first run.
// It writes to stderr and creates a marker file to prevent future displays.
// Returns silently on any error (file permissions, etc.).
func ShowNoticeIfNeeded() {
	// No endpoint, no telemetry, no notice.
	if os.Getenv(EnvEndpoint) == "" {
		return
	}

	if DisabledByEnv() {
		return
	}

	userCfg, err := userconfig.Load()
	if err == nil && !userCfg.Telemetry {
		return
	}

	cfg, err := config.DefaultConfig()
	if err != nil {
		return // Silent failure
	}

	showNoticeIfNeeded(cfg.HomeDir, os.Stderr)
}

// showNoticeIfNeeded is the internal implementation that accepts a home
// directory and output writer for testability.
func showNoticeIfNeeded(homeDir string, output io.Writer) {
	markerPath := filepath.Join(homeDir, NoticeMarkerFile)

	if _, err := os.Stat(markerPath); err == nil {
		return // Already shown
	}

	_, _ = fmt.Fprint(output, NoticeText)

	if err := os.MkdirAll(homeDir, 0700); err != nil {
		return // Silent failure
	}

	f, err := os.Create(markerPath)
	if err != nil {
		return // Silent failure
	}
	f.Close()
}
