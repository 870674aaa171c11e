// Package telemetry provides anonymous usage telemetry for sr.
//
// Events carry the command name and outcome only. Project names,
// environment names, variable keys, and values never leave the
// machine.
package telemetry

import (
	"runtime"
	"time"

	"github.com/secretreview/sr/internal/buildinfo"
)

// Event represents a telemetry event sent to the backend.
type Event struct {
	Action        string `json:"action"`         // Command name ("propose", "pull", ...)
	Success       bool   `json:"success"`        // Whether the command exited cleanly
	DurationMS    int64  `json:"duration_ms"`    // Wall-clock command duration
	OS            string `json:"os"`             // Operating system ("linux", "darwin")
	Arch          string `json:"arch"`           // CPU architecture ("amd64", "arm64")
	CLIVersion    string `json:"cli_version"`    // Version of the sr CLI
	SchemaVersion string `json:"schema_version"` // Event schema version
}

const schemaVersion = "1"

// NewCommandEvent creates a telemetry event for one command invocation.
func NewCommandEvent(action string, success bool, duration time.Duration) Event {
	return Event{
		Action:        action,
		Success:       success,
		DurationMS:    duration.Milliseconds(),
		OS:            runtime.GOOS,
		Arch:          runtime.GOARCH,
		CLIVersion:    buildinfo.Version(),
		SchemaVersion: schemaVersion,
	}
}
