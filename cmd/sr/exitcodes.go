package main

import "os"

// Exit codes for different error types.
// These enable scripts to distinguish between failure modes.
const (
	// ExitSuccess indicates successful execution. Application-level
	// errors reported by the service also exit with this code; they
	// are outcomes, not process failures.
	ExitSuccess = 0

	// ExitGeneral indicates a fatal error: missing configuration,
	// expired authentication, unusable input, or a failed request
	ExitGeneral = 1

	// ExitUsage indicates invalid arguments or usage error
	ExitUsage = 2
)

// exitWithCode exits with the specified exit code
func exitWithCode(code int) {
	os.Exit(code)
}
