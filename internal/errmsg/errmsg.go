// Package errmsg provides enhanced error message formatting with actionable suggestions.
package errmsg

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/secretreview/sr/internal/api"
)

// ErrorContext provides additional context for error formatting
type ErrorContext struct {
	APIURL string // The endpoint being contacted (for suggestions)
}

// Format returns a formatted error message with possible causes and suggestions.
// The context parameter is optional - pass nil for generic formatting.
func Format(err error, ctx *ErrorContext) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()

	// Check for StatusError (the server answered outside the protocol)
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return formatStatusError(statusErr, ctx)
	}

	// Check for network errors
	var netErr net.Error
	if errors.As(err, &netErr) {
		return formatNetworkError(netErr, ctx)
	}

	// Check for connection-related errors by message
	if isNetworkError(errMsg) {
		return formatGenericNetworkError(errMsg, ctx)
	}

	// Check for permission errors
	if isPermissionError(errMsg) {
		return formatPermissionError(errMsg, ctx)
	}

	// Return original error for unrecognized types
	return errMsg
}

func formatStatusError(err *api.StatusError, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	switch {
	case err.StatusCode == http.StatusNotFound:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - The API URL points at the wrong path\n")
		sb.WriteString("  - The service does not expose this endpoint\n")

		sb.WriteString("\nSuggestions:\n")
		if ctx != nil && ctx.APIURL != "" {
			sb.WriteString(fmt.Sprintf("  - Verify the endpoint: currently %s\n", ctx.APIURL))
		}
		sb.WriteString("  - Run 'sr configure --api-url <URL>' with the base URL of the review API\n")

	case err.StatusCode >= 500:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - The review service failed internally\n")
		sb.WriteString("  - The service is down for maintenance\n")

		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Try again in a few minutes\n")
		sb.WriteString("  - Contact the service operators if the problem persists\n")

	default:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - A proxy or login page answered instead of the review API\n")
		sb.WriteString("  - The API URL points at something that is not the review service\n")

		sb.WriteString("\nSuggestions:\n")
		if ctx != nil && ctx.APIURL != "" {
			sb.WriteString(fmt.Sprintf("  - Verify the endpoint: currently %s\n", ctx.APIURL))
		}
		sb.WriteString("  - Run 'sr configure --api-url <URL>' with the base URL of the review API\n")
	}

	return sb.String()
}

func formatNetworkError(err net.Error, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	if err.Timeout() {
		sb.WriteString("  - Request timed out\n")
		sb.WriteString("  - Slow or unstable network connection\n")
	} else {
		sb.WriteString("  - Network connectivity issue\n")
		sb.WriteString("  - DNS resolution failure\n")
	}
	sb.WriteString("  - Firewall or proxy blocking the connection\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Check your internet connection\n")
	sb.WriteString("  - Try again in a few minutes\n")
	if err.Timeout() {
		sb.WriteString("  - Raise the timeout via SR_API_TIMEOUT (e.g. SR_API_TIMEOUT=2m)\n")
	}

	return sb.String()
}

func formatGenericNetworkError(errMsg string, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(errMsg)
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - Network connectivity issue\n")
	sb.WriteString("  - DNS resolution failure\n")
	sb.WriteString("  - Service temporarily unavailable\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Check your internet connection\n")
	if ctx != nil && ctx.APIURL != "" {
		sb.WriteString(fmt.Sprintf("  - Verify the endpoint: currently %s\n", ctx.APIURL))
	}
	sb.WriteString("  - Try again in a few minutes\n")

	return sb.String()
}

func formatPermissionError(errMsg string, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(errMsg)
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - Insufficient permissions on the $SR_HOME directory\n")
	sb.WriteString("  - File or directory owned by a different user\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Check permissions on ~/.secret-review\n")
	sb.WriteString("  - Ensure you own the sr files: ls -la ~/.secret-review\n")

	return sb.String()
}

// isNetworkError checks if the error message indicates a network issue
func isNetworkError(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "connection reset") ||
		strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "network is unreachable") ||
		strings.Contains(lower, "dial tcp") ||
		strings.Contains(lower, "timeout") ||
		strings.Contains(lower, "i/o timeout")
}

// isPermissionError checks if the error message indicates a permission issue
func isPermissionError(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "permission denied") ||
		strings.Contains(lower, "access denied") ||
		strings.Contains(lower, "operation not permitted")
}
