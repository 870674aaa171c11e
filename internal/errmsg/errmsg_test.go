package errmsg

import (
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/secretreview/sr/internal/api"
)

func TestFormat_NilError(t *testing.T) {
	result := Format(nil, nil)
	if result != "" {
		t.Errorf("expected empty string for nil error, got %q", result)
	}
}

func TestFormat_GenericError(t *testing.T) {
	err := errors.New("something went wrong")
	result := Format(err, nil)
	if result != "something went wrong" {
		t.Errorf("expected original error message, got %q", result)
	}
}

func TestFormat_StatusError_NotFound(t *testing.T) {
	err := &api.StatusError{StatusCode: 404, Snippet: "Not Found"}
	ctx := &ErrorContext{APIURL: "https://review.example.com"}

	result := Format(err, ctx)

	checks := []string{
		"HTTP 404",
		"Possible causes:",
		"wrong path",
		"Suggestions:",
		"https://review.example.com",
		"sr configure --api-url",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected result to contain %q, got:\n%s", check, result)
		}
	}
}

func TestFormat_StatusError_ServerError(t *testing.T) {
	err := &api.StatusError{StatusCode: 503}

	result := Format(err, nil)

	checks := []string{
		"HTTP 503",
		"failed internally",
		"Try again in a few minutes",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected result to contain %q, got:\n%s", check, result)
		}
	}
}

func TestFormat_StatusError_NonProtocolBody(t *testing.T) {
	err := &api.StatusError{StatusCode: 200, Snippet: "<html>login</html>"}

	result := Format(err, nil)

	if !strings.Contains(result, "proxy or login page") {
		t.Errorf("expected proxy hint, got:\n%s", result)
	}
}

// timeoutErr implements net.Error for testing.
type timeoutErr struct{ timeout bool }

func (e *timeoutErr) Error() string   { return "request failed" }
func (e *timeoutErr) Timeout() bool   { return e.timeout }
func (e *timeoutErr) Temporary() bool { return false }

func TestFormat_NetworkTimeout(t *testing.T) {
	var err net.Error = &timeoutErr{timeout: true}

	result := Format(err, nil)

	checks := []string{
		"Request timed out",
		"SR_API_TIMEOUT",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected result to contain %q, got:\n%s", check, result)
		}
	}
}

func TestFormat_NetworkNonTimeout(t *testing.T) {
	var err net.Error = &timeoutErr{timeout: false}

	result := Format(err, nil)

	if !strings.Contains(result, "Network connectivity issue") {
		t.Errorf("expected connectivity hint, got:\n%s", result)
	}
	if strings.Contains(result, "SR_API_TIMEOUT") {
		t.Errorf("did not expect timeout hint for non-timeout error, got:\n%s", result)
	}
}

func TestFormat_ConnectionRefusedByMessage(t *testing.T) {
	err := errors.New("dial tcp 127.0.0.1:9999: connect: connection refused")
	ctx := &ErrorContext{APIURL: "http://127.0.0.1:9999"}

	result := Format(err, ctx)

	checks := []string{
		"connection refused",
		"Possible causes:",
		"http://127.0.0.1:9999",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected result to contain %q, got:\n%s", check, result)
		}
	}
}

func TestFormat_PermissionError(t *testing.T) {
	err := errors.New("open /home/user/.secret-review/config.json: permission denied")

	result := Format(err, nil)

	checks := []string{
		"permission denied",
		"$SR_HOME",
		"ls -la ~/.secret-review",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected result to contain %q, got:\n%s", check, result)
		}
	}
}

func TestFormat_WrappedStatusError(t *testing.T) {
	inner := &api.StatusError{StatusCode: 502, Snippet: "Bad Gateway"}
	err := errors.Join(errors.New("request failed"), inner)

	result := Format(err, nil)

	if !strings.Contains(result, "HTTP 502") {
		t.Errorf("expected wrapped StatusError to be recognized, got:\n%s", result)
	}
}
