package functional

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
)

// configuredCredentials runs the real configure command against the
// scenario's stub service, so later commands resolve credentials from
// the config file exactly as a user's would.
func configuredCredentials(ctx context.Context) (context.Context, error) {
	state := getState(ctx)
	if state == nil {
		return ctx, fmt.Errorf("no test state; is the Before hook running?")
	}

	ctx, err := iRun(ctx, "sr configure --api-url "+state.server.URL+" --token test-token")
	if err != nil {
		return ctx, err
	}
	if state.exitCode != 0 {
		return ctx, fmt.Errorf("configure failed with exit code %d\nstdout: %s\nstderr: %s",
			state.exitCode, state.stdout, state.stderr)
	}
	return ctx, nil
}

func theServiceAnswers(ctx context.Context, body *godog.DocString) error {
	state := getState(ctx)
	state.respStatus = 200
	state.respBody = body.Content
	return nil
}

func theServiceAnswersWithStatus(ctx context.Context, status int, body *godog.DocString) error {
	state := getState(ctx)
	state.respStatus = status
	state.respBody = body.Content
	return nil
}

func theServiceIsDown(ctx context.Context) error {
	getState(ctx).server.Close()
	return nil
}

func anEnvFileContaining(ctx context.Context, body *godog.DocString) error {
	state := getState(ctx)
	return os.WriteFile(filepath.Join(state.workDir, ".env"), []byte(body.Content+"\n"), 0644)
}

func anEmptyEnvFile(ctx context.Context) error {
	state := getState(ctx)
	return os.WriteFile(filepath.Join(state.workDir, ".env"), nil, 0644)
}

// iRun executes a command string, replacing "sr" with the test binary path
// and "$SERVER" with the scenario's stub service URL.
func iRun(ctx context.Context, command string) (context.Context, error) {
	return runCommand(ctx, command, "")
}

func iRunWithStdin(ctx context.Context, command, stdin string) (context.Context, error) {
	return runCommand(ctx, command, stdin+"\n")
}

func runCommand(ctx context.Context, command, stdin string) (context.Context, error) {
	state := getState(ctx)
	if state == nil {
		return ctx, fmt.Errorf("no test state; is the Before hook running?")
	}

	command = strings.ReplaceAll(command, "$SERVER", state.server.URL)

	args := strings.Fields(command)
	if len(args) > 0 && args[0] == "sr" {
		args[0] = state.binPath
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = state.workDir

	// Empty SR_API_URL and SR_TOKEN scrub any ambient credentials so
	// unconfigured scenarios stay unconfigured.
	cmd.Env = append(os.Environ(),
		"SR_HOME="+state.homeDir,
		"SR_NO_TELEMETRY=1",
		"SR_API_URL=",
		"SR_TOKEN=",
	)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	state.stdout = stdout.String()
	state.stderr = stderr.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			state.exitCode = exitErr.ExitCode()
		} else {
			return ctx, fmt.Errorf("command execution failed: %w", err)
		}
	} else {
		state.exitCode = 0
	}

	return ctx, nil
}

func theExitCodeIs(ctx context.Context, expected int) error {
	state := getState(ctx)
	if state.exitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d\nstdout: %s\nstderr: %s",
			expected, state.exitCode, state.stdout, state.stderr)
	}
	return nil
}

func theExitCodeIsNot(ctx context.Context, notExpected int) error {
	state := getState(ctx)
	if state.exitCode == notExpected {
		return fmt.Errorf("expected exit code to not be %d\nstdout: %s\nstderr: %s",
			notExpected, state.stdout, state.stderr)
	}
	return nil
}

func theOutputContains(ctx context.Context, text string) error {
	state := getState(ctx)
	if !strings.Contains(state.stdout, text) {
		return fmt.Errorf("expected stdout to contain %q, got:\n%s", text, state.stdout)
	}
	return nil
}

func theOutputDoesNotContain(ctx context.Context, text string) error {
	state := getState(ctx)
	if strings.Contains(state.stdout, text) {
		return fmt.Errorf("expected stdout not to contain %q, got:\n%s", text, state.stdout)
	}
	return nil
}

func theErrorOutputContains(ctx context.Context, text string) error {
	state := getState(ctx)
	if !strings.Contains(state.stderr, text) {
		return fmt.Errorf("expected stderr to contain %q, got:\n%s", text, state.stderr)
	}
	return nil
}

func theErrorOutputDoesNotContain(ctx context.Context, text string) error {
	state := getState(ctx)
	if strings.Contains(state.stderr, text) {
		return fmt.Errorf("expected stderr not to contain %q, got:\n%s", text, state.stderr)
	}
	return nil
}

func theServiceWasNotCalled(ctx context.Context) error {
	state := getState(ctx)
	if n := state.requests.Load(); n != 0 {
		return fmt.Errorf("expected no requests to reach the review service, got %d", n)
	}
	return nil
}

func theCredentialsFileExists(ctx context.Context) error {
	state := getState(ctx)
	path := filepath.Join(state.homeDir, "config.json")
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("expected credentials file at %q: %w", path, err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		return fmt.Errorf("expected credentials file mode 0600, got %04o", perm)
	}
	return nil
}

func theCredentialsFileContains(ctx context.Context, text string) error {
	state := getState(ctx)
	text = strings.ReplaceAll(text, "$SERVER", state.server.URL)
	data, err := os.ReadFile(filepath.Join(state.homeDir, "config.json"))
	if err != nil {
		return fmt.Errorf("reading credentials file: %w", err)
	}
	if !strings.Contains(string(data), text) {
		return fmt.Errorf("expected credentials file to contain %q, got:\n%s", text, data)
	}
	return nil
}
