package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/secretreview/sr/internal/api"
	"github.com/secretreview/sr/internal/config"
	"github.com/secretreview/sr/internal/credentials"
	"github.com/secretreview/sr/internal/errmsg"
	"github.com/secretreview/sr/internal/telemetry"
	"github.com/secretreview/sr/internal/userconfig"
)

// printInfo prints an informational message unless quiet mode is enabled
func printInfo(a ...interface{}) {
	if !quietFlag {
		fmt.Println(a...)
	}
}

// printInfof prints a formatted informational message unless quiet mode is enabled
func printInfof(format string, a ...interface{}) {
	if !quietFlag {
		fmt.Printf(format, a...)
	}
}

// printJSON marshals the given value to JSON and prints it to stdout
func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		exitWithCode(ExitGeneral)
	}
}

// newAPIClient builds the review client from the resolved credentials
// and exits when nothing is configured. The returned URL feeds error
// messages.
func newAPIClient() (*api.Client, string) {
	cfg, err := config.DefaultConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitWithCode(ExitGeneral)
	}
	store := credentials.NewStore(cfg.CredentialsFile)

	creds, err := store.Resolve()
	if err != nil {
		if errors.Is(err, credentials.ErrNotConfigured) {
			fmt.Println("Not configured. Run: sr configure --api-url <URL> --token <TOKEN>")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		exitWithCode(ExitGeneral)
	}

	// The provider re-resolves on every request, so a token written by
	// `sr configure` is picked up without restarting.
	tokens := api.TokenProviderFunc(func() (string, error) {
		resolved, err := store.Resolve()
		if err != nil {
			return "", err
		}
		return resolved.Token, nil
	})

	client := api.New(creds.APIURL, tokens, api.WithTimeout(config.GetAPITimeout()))
	return client, creds.APIURL
}

// printRequestError renders a failed request. Authentication expiry
// carries its own remediation; everything else goes through errmsg.
func printRequestError(err error, apiURL string) {
	if errors.Is(err, api.ErrAuthExpired) {
		fmt.Println("❌ Authentication expired. Run: sr configure --token <NEW_TOKEN>")
		return
	}
	fmt.Fprintln(os.Stderr, errmsg.Format(err, &errmsg.ErrorContext{APIURL: apiURL}))
}

// resolveProjectEnv fills missing --project/--env values from the
// settings file defaults.
func resolveProjectEnv(project, env string) (string, string, error) {
	if project == "" || env == "" {
		settings, err := userconfig.Load()
		if err == nil {
			if project == "" {
				project = settings.DefaultProject
			}
			if env == "" {
				env = settings.DefaultEnv
			}
		}
	}
	if project == "" {
		return "", "", fmt.Errorf("--project is required (or set a default: sr config set default_project <NAME>)")
	}
	if env == "" {
		return "", "", fmt.Errorf("--env is required (or set a default: sr config set default_env <NAME>)")
	}
	return project, env, nil
}

// track starts telemetry for one command run. The returned func
// records the outcome.
func track(action string) func(success bool) {
	client := telemetry.NewClient()
	telemetry.ShowNoticeIfNeeded()
	start := time.Now()
	return func(success bool) {
		client.Send(telemetry.NewCommandEvent(action, success, time.Since(start)))
	}
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// orPlaceholder substitutes "?" for empty table cells.
func orPlaceholder(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
