package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/secretreview/sr/internal/api"
	"github.com/secretreview/sr/internal/envfile"
)

var (
	proposeProject string
	proposeEnv     string
	proposeReason  string
	proposeFile    string
)

var proposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Propose a change from a .env file",
	Long: `Propose the contents of a .env file as a change to an
environment. The service diffs the proposal against the current state
and opens a review; nothing is applied until a reviewer approves.

Examples:
  sr propose -p billing -e production -r "rotate stripe key"
  sr propose -p billing -e staging -r "add webhook secret" -f deploy/.env`,
	Run: func(cmd *cobra.Command, args []string) {
		project, env, err := resolveProjectEnv(proposeProject, proposeEnv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitWithCode(ExitUsage)
		}
		if proposeReason == "" {
			fmt.Fprintln(os.Stderr, "Error: --reason is required")
			exitWithCode(ExitUsage)
		}

		if _, err := os.Stat(proposeFile); err != nil {
			fmt.Printf("❌ File not found: %s\n", proposeFile)
			exitWithCode(ExitGeneral)
		}

		variables, err := envfile.Load(proposeFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitWithCode(ExitGeneral)
		}
		if len(variables) == 0 {
			fmt.Println("⚠️  No variables found in the file.")
			exitWithCode(ExitGeneral)
		}

		done := track("propose")
		client, apiURL := newAPIClient()

		printInfof("📤 Proposing %d variable(s) for %s/%s\n", len(variables), project, env)
		printInfof("   Reason: %s\n", proposeReason)
		printInfo()

		result, err := client.Propose(context.Background(), api.ProposeRequest{
			Project:   project,
			Env:       env,
			Variables: variables,
			Reason:    proposeReason,
		})
		if err != nil {
			printRequestError(err, apiURL)
			exitWithCode(ExitGeneral)
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			printJSON(result)
		} else {
			renderProposeResult(os.Stdout, result)
		}
		done(result.Error == "")
	},
}

// renderProposeResult prints the server's verdict. A change id means a
// review was opened, the no-changes message means the environment
// already matches, anything else is an application error.
func renderProposeResult(w io.Writer, result *api.ProposeResult) {
	switch {
	case result.ChangeID != "":
		fmt.Fprintf(w, "✅ Change proposed: %s\n", result.ChangeID)
		fmt.Fprintln(w)
		if len(result.Diff) > 0 {
			fmt.Fprintln(w, "  Changes detected:")
			for _, d := range result.Diff {
				fmt.Fprintf(w, "    %s %s\n", diffSymbol(d.Type), d.Key)
			}
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  ⏳ Waiting for approval in the review dashboard.")
	case result.Message == "No changes detected":
		fmt.Fprintln(w, "✅ No changes detected. Everything is up to date.")
	default:
		errText := result.Error
		if errText == "" {
			errText = "Unknown error"
		}
		fmt.Fprintf(w, "❌ %s\n", errText)
	}
}

// diffSymbol maps a diff entry type to its one-character marker.
func diffSymbol(diffType string) string {
	switch diffType {
	case "added":
		return "+"
	case "removed":
		return "-"
	case "modified":
		return "~"
	default:
		return "?"
	}
}

func init() {
	proposeCmd.Flags().StringVarP(&proposeProject, "project", "p", "", "Project name")
	proposeCmd.Flags().StringVarP(&proposeEnv, "env", "e", "", "Environment name")
	proposeCmd.Flags().StringVarP(&proposeReason, "reason", "r", "", "Why this change is needed")
	proposeCmd.Flags().StringVarP(&proposeFile, "file", "f", ".env", "Path to .env file")
	proposeCmd.Flags().Bool("json", false, "Output in JSON format")
}
