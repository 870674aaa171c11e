package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/secretreview/sr/internal/log"
)

var (
	pullProject string
	pullEnv     string
	pullOutput  string
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "View current variables for a project/env",
	Long: `List the variable names currently live in an environment.

Values are not exposed through the history endpoint, so pull shows
names only. Use the review dashboard with reveal enabled to read
values.`,
	Run: func(cmd *cobra.Command, args []string) {
		project, env, err := resolveProjectEnv(pullProject, pullEnv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitWithCode(ExitUsage)
		}

		// The flag is accepted for interface compatibility; at the
		// default level the note stays off stderr.
		if pullOutput != "" {
			log.Default().Info("ignoring --output: the API exposes variable names, not values", "output", pullOutput)
		}

		done := track("pull")
		client, apiURL := newAPIClient()

		hist, err := client.EnvHistory(context.Background(), project, env)
		if err != nil {
			printRequestError(err, apiURL)
			exitWithCode(ExitGeneral)
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			type pullJSON struct {
				Project     string   `json:"project"`
				Env         string   `json:"env"`
				CurrentKeys []string `json:"currentKeys"`
			}
			out := pullJSON{Project: project, Env: env, CurrentKeys: hist.CurrentKeys}
			if out.CurrentKeys == nil {
				out.CurrentKeys = []string{}
			}
			printJSON(out)
			done(true)
			return
		}

		if len(hist.CurrentKeys) == 0 {
			fmt.Printf("📭 No variables found for %s/%s\n", project, env)
			done(true)
			return
		}

		fmt.Printf("🔑 Current variables in %s/%s:\n", project, env)
		for _, key := range hist.CurrentKeys {
			fmt.Printf("   %s\n", key)
		}
		fmt.Println()
		fmt.Printf("   Total: %d variable(s)\n", len(hist.CurrentKeys))
		fmt.Println()
		printInfo("💡 To get actual values, use the review dashboard with reveal enabled,")
		printInfo("   or add a /secrets endpoint for CLI pull support.")
		done(true)
	},
}

func init() {
	pullCmd.Flags().StringVarP(&pullProject, "project", "p", "", "Project name")
	pullCmd.Flags().StringVarP(&pullEnv, "env", "e", "", "Environment name")
	pullCmd.Flags().StringVarP(&pullOutput, "output", "o", "", "Write to file (not supported by the API yet)")
	pullCmd.Flags().Bool("json", false, "Output in JSON format")
}
