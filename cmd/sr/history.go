package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/secretreview/sr/internal/api"
)

var (
	historyProject string
	historyEnv     string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View change history",
	Long: `List the change history of an environment, newest first as
returned by the service.`,
	Run: func(cmd *cobra.Command, args []string) {
		project, env, err := resolveProjectEnv(historyProject, historyEnv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitWithCode(ExitUsage)
		}

		done := track("history")
		client, apiURL := newAPIClient()

		hist, err := client.EnvHistory(context.Background(), project, env)
		if err != nil {
			printRequestError(err, apiURL)
			exitWithCode(ExitGeneral)
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			type historyJSON struct {
				Project string             `json:"project"`
				Env     string             `json:"env"`
				History []api.HistoryEntry `json:"history"`
			}
			out := historyJSON{Project: project, Env: env, History: hist.History}
			if out.History == nil {
				out.History = []api.HistoryEntry{}
			}
			printJSON(out)
			done(true)
			return
		}

		if len(hist.History) == 0 {
			fmt.Printf("📭 No history for %s/%s\n", project, env)
			done(true)
			return
		}

		fmt.Printf("📜 History for %s/%s\n", project, env)
		fmt.Printf("   %-14s %-10s %-25s %s\n", "ID", "Status", "By", "Reason")
		fmt.Printf("   %s %s %s %s\n",
			strings.Repeat("─", 14), strings.Repeat("─", 10),
			strings.Repeat("─", 25), strings.Repeat("─", 30))
		for _, h := range hist.History {
			fmt.Println(formatHistoryRow(h))
		}
		done(true)
	},
}

// formatHistoryRow renders one table line. Empty id, status, and
// proposer cells show as "?" to keep the table readable; the reason is
// trimmed to 40 characters.
func formatHistoryRow(h api.HistoryEntry) string {
	cid := truncate(orPlaceholder(h.ChangeID), 12)
	status := orPlaceholder(h.Status)
	by := truncate(orPlaceholder(h.ProposedBy), 24)
	reason := truncate(h.Reason, 40)
	return fmt.Sprintf("   %-14s %-10s %-25s %s", cid, status, by, reason)
}

func init() {
	historyCmd.Flags().StringVarP(&historyProject, "project", "p", "", "Project name")
	historyCmd.Flags().StringVarP(&historyEnv, "env", "e", "", "Environment name")
	historyCmd.Flags().Bool("json", false, "Output in JSON format")
}
