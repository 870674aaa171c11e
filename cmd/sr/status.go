package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/secretreview/sr/internal/api"
)

var statusChangeID string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check pending changes or a specific change",
	Long: `Without flags, list every change waiting for review. With
--change-id, show the detail of a single change.

Examples:
  sr status
  sr status --change-id 1f0c2a8e-4b7d`,
	Run: func(cmd *cobra.Command, args []string) {
		done := track("status")
		client, apiURL := newAPIClient()
		jsonOutput, _ := cmd.Flags().GetBool("json")

		if statusChangeID != "" {
			detail, err := client.ChangeDiff(context.Background(), statusChangeID)
			if err != nil {
				printRequestError(err, apiURL)
				exitWithCode(ExitGeneral)
			}
			if jsonOutput {
				printJSON(detail)
				done(detail.Error == "")
				return
			}
			renderChangeDetail(os.Stdout, detail)
			done(detail.Error == "")
			return
		}

		changes, err := client.PendingChanges(context.Background())
		if err != nil {
			printRequestError(err, apiURL)
			exitWithCode(ExitGeneral)
		}

		if jsonOutput {
			type statusJSON struct {
				Changes []api.PendingChange `json:"changes"`
			}
			out := statusJSON{Changes: changes}
			if out.Changes == nil {
				out.Changes = []api.PendingChange{}
			}
			printJSON(out)
			done(true)
			return
		}

		if len(changes) == 0 {
			fmt.Println("✅ No pending changes")
			done(true)
			return
		}
		fmt.Printf("⏳ %d pending change(s):\n", len(changes))
		for _, c := range changes {
			fmt.Println(formatPendingRow(c))
		}
		done(true)
	},
}

// renderChangeDetail prints a single change, or the server's error
// when the lookup was rejected.
func renderChangeDetail(w io.Writer, detail *api.ChangeDetail) {
	if detail.Error != "" {
		fmt.Fprintf(w, "❌ %s\n", detail.Error)
		return
	}
	fmt.Fprintf(w, "Change: %s\n", detail.ChangeID)
	fmt.Fprintf(w, "Status: %s\n", detail.Status)
	fmt.Fprintf(w, "Project: %s/%s\n", detail.Project, detail.Env)
	fmt.Fprintf(w, "By: %s\n", detail.ProposedBy)
	fmt.Fprintf(w, "Reason: %s\n", detail.Reason)
}

// formatPendingRow renders one pending change as a short summary line.
func formatPendingRow(c api.PendingChange) string {
	return fmt.Sprintf("   %s  %s/%s  %s",
		truncate(c.ChangeID, 12), c.Project, c.Env, truncate(c.Reason, 40))
}

func init() {
	statusCmd.Flags().StringVar(&statusChangeID, "change-id", "", "Specific change ID to inspect")
	statusCmd.Flags().Bool("json", false, "Output in JSON format")
}
