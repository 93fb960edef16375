package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizly/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent quiz sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		recs, err := d.store.EventRepo().RecentSessions(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("No quiz sessions yet.")
			return nil
		}

		fmt.Printf("%-19s  %-20s  %-18s  %-9s  %s\n", "Time", "Player", "Category", "Score", "Result")
		fmt.Println(strings.Repeat("─", 90))

		var completed, correct, total int
		for _, r := range recs {
			player := r.AccountEmail
			if player == "" {
				player = "guest"
			}
			category := r.CategoryID
			if category == "" {
				category = "all"
			}
			if r.Difficulty != "" {
				category += "/" + r.Difficulty
			}

			score, result := "-", r.ErrorKind+": "+r.ErrorMessage
			if r.Action == store.ActionEnd {
				completed++
				correct += r.Correct
				total += r.Total
				score = fmt.Sprintf("%d/%d", r.Correct, r.Total)
				result = fmt.Sprintf("%d wrong, %d missed", r.Incorrect, r.NotAttempted)
			}
			fmt.Printf("%-19s  %-20s  %-18s  %-9s  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(player, 20), truncate(category, 18), score, result)
		}

		fmt.Printf("\n%d sessions, %d completed", len(recs), completed)
		if total > 0 {
			fmt.Printf(", %.1f%% correct overall", float64(correct)/float64(total)*100)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of sessions to show")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
