package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default question bank",
	Long: `Replace the question bank with the built-in categories and questions.

Generated questions are discarded. Accounts and session history are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("this discards every generated question; re-run with --yes to confirm")
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.bank.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset question bank: %w", err)
		}
		fmt.Println("Question bank restored to defaults.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
