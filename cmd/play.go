package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizly/internal/quiz"
	"github.com/abhisek/quizly/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz right away",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		if err := checkDifficulty(difficulty); err != nil {
			return err
		}
		return runApp(cmd, &session.Selector{CategoryID: category, Difficulty: difficulty})
	},
}

func init() {
	playCmd.Flags().String("category", "", "Category ID (default: all)")
	playCmd.Flags().String("difficulty", "", "easy, medium or hard (default: any)")
}

func checkDifficulty(d string) error {
	if d == "" {
		return nil
	}
	for _, known := range quiz.Difficulties {
		if d == known {
			return nil
		}
	}
	return fmt.Errorf("invalid difficulty %q: must be easy, medium or hard", d)
}
